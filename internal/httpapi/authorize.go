package httpapi

import (
	"context"

	"academy/pkg/apperrors"
)

// RoleResolver looks up a user's current role name. Implementations query
// the persistence layer; the result is never cached across requests so role
// changes take effect on the very next call.
type RoleResolver interface {
	RoleNameByUserID(ctx context.Context, userID string) (string, error)
}

// Authorizer decides allow/deny for a caller against a required-role set.
type Authorizer struct {
	roles RoleResolver
}

func NewAuthorizer(roles RoleResolver) *Authorizer {
	return &Authorizer{roles: roles}
}

// Authorize allows unconditionally when required is empty. Otherwise the
// caller must be authenticated and its freshly resolved role name must be a
// member of required.
func (a *Authorizer) Authorize(ctx context.Context, ident *Identity, required []string) error {
	if len(required) == 0 {
		return nil
	}
	if ident == nil {
		return apperrors.New(apperrors.CodeUnauthorized, "Invalid or missing token")
	}

	roleName, err := a.roles.RoleNameByUserID(ctx, ident.UserID)
	if err != nil || roleName == "" {
		return apperrors.New(apperrors.CodeForbidden, "Forbidden")
	}
	for _, want := range required {
		if roleName == want {
			return nil
		}
	}
	return apperrors.New(apperrors.CodeForbidden, "Forbidden")
}
