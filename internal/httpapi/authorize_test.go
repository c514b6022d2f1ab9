package httpapi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"academy/pkg/apperrors"
)

type stubRoles struct {
	role  string
	err   error
	calls int
}

func (s *stubRoles) RoleNameByUserID(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.role, s.err
}

func TestAuthorize_OpenRouteSkipsLookup(t *testing.T) {
	roles := &stubRoles{role: "admin"}
	authz := NewAuthorizer(roles)

	assert.NoError(t, authz.Authorize(context.Background(), nil, nil))
	assert.Zero(t, roles.calls)
}

func TestAuthorize_NilIdentityIsUnauthorized(t *testing.T) {
	authz := NewAuthorizer(&stubRoles{role: "admin"})
	err := authz.Authorize(context.Background(), nil, []string{"admin"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	assert.Equal(t, "Invalid or missing token", apperrors.MessageOf(err))
}

func TestAuthorize_RoleMembership(t *testing.T) {
	ident := &Identity{UserID: "u1"}

	authz := NewAuthorizer(&stubRoles{role: "trainer"})
	assert.NoError(t, authz.Authorize(context.Background(), ident, []string{"admin", "trainer"}))

	err := authz.Authorize(context.Background(), ident, []string{"admin"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Equal(t, "Forbidden", apperrors.MessageOf(err))
}

func TestAuthorize_LookupFailureIsForbidden(t *testing.T) {
	authz := NewAuthorizer(&stubRoles{err: errors.New("db down")})
	err := authz.Authorize(context.Background(), &Identity{UserID: "u1"}, []string{"admin"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}

func TestAuthorize_RoleIsResolvedOnEveryCall(t *testing.T) {
	roles := &stubRoles{role: "admin"}
	authz := NewAuthorizer(roles)
	ident := &Identity{UserID: "u1"}

	assert.NoError(t, authz.Authorize(context.Background(), ident, []string{"admin"}))

	// A demotion between calls must take effect immediately.
	roles.role = "user"
	err := authz.Authorize(context.Background(), ident, []string{"admin"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Equal(t, 2, roles.calls)
}
