// Package auth implements registration, login, and token lifecycle. Access
// tokens are stateless JWTs; logout revokes the token's jti in the
// revocation list until the token would have expired on its own.
package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"academy/internal/httpapi"
	jwttoken "academy/internal/jwt_token"
	"academy/internal/users"
	"academy/pkg/apperrors"
	"academy/pkg/sentinel"
)

type Service struct {
	users *users.Service
	jwt   *jwttoken.JWTService
	trl   TokenRevocationList
	ttl   time.Duration
	now   func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(userSvc *users.Service, jwt *jwttoken.JWTService, trl TokenRevocationList, ttl time.Duration, opts ...Option) *Service {
	s := &Service{users: userSvc, jwt: jwt, trl: trl, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account with the default "user" role.
func (s *Service) Register(ctx context.Context, in RegisterInput) (users.User, error) {
	return s.users.Create(ctx, users.CreateInput{
		Email:       in.Email,
		Password:    in.Password,
		DisplayName: in.DisplayName,
	})
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password report the same message.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", apperrors.New(apperrors.CodeUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", apperrors.New(apperrors.CodeUnauthorized, "Invalid credentials")
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.RoleID, s.ttl)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "failed to issue token")
	}
	return token, nil
}

// Logout revokes the presented token's jti for its remaining lifetime.
// Revoking an already-revoked token succeeds.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.trl.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to revoke token")
	}
	return nil
}

// Verify implements the pipeline's TokenVerifier: a valid signature is not
// enough, the jti must also be absent from the revocation list.
func (s *Service) Verify(ctx context.Context, token string) (httpapi.Identity, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return httpapi.Identity{}, err
	}

	revoked, err := s.trl.IsRevoked(ctx, claims.ID)
	if err != nil {
		return httpapi.Identity{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to check token revocation")
	}
	if revoked {
		return httpapi.Identity{}, apperrors.New(apperrors.CodeUnauthorized, "Invalid or missing token")
	}

	return httpapi.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		RoleID: claims.RoleID,
	}, nil
}
