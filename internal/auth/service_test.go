package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "academy/internal/jwt_token"
	"academy/internal/users"
	"academy/pkg/apperrors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	userSvc := users.NewService(users.NewInMemoryStore(), users.NewInMemoryRoleStore())
	jwtSvc := jwttoken.NewJWTService("test-key", "test-issuer")
	return NewService(userSvc, jwtSvc, NewMemoryTRL(), time.Hour)
}

func register(t *testing.T, svc *Service, email, password string) users.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{Email: email, Password: password})
	require.NoError(t, err)
	return user
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc := newTestService(t)
	user := register(t, svc, "login@example.com", "secret1")

	token, err := svc.Login(context.Background(), LoginInput{Email: "login@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), ident.UserID)
	assert.Equal(t, "login@example.com", ident.Email)
	assert.Equal(t, user.RoleID, ident.RoleID)
}

func TestLogin_UnknownEmailAndWrongPasswordLookIdentical(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "known@example.com", "secret1")

	_, errUnknown := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "secret1"})
	_, errWrong := svc.Login(context.Background(), LoginInput{Email: "known@example.com", Password: "wrong"})

	for _, err := range []error{errUnknown, errWrong} {
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
		assert.Equal(t, "Invalid credentials", apperrors.MessageOf(err))
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "out@example.com", "secret1")

	token, err := svc.Login(context.Background(), LoginInput{Email: "out@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = svc.Verify(context.Background(), token)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	assert.Equal(t, "Invalid or missing token", apperrors.MessageOf(err))

	// Logout is idempotent.
	assert.NoError(t, svc.Logout(context.Background(), token))
}

func TestLogout_RevocationIsPerToken(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "two@example.com", "secret1")

	first, err := svc.Login(context.Background(), LoginInput{Email: "two@example.com", Password: "secret1"})
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), LoginInput{Email: "two@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), first))

	_, err = svc.Verify(context.Background(), first)
	assert.Error(t, err)
	_, err = svc.Verify(context.Background(), second)
	assert.NoError(t, err)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Verify(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestMemoryTRL_ExpiresEntries(t *testing.T) {
	current := time.Now()
	trl := NewMemoryTRL()
	trl.clock = func() time.Time { return current }

	require.NoError(t, trl.RevokeToken(context.Background(), "jti-1", time.Minute))
	revoked, err := trl.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	current = current.Add(2 * time.Minute)
	revoked, err = trl.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
