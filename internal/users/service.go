package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
	"academy/pkg/sentinel"
)

// Service implements account management on top of the user and role stores.
// It also serves as the role resolver for the authorizer, so a role change
// is visible on the next request.
type Service struct {
	users Store
	roles RoleStore
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

func NewService(users Store, roles RoleStore, opts ...Option) *Service {
	s := &Service{users: users, roles: roles, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	RoleID      *int64 `json:"roleId"`
}

type UpdateInput struct {
	DisplayName *string `json:"displayName"`
	RoleID      *int64  `json:"roleId"`
	Password    *string `json:"password"`
}

// Create registers an account. Absent roleId defaults to the "user" role.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	roleID, err := s.resolveRoleID(ctx, in.RoleID)
	if err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to hash password")
	}

	now := s.now().UTC()
	user := User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		RoleID:       roleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return User{}, apperrors.New(apperrors.CodeConflict, "Email already in use")
		}
		return User{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create user")
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return User{}, notFound(id)
	}
	user, err := s.users.FindByID(ctx, uid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return User{}, notFound(id)
	}
	if err != nil {
		return User{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

func (s *Service) List(ctx context.Context, search string, page httpapi.Page) (int, []User, error) {
	q := ListQuery{Search: search, Offset: page.Offset(), Limit: page.PerPage}
	total, err := s.users.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count users")
	}
	list, err := s.users.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list users")
	}
	return total, list, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.DisplayName != nil {
		user.DisplayName = *in.DisplayName
	}
	if in.RoleID != nil {
		if _, err := s.roles.FindByID(ctx, *in.RoleID); err != nil {
			return User{}, apperrors.Newf(apperrors.CodeNotFound, "Role with ID %d not found", *in.RoleID)
		}
		user.RoleID = *in.RoleID
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to hash password")
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return User{}, notFound(id)
		}
		return User{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update user")
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return notFound(id)
	}
	if err := s.users.Delete(ctx, uid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete user")
	}
	return nil
}

// Exists reports whether a user id references a stored user.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.users.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load user")
	}
	return true, nil
}

// FindByEmail exposes credential lookup for the auth service.
func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return User{}, sentinel.ErrNotFound
	}
	if err != nil {
		return User{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// DefaultRoleID resolves the id of the seeded "user" role.
func (s *Service) DefaultRoleID(ctx context.Context) (int64, error) {
	role, err := s.roles.FindByName(ctx, RoleUser)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeInternal, "default role missing")
	}
	return role.ID, nil
}

// RoleNameByUserID resolves the caller's current role name. Satisfies the
// authorizer's RoleResolver; called on every role-gated request.
func (s *Service) RoleNameByUserID(ctx context.Context, userID string) (string, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return "", sentinel.ErrNotFound
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return "", err
	}
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		return "", err
	}
	return role.Name, nil
}

func (s *Service) resolveRoleID(ctx context.Context, requested *int64) (int64, error) {
	if requested == nil {
		return s.DefaultRoleID(ctx)
	}
	if _, err := s.roles.FindByID(ctx, *requested); err != nil {
		return 0, apperrors.Newf(apperrors.CodeNotFound, "Role with ID %d not found", *requested)
	}
	return *requested, nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "User with ID %s not found", id)
}
