package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const userColumns = "id, email, password_hash, display_name, role_id, created_at, updated_at"

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.RoleID, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", email)
	return scanUser(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := searchConditions(q)
	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM users"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]User, error) {
	cond := searchConditions(q)
	query := fmt.Sprintf(
		"SELECT "+userColumns+" FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	result := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, user User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET email = $2, password_hash = $3, display_name = $4, role_id = $5, updated_at = $6
		WHERE id = $1`,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.RoleID, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRow(res)
}

func searchConditions(q ListQuery) *storeutil.Conditions {
	cond := &storeutil.Conditions{}
	cond.Search(q.Search, "email", "display_name")
	return cond
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.RoleID, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, sentinel.ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// PostgresRoleStore reads the seeded roles table.
type PostgresRoleStore struct {
	db *sql.DB
}

func NewPostgresRoleStore(db *sql.DB) *PostgresRoleStore {
	return &PostgresRoleStore{db: db}
}

func (s *PostgresRoleStore) FindByID(ctx context.Context, id int64) (Role, error) {
	var role Role
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM roles WHERE id = $1", id).Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Role{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Role{}, fmt.Errorf("find role: %w", err)
	}
	return role, nil
}

func (s *PostgresRoleStore) FindByName(ctx context.Context, name string) (Role, error) {
	var role Role
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM roles WHERE name = $1", name).Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Role{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Role{}, fmt.Errorf("find role: %w", err)
	}
	return role, nil
}

func (s *PostgresRoleStore) List(ctx context.Context) ([]Role, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM roles ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := []Role{}
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
