package users

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/pkg/sentinel"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresStore(db), mock
}

func TestPostgresStore_Create(t *testing.T) {
	store, mock := newMockStore(t)
	user := User{ID: uuid.New(), Email: "a@example.com", RoleID: 3, CreatedAt: time.Now(), UpdatedAt: time.Now()}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.DisplayName, user.RoleID, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Create(context.Background(), user))
}

func TestPostgresStore_CreateUniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)
	user := User{ID: uuid.New(), Email: "dup@example.com"}

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	err := store.Create(context.Background(), user)
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestPostgresStore_FindByEmailNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "display_name", "role_id", "created_at", "updated_at"}))

	_, err := store.FindByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresStore_ListWithSearch(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE \(email ILIKE \$1 OR display_name ILIKE \$1\) ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("%sara%", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "display_name", "role_id", "created_at", "updated_at"}).
			AddRow(id, "sara@example.com", "hash", "Sara", int64(3), now, now))

	list, err := store.List(context.Background(), ListQuery{Search: "sara", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "sara@example.com", list[0].Email)
}

func TestPostgresStore_DeleteNoRows(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), id)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresRoleStore_FindByName(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgresRoleStore(db)

	mock.ExpectQuery("SELECT id, name FROM roles WHERE name").
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "admin"))

	role, err := store.FindByName(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, Role{ID: 1, Name: "admin"}, role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
