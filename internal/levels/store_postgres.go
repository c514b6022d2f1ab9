package levels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const levelColumns = "id, name_en, name_ar, description_en, description_ar, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, level Level) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO levels (id, name_en, name_ar, description_en, description_ar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		level.ID, level.NameEn, level.NameAr, level.DescriptionEn, level.DescriptionAr,
		level.CreatedAt, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert level: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (Level, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+levelColumns+" FROM levels WHERE id = $1", id)
	return scanLevel(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM levels"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count levels: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Level, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+levelColumns+" FROM levels%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	result := []Level{}
	for rows.Next() {
		level, err := scanLevel(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, level)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, level Level) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE levels
		SET name_en = $2, name_ar = $3, description_en = $4, description_ar = $5, updated_at = $6
		WHERE id = $1`,
		level.ID, level.NameEn, level.NameAr, level.DescriptionEn, level.DescriptionAr, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update level: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM levels WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete level: %w", err)
	}
	return requireRow(res)
}

func conditions(q ListQuery) *storeutil.Conditions {
	cond := &storeutil.Conditions{}
	cond.Search(q.Search, "name_en", "name_ar")
	return cond
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLevel(row rowScanner) (Level, error) {
	var level Level
	err := row.Scan(&level.ID, &level.NameEn, &level.NameAr,
		&level.DescriptionEn, &level.DescriptionAr, &level.CreatedAt, &level.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Level{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Level{}, fmt.Errorf("scan level: %w", err)
	}
	return level, nil
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
