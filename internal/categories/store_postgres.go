package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const categoryColumns = "id, name_en, name_ar, description_en, description_ar, tags, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, category Category) (Category, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name_en, name_ar, description_en, description_ar, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		category.NameEn, category.NameAr, category.DescriptionEn, category.DescriptionAr,
		category.Tags, category.CreatedAt, category.UpdatedAt,
	).Scan(&category.ID)
	if err != nil {
		return Category{}, fmt.Errorf("insert category: %w", err)
	}
	return category, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Category, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = $1", id)
	return scanCategory(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM categories"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Category, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+categoryColumns+" FROM categories%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	result := []Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, category Category) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET name_en = $2, name_ar = $3, description_en = $4, description_ar = $5, tags = $6, updated_at = $7
		WHERE id = $1`,
		category.ID, category.NameEn, category.NameAr,
		category.DescriptionEn, category.DescriptionAr, category.Tags, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
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

func scanCategory(row rowScanner) (Category, error) {
	var category Category
	err := row.Scan(&category.ID, &category.NameEn, &category.NameAr,
		&category.DescriptionEn, &category.DescriptionAr, &category.Tags,
		&category.CreatedAt, &category.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Category{}, fmt.Errorf("scan category: %w", err)
	}
	return category, nil
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
