package specialities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const specialityColumns = "id, name_en, name_ar, description_en, description_ar, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, speciality Speciality) (Speciality, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO specialities (name_en, name_ar, description_en, description_ar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		speciality.NameEn, speciality.NameAr, speciality.DescriptionEn, speciality.DescriptionAr,
		speciality.CreatedAt, speciality.UpdatedAt,
	).Scan(&speciality.ID)
	if err != nil {
		return Speciality{}, fmt.Errorf("insert speciality: %w", err)
	}
	return speciality, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Speciality, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+specialityColumns+" FROM specialities WHERE id = $1", id)
	return scanSpeciality(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM specialities"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count specialities: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Speciality, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+specialityColumns+" FROM specialities%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list specialities: %w", err)
	}
	defer rows.Close()

	result := []Speciality{}
	for rows.Next() {
		speciality, err := scanSpeciality(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, speciality)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, speciality Speciality) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE specialities
		SET name_en = $2, name_ar = $3, description_en = $4, description_ar = $5, updated_at = $6
		WHERE id = $1`,
		speciality.ID, speciality.NameEn, speciality.NameAr,
		speciality.DescriptionEn, speciality.DescriptionAr, speciality.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update speciality: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM specialities WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete speciality: %w", err)
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

func scanSpeciality(row rowScanner) (Speciality, error) {
	var speciality Speciality
	err := row.Scan(&speciality.ID, &speciality.NameEn, &speciality.NameAr,
		&speciality.DescriptionEn, &speciality.DescriptionAr,
		&speciality.CreatedAt, &speciality.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Speciality{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Speciality{}, fmt.Errorf("scan speciality: %w", err)
	}
	return speciality, nil
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
