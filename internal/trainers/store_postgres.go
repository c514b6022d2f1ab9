package trainers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const trainerColumns = "id, name_en, name_ar, bio_en, bio_ar, speciality_id, email, phone, photo_url, active, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, trainer Trainer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trainers (id, name_en, name_ar, bio_en, bio_ar, speciality_id, email, phone, photo_url, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		trainer.ID, trainer.NameEn, trainer.NameAr, trainer.BioEn, trainer.BioAr,
		trainer.SpecialityID, trainer.Email, trainer.Phone, trainer.PhotoURL,
		trainer.Active, trainer.CreatedAt, trainer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trainer: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (Trainer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+trainerColumns+" FROM trainers WHERE id = $1", id)
	return scanTrainer(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM trainers"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count trainers: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Trainer, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+trainerColumns+" FROM trainers%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	defer rows.Close()

	result := []Trainer{}
	for rows.Next() {
		trainer, err := scanTrainer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, trainer)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, trainer Trainer) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE trainers
		SET name_en = $2, name_ar = $3, bio_en = $4, bio_ar = $5, speciality_id = $6,
		    email = $7, phone = $8, photo_url = $9, active = $10, updated_at = $11
		WHERE id = $1`,
		trainer.ID, trainer.NameEn, trainer.NameAr, trainer.BioEn, trainer.BioAr,
		trainer.SpecialityID, trainer.Email, trainer.Phone, trainer.PhotoURL,
		trainer.Active, trainer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update trainer: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trainers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete trainer: %w", err)
	}
	return requireRow(res)
}

func conditions(q ListQuery) *storeutil.Conditions {
	cond := &storeutil.Conditions{}
	if q.Active != nil {
		cond.Add("active = $%d", *q.Active)
	}
	cond.Search(q.Search, "name_en", "name_ar")
	return cond
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrainer(row rowScanner) (Trainer, error) {
	var trainer Trainer
	err := row.Scan(&trainer.ID, &trainer.NameEn, &trainer.NameAr, &trainer.BioEn, &trainer.BioAr,
		&trainer.SpecialityID, &trainer.Email, &trainer.Phone, &trainer.PhotoURL,
		&trainer.Active, &trainer.CreatedAt, &trainer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Trainer{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Trainer{}, fmt.Errorf("scan trainer: %w", err)
	}
	return trainer, nil
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
