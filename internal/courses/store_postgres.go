package courses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const courseColumns = "id, name_en, name_ar, description_en, description_ar, category_id, trainer_id, level_id, published, price, url, syllabus_en, syllabus_ar, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, course Course) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO courses (id, name_en, name_ar, description_en, description_ar, category_id, trainer_id, level_id, published, price, url, syllabus_en, syllabus_ar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		course.ID, course.NameEn, course.NameAr, course.DescriptionEn, course.DescriptionAr,
		course.CategoryID, course.TrainerID, course.LevelID, course.Published, course.Price,
		course.URL, course.SyllabusEn, course.SyllabusAr, course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (Course, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = $1", id)
	return scanCourse(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM courses"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Course, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+courseColumns+" FROM courses%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	result := []Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, course)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, course Course) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE courses
		SET name_en = $2, name_ar = $3, description_en = $4, description_ar = $5,
		    category_id = $6, trainer_id = $7, level_id = $8, published = $9,
		    price = $10, url = $11, syllabus_en = $12, syllabus_ar = $13, updated_at = $14
		WHERE id = $1`,
		course.ID, course.NameEn, course.NameAr, course.DescriptionEn, course.DescriptionAr,
		course.CategoryID, course.TrainerID, course.LevelID, course.Published, course.Price,
		course.URL, course.SyllabusEn, course.SyllabusAr, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return requireRow(res)
}

func conditions(q ListQuery) *storeutil.Conditions {
	cond := &storeutil.Conditions{}
	if q.CategoryID != nil {
		cond.Add("category_id = $%d", *q.CategoryID)
	}
	if q.TrainerID != nil {
		cond.Add("trainer_id = $%d", *q.TrainerID)
	}
	if q.LevelID != nil {
		cond.Add("level_id = $%d", *q.LevelID)
	}
	if q.Published != nil {
		cond.Add("published = $%d", *q.Published)
	}
	if q.MinPrice != nil {
		cond.Add("price >= $%d", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		cond.Add("price <= $%d", *q.MaxPrice)
	}
	cond.Search(q.Search, "name_en", "name_ar", "description_en", "description_ar")
	return cond
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (Course, error) {
	var course Course
	err := row.Scan(&course.ID, &course.NameEn, &course.NameAr,
		&course.DescriptionEn, &course.DescriptionAr, &course.CategoryID,
		&course.TrainerID, &course.LevelID, &course.Published, &course.Price,
		&course.URL, &course.SyllabusEn, &course.SyllabusAr,
		&course.CreatedAt, &course.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Course{}, fmt.Errorf("scan course: %w", err)
	}
	return course, nil
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
