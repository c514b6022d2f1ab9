package enrollments

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

const enrollmentColumns = "id, user_id, course_id, status, enrolled_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, enrollment Enrollment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enrollments (id, user_id, course_id, status, enrolled_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		enrollment.ID, enrollment.UserID, enrollment.CourseID,
		enrollment.Status, enrollment.EnrolledAt, enrollment.UpdatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (Enrollment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+enrollmentColumns+" FROM enrollments WHERE id = $1", id)
	return scanEnrollment(row)
}

func (s *PostgresStore) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (Enrollment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+enrollmentColumns+" FROM enrollments WHERE user_id = $1 AND course_id = $2",
		userID, courseID,
	)
	return scanEnrollment(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM enrollments"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Enrollment, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+enrollmentColumns+" FROM enrollments%s ORDER BY enrolled_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	result := []Enrollment{}
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, enrollment)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, enrollment Enrollment) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE enrollments
		SET status = $2, updated_at = $3
		WHERE id = $1`,
		enrollment.ID, enrollment.Status, enrollment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM enrollments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return requireRow(res)
}

func conditions(q ListQuery) *storeutil.Conditions {
	cond := &storeutil.Conditions{}
	if q.UserID != nil {
		cond.Add("user_id = $%d", *q.UserID)
	}
	if q.CourseID != nil {
		cond.Add("course_id = $%d", *q.CourseID)
	}
	return cond
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnrollment(row rowScanner) (Enrollment, error) {
	var enrollment Enrollment
	err := row.Scan(&enrollment.ID, &enrollment.UserID, &enrollment.CourseID,
		&enrollment.Status, &enrollment.EnrolledAt, &enrollment.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Enrollment{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Enrollment{}, fmt.Errorf("scan enrollment: %w", err)
	}
	return enrollment, nil
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
