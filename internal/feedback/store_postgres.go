package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const feedbackColumns = "id, course_id, user_id, email, rating, comment_en, comment_ar, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, fb Feedback) (Feedback, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO feedback (course_id, user_id, email, rating, comment_en, comment_ar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		fb.CourseID, fb.UserID, fb.Email, fb.Rating,
		fb.CommentEn, fb.CommentAr, fb.CreatedAt, fb.UpdatedAt,
	).Scan(&fb.ID)
	if err != nil {
		return Feedback{}, fmt.Errorf("insert feedback: %w", err)
	}
	return fb, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Feedback, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+feedbackColumns+" FROM feedback WHERE id = $1", id)
	return scanFeedback(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM feedback"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Feedback, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+feedbackColumns+" FROM feedback%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	result := []Feedback{}
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, fb Feedback) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE feedback
		SET rating = $2, comment_en = $3, comment_ar = $4, updated_at = $5
		WHERE id = $1`,
		fb.ID, fb.Rating, fb.CommentEn, fb.CommentAr, fb.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM feedback WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return requireRow(res)
}

func conditions(q ListQuery) *storeutil.Conditions {
	cond := &storeutil.Conditions{}
	if q.CourseID != nil {
		cond.Add("course_id = $%d", *q.CourseID)
	}
	if q.UserID != nil {
		cond.Add("user_id = $%d", *q.UserID)
	}
	return cond
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row rowScanner) (Feedback, error) {
	var fb Feedback
	err := row.Scan(&fb.ID, &fb.CourseID, &fb.UserID, &fb.Email, &fb.Rating,
		&fb.CommentEn, &fb.CommentAr, &fb.CreatedAt, &fb.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Feedback{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Feedback{}, fmt.Errorf("scan feedback: %w", err)
	}
	return fb, nil
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
