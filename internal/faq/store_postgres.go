package faq

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const questionColumns = "id, title_en, title_ar, answer_en, answer_ar, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, question Question) (Question, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO frequent_questions (title_en, title_ar, answer_en, answer_ar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		question.TitleEn, question.TitleAr, question.AnswerEn, question.AnswerAr,
		question.CreatedAt, question.UpdatedAt,
	).Scan(&question.ID)
	if err != nil {
		return Question{}, fmt.Errorf("insert frequent question: %w", err)
	}
	return question, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Question, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+questionColumns+" FROM frequent_questions WHERE id = $1", id)
	return scanQuestion(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM frequent_questions"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count frequent questions: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Question, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+questionColumns+" FROM frequent_questions%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list frequent questions: %w", err)
	}
	defer rows.Close()

	result := []Question{}
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, question)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, question Question) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE frequent_questions
		SET title_en = $2, title_ar = $3, answer_en = $4, answer_ar = $5, updated_at = $6
		WHERE id = $1`,
		question.ID, question.TitleEn, question.TitleAr,
		question.AnswerEn, question.AnswerAr, question.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update frequent question: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM frequent_questions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete frequent question: %w", err)
	}
	return requireRow(res)
}

func conditions(q ListQuery) *storeutil.Conditions {
	cond := &storeutil.Conditions{}
	cond.Search(q.Search, "title_en", "title_ar", "answer_en", "answer_ar")
	return cond
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var question Question
	err := row.Scan(&question.ID, &question.TitleEn, &question.TitleAr,
		&question.AnswerEn, &question.AnswerAr, &question.CreatedAt, &question.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Question{}, fmt.Errorf("scan frequent question: %w", err)
	}
	return question, nil
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
