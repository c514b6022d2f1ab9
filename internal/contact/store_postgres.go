package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const messageColumns = "id, name, email, subject, message, read, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, message Message) (Message, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, message, read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		message.Name, message.Email, message.Subject, message.Message,
		message.Read, message.CreatedAt, message.UpdatedAt,
	).Scan(&message.ID)
	if err != nil {
		return Message{}, fmt.Errorf("insert contact message: %w", err)
	}
	return message, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Message, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM contact_messages WHERE id = $1", id)
	return scanMessage(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM contact_messages"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Message, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+messageColumns+" FROM contact_messages%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	result := []Message{}
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, message Message) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contact_messages
		SET name = $2, email = $3, subject = $4, message = $5, read = $6, updated_at = $7
		WHERE id = $1`,
		message.ID, message.Name, message.Email, message.Subject,
		message.Message, message.Read, message.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact message: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM contact_messages WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	return requireRow(res)
}

func conditions(q ListQuery) *storeutil.Conditions {
	cond := &storeutil.Conditions{}
	if q.Read != nil {
		cond.Add("read = $%d", *q.Read)
	}
	cond.Search(q.Search, "name", "email", "subject", "message")
	return cond
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (Message, error) {
	var message Message
	err := row.Scan(&message.ID, &message.Name, &message.Email, &message.Subject,
		&message.Message, &message.Read, &message.CreatedAt, &message.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Message{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Message{}, fmt.Errorf("scan contact message: %w", err)
	}
	return message, nil
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
