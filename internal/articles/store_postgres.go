package articles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const articleColumns = "id, title_en, title_ar, content_en, content_ar, category_id, image_url, published, publish_date, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, article Article) (Article, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (title_en, title_ar, content_en, content_ar, category_id, image_url, published, publish_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		article.TitleEn, article.TitleAr, article.ContentEn, article.ContentAr,
		article.CategoryID, article.ImageURL, article.Published, article.PublishDate,
		article.CreatedAt, article.UpdatedAt,
	).Scan(&article.ID)
	if err != nil {
		return Article{}, fmt.Errorf("insert article: %w", err)
	}
	return article, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = $1", id)
	return scanArticle(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM articles"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Article, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+articleColumns+" FROM articles%s ORDER BY publish_date DESC NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	result := []Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, article)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, article Article) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles
		SET title_en = $2, title_ar = $3, content_en = $4, content_ar = $5,
		    category_id = $6, image_url = $7, published = $8, publish_date = $9, updated_at = $10
		WHERE id = $1`,
		article.ID, article.TitleEn, article.TitleAr, article.ContentEn, article.ContentAr,
		article.CategoryID, article.ImageURL, article.Published, article.PublishDate, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return requireRow(res)
}

func conditions(q ListQuery) *storeutil.Conditions {
	cond := &storeutil.Conditions{}
	if q.Published != nil {
		cond.Add("published = $%d", *q.Published)
	}
	cond.Search(q.Search, "title_en", "title_ar", "content_en", "content_ar")
	return cond
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (Article, error) {
	var article Article
	err := row.Scan(&article.ID, &article.TitleEn, &article.TitleAr,
		&article.ContentEn, &article.ContentAr, &article.CategoryID, &article.ImageURL,
		&article.Published, &article.PublishDate, &article.CreatedAt, &article.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Article{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Article{}, fmt.Errorf("scan article: %w", err)
	}
	return article, nil
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
