package pricing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

const planColumns = "id, name_en, name_ar, price, period, features_en, features_ar, active, created_at, updated_at"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, plan Plan) (Plan, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO pricing_plans (name_en, name_ar, price, period, features_en, features_ar, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		plan.NameEn, plan.NameAr, plan.Price, plan.Period,
		plan.FeaturesEn, plan.FeaturesAr, plan.Active, plan.CreatedAt, plan.UpdatedAt,
	).Scan(&plan.ID)
	if err != nil {
		return Plan{}, fmt.Errorf("insert pricing plan: %w", err)
	}
	return plan, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Plan, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+planColumns+" FROM pricing_plans WHERE id = $1", id)
	return scanPlan(row)
}

func (s *PostgresStore) Count(ctx context.Context, q ListQuery) (int, error) {
	cond := conditions(q)
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM pricing_plans"+cond.Where(), cond.Args()...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count pricing plans: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) List(ctx context.Context, q ListQuery) ([]Plan, error) {
	cond := conditions(q)
	query := fmt.Sprintf(
		"SELECT "+planColumns+" FROM pricing_plans%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		cond.Where(), cond.NextArg(q.Limit), cond.NextArg(q.Offset),
	)
	rows, err := s.db.QueryContext(ctx, query, cond.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list pricing plans: %w", err)
	}
	defer rows.Close()

	result := []Plan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, plan)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, plan Plan) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pricing_plans
		SET name_en = $2, name_ar = $3, price = $4, period = $5,
		    features_en = $6, features_ar = $7, active = $8, updated_at = $9
		WHERE id = $1`,
		plan.ID, plan.NameEn, plan.NameAr, plan.Price, plan.Period,
		plan.FeaturesEn, plan.FeaturesAr, plan.Active, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pricing plan: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pricing_plans WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete pricing plan: %w", err)
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

func scanPlan(row rowScanner) (Plan, error) {
	var plan Plan
	err := row.Scan(&plan.ID, &plan.NameEn, &plan.NameAr, &plan.Price, &plan.Period,
		&plan.FeaturesEn, &plan.FeaturesAr, &plan.Active, &plan.CreatedAt, &plan.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("scan pricing plan: %w", err)
	}
	return plan, nil
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
