package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/gymdesk/internal/model"
)

// PostgresPlanRepo はPostgreSQLを使用したプランリポジトリ。
type PostgresPlanRepo struct {
	db *sql.DB
}

// NewPostgresPlanRepo はPostgresPlanRepoを生成する。
func NewPostgresPlanRepo(db *sql.DB) *PostgresPlanRepo {
	return &PostgresPlanRepo{db: db}
}

// FindByID は指定IDのプランを取得する。見つからない場合はnilを返す。
func (r *PostgresPlanRepo) FindByID(ctx context.Context, id int64) (*model.Plan, error) {
	plan := &model.Plan{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, price, duration_months, created_at, updated_at
		 FROM plans WHERE id = $1`,
		id,
	).Scan(&plan.ID, &plan.Title, &plan.Price, &plan.DurationMonths, &plan.CreatedAt, &plan.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("プランの取得に失敗しました: %w", err)
	}

	return plan, nil
}

// FindByTitle はタイトルでプランを検索する。見つからない場合はnilを返す。
func (r *PostgresPlanRepo) FindByTitle(ctx context.Context, title string) (*model.Plan, error) {
	plan := &model.Plan{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, price, duration_months, created_at, updated_at
		 FROM plans WHERE title = $1`,
		title,
	).Scan(&plan.ID, &plan.Title, &plan.Price, &plan.DurationMonths, &plan.CreatedAt, &plan.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("タイトルによるプランの検索に失敗しました: %w", err)
	}

	return plan, nil
}

// Create はプランを作成し、採番されたIDと作成日時を書き戻す。
func (r *PostgresPlanRepo) Create(ctx context.Context, plan *model.Plan) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO plans (title, price, duration_months)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		plan.Title, plan.Price, plan.DurationMonths,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("プランの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はプラン情報を上書き更新する。
func (r *PostgresPlanRepo) Update(ctx context.Context, plan *model.Plan) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE plans SET title = $2, price = $3, duration_months = $4, updated_at = NOW()
		 WHERE id = $1`,
		plan.ID, plan.Title, plan.Price, plan.DurationMonths,
	)
	if err != nil {
		return fmt.Errorf("プランの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("プランが見つかりません: %d", plan.ID)
	}
	return nil
}

// List は全プランを契約月数の昇順で返す。
func (r *PostgresPlanRepo) List(ctx context.Context) ([]*model.Plan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, price, duration_months, created_at, updated_at
		 FROM plans ORDER BY duration_months ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("プラン一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var plans []*model.Plan
	for rows.Next() {
		plan := &model.Plan{}
		if err := rows.Scan(&plan.ID, &plan.Title, &plan.Price, &plan.DurationMonths, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, fmt.Errorf("プラン行の読み取りに失敗しました: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("プラン一覧の走査に失敗しました: %w", err)
	}
	return plans, nil
}

// Delete は指定IDのプランを削除する。
func (r *PostgresPlanRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM plans WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("プランの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("プランが見つかりません: %d", id)
	}
	return nil
}

// compile-time interface check
var _ PlanRepository = (*PostgresPlanRepo)(nil)
