package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/gymdesk/internal/model"
)

// PostgresRegistrationRepo はPostgreSQLを使用した受講登録リポジトリ。
type PostgresRegistrationRepo struct {
	db *sql.DB
}

// NewPostgresRegistrationRepo はPostgresRegistrationRepoを生成する。
func NewPostgresRegistrationRepo(db *sql.DB) *PostgresRegistrationRepo {
	return &PostgresRegistrationRepo{db: db}
}

// FindByID は指定IDの受講登録を取得する。見つからない場合はnilを返す。
func (r *PostgresRegistrationRepo) FindByID(ctx context.Context, id int64) (*model.Registration, error) {
	reg := &model.Registration{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, student_id, plan_id, start_date, end_date, price, cancelled_at, created_at, updated_at
		 FROM registrations WHERE id = $1`,
		id,
	).Scan(&reg.ID, &reg.StudentID, &reg.PlanID, &reg.StartDate, &reg.EndDate, &reg.Price, &reg.CancelledAt, &reg.CreatedAt, &reg.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("受講登録の取得に失敗しました: %w", err)
	}

	return reg, nil
}

// Create は受講登録を作成し、採番されたIDと作成日時を書き戻す。
func (r *PostgresRegistrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO registrations (student_id, plan_id, start_date, end_date, price)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		reg.StudentID, reg.PlanID, reg.StartDate, reg.EndDate, reg.Price,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("受講登録の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は受講登録の参照先・期間・価格を上書き更新する。
func (r *PostgresRegistrationRepo) Update(ctx context.Context, reg *model.Registration) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE registrations
		 SET student_id = $2, plan_id = $3, start_date = $4, end_date = $5, price = $6, updated_at = NOW()
		 WHERE id = $1`,
		reg.ID, reg.StudentID, reg.PlanID, reg.StartDate, reg.EndDate, reg.Price,
	)
	if err != nil {
		return fmt.Errorf("受講登録の更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("受講登録が見つかりません: %d", reg.ID)
	}
	return nil
}

// ListActiveWithDetails は未キャンセルの受講登録一覧を
// 学生名・プランタイトル付きで作成日時の昇順で返す。
func (r *PostgresRegistrationRepo) ListActiveWithDetails(ctx context.Context) ([]RegistrationWithDetails, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			r.id, r.student_id, r.plan_id, r.start_date, r.end_date, r.price,
			r.cancelled_at, r.created_at, r.updated_at,
			s.name, s.email, p.title
		 FROM registrations r
		 JOIN students s ON r.student_id = s.id
		 JOIN plans p ON r.plan_id = p.id
		 WHERE r.cancelled_at IS NULL
		 ORDER BY r.created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("受講登録一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var results []RegistrationWithDetails
	for rows.Next() {
		var detail RegistrationWithDetails
		if err := rows.Scan(
			&detail.ID, &detail.StudentID, &detail.PlanID, &detail.StartDate, &detail.EndDate, &detail.Price,
			&detail.CancelledAt, &detail.CreatedAt, &detail.UpdatedAt,
			&detail.StudentName, &detail.StudentEmail, &detail.PlanTitle,
		); err != nil {
			return nil, fmt.Errorf("受講登録行の読み取りに失敗しました: %w", err)
		}
		results = append(results, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("受講登録一覧の走査に失敗しました: %w", err)
	}
	return results, nil
}

// Cancel は受講登録のcancelled_atを現在時刻に設定する（ソフトキャンセル）。
// 既にキャンセル済みの場合は何も更新せずfalseを返す。
func (r *PostgresRegistrationRepo) Cancel(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET cancelled_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND cancelled_at IS NULL`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("受講登録のキャンセルに失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("キャンセル結果の取得に失敗しました: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ RegistrationRepository = (*PostgresRegistrationRepo)(nil)
