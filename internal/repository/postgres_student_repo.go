package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/gymdesk/internal/model"
)

// PostgresStudentRepo はPostgreSQLを使用した学生リポジトリ。
type PostgresStudentRepo struct {
	db *sql.DB
}

// NewPostgresStudentRepo はPostgresStudentRepoを生成する。
func NewPostgresStudentRepo(db *sql.DB) *PostgresStudentRepo {
	return &PostgresStudentRepo{db: db}
}

// FindByID は指定IDの学生を取得する。見つからない場合はnilを返す。
func (r *PostgresStudentRepo) FindByID(ctx context.Context, id int64) (*model.Student, error) {
	student := &model.Student{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, age, weight_kg, height_cm, created_at, updated_at
		 FROM students WHERE id = $1`,
		id,
	).Scan(&student.ID, &student.Name, &student.Email, &student.Age, &student.WeightKg, &student.HeightCm, &student.CreatedAt, &student.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("学生の取得に失敗しました: %w", err)
	}

	return student, nil
}

// FindByEmail はメールアドレスで学生を検索する。見つからない場合はnilを返す。
func (r *PostgresStudentRepo) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	student := &model.Student{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, age, weight_kg, height_cm, created_at, updated_at
		 FROM students WHERE email = $1`,
		email,
	).Scan(&student.ID, &student.Name, &student.Email, &student.Age, &student.WeightKg, &student.HeightCm, &student.CreatedAt, &student.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("メールアドレスによる学生の検索に失敗しました: %w", err)
	}

	return student, nil
}

// Create は学生を作成し、採番されたIDと作成日時を書き戻す。
func (r *PostgresStudentRepo) Create(ctx context.Context, student *model.Student) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO students (name, email, age, weight_kg, height_cm)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		student.Name, student.Email, student.Age, student.WeightKg, student.HeightCm,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return fmt.Errorf("学生の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は学生情報を上書き更新する。
func (r *PostgresStudentRepo) Update(ctx context.Context, student *model.Student) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE students SET name = $2, email = $3, age = $4, weight_kg = $5, height_cm = $6, updated_at = NOW()
		 WHERE id = $1`,
		student.ID, student.Name, student.Email, student.Age, student.WeightKg, student.HeightCm,
	)
	if err != nil {
		return fmt.Errorf("学生の更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("学生が見つかりません: %d", student.ID)
	}
	return nil
}

// List は全学生を作成日時の昇順で返す。
func (r *PostgresStudentRepo) List(ctx context.Context) ([]*model.Student, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, age, weight_kg, height_cm, created_at, updated_at
		 FROM students ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("学生一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		student := &model.Student{}
		if err := rows.Scan(&student.ID, &student.Name, &student.Email, &student.Age, &student.WeightKg, &student.HeightCm, &student.CreatedAt, &student.UpdatedAt); err != nil {
			return nil, fmt.Errorf("学生行の読み取りに失敗しました: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("学生一覧の走査に失敗しました: %w", err)
	}
	return students, nil
}

// Delete は指定IDの学生を削除する。
func (r *PostgresStudentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM students WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("学生の削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("学生が見つかりません: %d", id)
	}
	return nil
}

// compile-time interface check
var _ StudentRepository = (*PostgresStudentRepo)(nil)
