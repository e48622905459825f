// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/gymdesk/internal/model"
)

// UserRepository は管理者ユーザーの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成し、採番されたIDと作成日時を書き戻す。
	Create(ctx context.Context, user *model.User) error

	// Update はユーザー情報を上書き更新する。
	Update(ctx context.Context, user *model.User) error
}

// StudentRepository は学生データの永続化インターフェース（Student Directory）。
type StudentRepository interface {
	// FindByID は指定IDの学生を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Student, error)

	// FindByEmail はメールアドレスで学生を検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Student, error)

	// Create は学生を作成し、採番されたIDと作成日時を書き戻す。
	Create(ctx context.Context, student *model.Student) error

	// Update は学生情報を上書き更新する。
	Update(ctx context.Context, student *model.Student) error

	// List は全学生を作成日時の昇順で返す。
	List(ctx context.Context) ([]*model.Student, error)

	// Delete は指定IDの学生を削除する。
	Delete(ctx context.Context, id int64) error
}

// PlanRepository はプランデータの永続化インターフェース（Plan Catalog）。
type PlanRepository interface {
	// FindByID は指定IDのプランを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Plan, error)

	// FindByTitle はタイトルでプランを検索する。見つからない場合はnilを返す。
	FindByTitle(ctx context.Context, title string) (*model.Plan, error)

	// Create はプランを作成し、採番されたIDと作成日時を書き戻す。
	Create(ctx context.Context, plan *model.Plan) error

	// Update はプラン情報を上書き更新する。
	Update(ctx context.Context, plan *model.Plan) error

	// List は全プランを契約月数の昇順で返す。
	List(ctx context.Context) ([]*model.Plan, error)

	// Delete は指定IDのプランを削除する。
	Delete(ctx context.Context, id int64) error
}

// RegistrationRepository は受講登録データの永続化インターフェース。
type RegistrationRepository interface {
	// FindByID は指定IDの受講登録を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Registration, error)

	// Create は受講登録を作成し、採番されたIDと作成日時を書き戻す。
	Create(ctx context.Context, reg *model.Registration) error

	// Update は受講登録の参照先・期間・価格を上書き更新する。
	Update(ctx context.Context, reg *model.Registration) error

	// ListActiveWithDetails は未キャンセルの受講登録一覧を
	// 学生名・プランタイトル付きで作成日時の昇順で返す。
	ListActiveWithDetails(ctx context.Context) ([]RegistrationWithDetails, error)

	// Cancel は受講登録のcancelled_atを現在時刻に設定する（ソフトキャンセル）。
	// 既にキャンセル済みの場合は何も更新せずfalseを返す。
	Cancel(ctx context.Context, id int64) (bool, error)
}

// RegistrationWithDetails は受講登録と学生名・プランタイトルを結合した読み取り専用ビュー。
type RegistrationWithDetails struct {
	model.Registration
	StudentName  string
	StudentEmail string
	PlanTitle    string
}
