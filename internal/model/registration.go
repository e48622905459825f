// Package model はドメインモデルを定義する。
package model

import "time"

// Registration は学生とプランを結びつける受講登録を表す。
// StartDateはその日の終端（23:59:59.999）に正規化され、
// EndDateとPriceはプランから導出される。生の入力値を信用しない。
type Registration struct {
	ID          int64
	StudentID   int64
	PlanID      int64
	StartDate   time.Time
	EndDate     time.Time
	Price       float64
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive は受講登録が有効（未キャンセル）かどうかを返す。
func (r *Registration) IsActive() bool {
	return r.CancelledAt == nil
}
