// Package model はドメインモデルを定義する。
package model

import "time"

// Plan は会員プランを表す。
// Priceは月額、DurationMonthsは契約期間（月数）。
// 受講登録ワークフローからはイミュータブルとして扱う。
type Plan struct {
	ID             int64
	Title          string
	Price          float64
	DurationMonths int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TotalPrice はプラン全期間の合計金額を返す。
// 合計 = 月額 × 契約月数。
func (p *Plan) TotalPrice() float64 {
	return p.Price * float64(p.DurationMonths)
}
