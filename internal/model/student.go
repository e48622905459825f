// Package model はドメインモデルを定義する。
package model

import "time"

// Student はジムに在籍する学生を表す。
// メールアドレスは全学生を通して一意。
type Student struct {
	ID        int64
	Name      string
	Email     string
	Age       int
	WeightKg  float64
	HeightCm  float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
