// Package model はドメインモデルを定義する。
package model

import "time"

// User はジムの管理者ユーザーを表す。
// 学生・プラン・受講登録の管理操作を行う唯一の認証主体。
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
