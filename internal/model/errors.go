// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, registration, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeStudentNotFound      = "STUDENT_NOT_FOUND"
	ErrCodePlanNotFound         = "PLAN_NOT_FOUND"
	ErrCodeRegistrationNotFound = "REGISTRATION_NOT_FOUND"
	ErrCodeDuplicateStudent     = "DUPLICATE_STUDENT"
	ErrCodeDuplicatePlan        = "DUPLICATE_PLAN"
	ErrCodeDuplicateUser        = "DUPLICATE_USER"
	ErrCodeAlreadyCancelled     = "ALREADY_CANCELLED"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodePasswordMismatch     = "PASSWORD_MISMATCH"
)

// NewValidationError は入力値検証エラーを生成する。
func NewValidationError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("入力値の検証に失敗しました: %s", reason),
		Category: "validation",
		Action:   "リクエストの内容を確認して再送信してください。",
	}
}

// NewStudentNotFoundError は学生未検出エラーを生成する。
func NewStudentNotFoundError(studentID int64) *APIError {
	return &APIError{
		Code:     ErrCodeStudentNotFound,
		Message:  fmt.Sprintf("指定された学生が見つかりません: %d", studentID),
		Category: "registration",
		Action:   "学生IDを確認してください。",
	}
}

// NewPlanNotFoundError はプラン未検出エラーを生成する。
func NewPlanNotFoundError(planID int64) *APIError {
	return &APIError{
		Code:     ErrCodePlanNotFound,
		Message:  fmt.Sprintf("指定されたプランが見つかりません: %d", planID),
		Category: "registration",
		Action:   "プランIDを確認してください。",
	}
}

// NewRegistrationNotFoundError は受講登録未検出エラーを生成する。
func NewRegistrationNotFoundError(registrationID int64) *APIError {
	return &APIError{
		Code:     ErrCodeRegistrationNotFound,
		Message:  fmt.Sprintf("指定された受講登録が見つかりません: %d", registrationID),
		Category: "registration",
		Action:   "受講登録IDを確認してください。",
	}
}

// NewDuplicateStudentError はメールアドレスが重複する学生登録のエラーを生成する。
func NewDuplicateStudentError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateStudent,
		Message:  fmt.Sprintf("このメールアドレスの学生は既に存在します: %s", email),
		Category: "validation",
		Action:   "別のメールアドレスを使用するか、既存の学生情報を更新してください。",
	}
}

// NewDuplicatePlanError はタイトルが重複するプラン登録のエラーを生成する。
func NewDuplicatePlanError(title string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicatePlan,
		Message:  fmt.Sprintf("このタイトルのプランは既に存在します: %s", title),
		Category: "validation",
		Action:   "別のタイトルを使用するか、既存のプランを更新してください。",
	}
}

// NewDuplicateUserError はメールアドレスが重複するユーザー登録のエラーを生成する。
func NewDuplicateUserError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateUser,
		Message:  fmt.Sprintf("このメールアドレスのユーザーは既に存在します: %s", email),
		Category: "auth",
		Action:   "別のメールアドレスを使用してください。",
	}
}

// NewAlreadyCancelledError はキャンセル済みの受講登録への再キャンセルエラーを生成する。
func NewAlreadyCancelledError(registrationID int64) *APIError {
	return &APIError{
		Code:     ErrCodeAlreadyCancelled,
		Message:  fmt.Sprintf("受講登録は既にキャンセルされています: %d", registrationID),
		Category: "registration",
		Action:   "有効な受講登録に対してのみキャンセルできます。",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// メールアドレス未登録とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "認証情報を確認して再度お試しください。",
	}
}

// NewPasswordMismatchError は現在のパスワード不一致エラーを生成する。
func NewPasswordMismatchError() *APIError {
	return &APIError{
		Code:     ErrCodePasswordMismatch,
		Message:  "現在のパスワードが一致しません。",
		Category: "auth",
		Action:   "現在のパスワードを正しく入力してください。",
	}
}
