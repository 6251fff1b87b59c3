// Package model はドメインモデルを定義する。
package model

import (
	"fmt"
	"strings"
)

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, resource, system
	Action   string // 利用者向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeDuplicateUsername = "DUPLICATE_USERNAME"
	ErrCodeRateLimited       = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// NewNotFoundError は指定IDのレコードが存在しない場合のエラーを生成する。
func NewNotFoundError(entity string, id int64) *APIError {
	return &APIError{
		Code:     ErrCodeNotFound,
		Message:  fmt.Sprintf("%sが見つかりません: id=%d", entity, id),
		Category: "resource",
		Action:   "IDを確認してください。",
	}
}

// NewValidationError は必須フィールドが欠けている場合のエラーを生成する。
func NewValidationError(missing []string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  "missing required fields: " + strings.Join(missing, ", "),
		Category: "validation",
		Action:   "必須フィールドを指定してリクエストしてください。",
	}
}

// NewInvalidValueError はフィールド値が不正な場合のエラーを生成する。
func NewInvalidValueError(field, reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("invalid value for %s: %s", field, reason),
		Category: "validation",
		Action:   "フィールドの値を確認してください。",
	}
}

// NewInvalidRequestError はリクエストの形式が不正な場合のエラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  reason,
		Category: "validation",
		Action:   "正しいJSON形式とIDでリクエストしてください。",
	}
}

// NewDuplicateUsernameError はユーザー名が既に使用されている場合のエラーを生成する。
func NewDuplicateUsernameError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateUsername,
		Message:  fmt.Sprintf("ユーザー名は既に使用されています: %s", username),
		Category: "validation",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewRateLimitError はレート制限超過時のエラーを生成する。
func NewRateLimitError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimited,
		Message:  "リクエストが多すぎます。",
		Category: "system",
		Action:   "Retry-Afterヘッダーの秒数だけ待ってから再度お試しください。",
	}
}

// NewInternalError は内部エラーの利用者向け表現を生成する。
// 詳細はログのみに記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// missingFields は必須チェックの結果を組み立てる補助。
type missingFields []string

func (m *missingFields) require(present bool, name string) {
	if !present {
		*m = append(*m, name)
	}
}

func (m missingFields) err() error {
	if len(m) == 0 {
		return nil
	}
	return NewValidationError(m)
}
