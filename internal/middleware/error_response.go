package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/posledger/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// request_idはログとの突き合わせ用で、RequestIDミドルウェアを通った場合のみ入る。
type ErrorResponseBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Category  string `json:"category"`
	Action    string `json:"action"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusForAPIError はエラーコードに対応するHTTPステータスを返す。
// 未知のコードは500として扱う。
func StatusForAPIError(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeValidation, model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case model.ErrCodeDuplicateUsername:
		return http.StatusConflict
	case model.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WriteAPIError はエラーコードからステータスを決めて統一フォーマットで書き込む。
func WriteAPIError(w http.ResponseWriter, r *http.Request, apiErr *model.APIError) {
	writeError(w, r, StatusForAPIError(apiErr), apiErr)
}

// WriteErrorResponse はステータスを明示して統一フォーマットで書き込む。
// コードとステータスの対応が表に従わない場合（405など）に使う。
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, apiErr *model.APIError) {
	writeError(w, r, statusCode, apiErr)
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録する。
func WriteInternalServerError(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusInternalServerError, model.NewInternalError())
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, apiErr *model.APIError) {
	body := ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	}
	if r != nil {
		body.RequestID = RequestIDFromContext(r.Context())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
