// Package handler はPOSレコードのHTTPハンドラーとルーティングを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/posledger/internal/middleware"
	"github.com/hitoshi/posledger/internal/model"
)

// maxBodyBytes はリクエストボディの上限サイズ。
const maxBodyBytes = 1 << 20

// createdResponse は作成成功時のレスポンス。
type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// updatedResponse は更新成功時のレスポンス。更新後のレコードを含む。
type updatedResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// messageResponse は削除成功時のレスポンス。
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON はステータスコードとともにJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// parseID はURLパラメータのidを整数として解釈する。
// 0や負の値は形式として正しいため受け付け、該当行なしとして404に落とす。
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.NewInvalidRequestError(fmt.Sprintf("不正なIDです: %q", raw))
	}
	return id, nil
}

// decodeJSON はリクエストボディをdstにデコードする。
// 空ボディ・不正なJSON・型の不一致・末尾の余分なデータはいずれもINVALID_REQUESTになる。
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return model.NewInvalidRequestError("リクエストボディの解析に失敗しました: " + err.Error())
	}
	// ボディは単一のJSON値でなければならない
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return model.NewInvalidRequestError("リクエストボディに余分なデータがあります")
	}
	return nil
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteAPIError(w, r, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		slog.String("error", err.Error()),
	)
	middleware.WriteInternalServerError(w, r)
}
