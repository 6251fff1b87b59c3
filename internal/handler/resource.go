package handler

import (
	"context"
	"net/http"
)

// CollectionService はコレクション操作（一覧・作成）を提供するサービスの形。
// Tはレコード、Inは作成・更新の入力、Lは一覧の要素型。
type CollectionService[T, In, L any] interface {
	List(ctx context.Context) ([]L, error)
	Create(ctx context.Context, in In) (*T, error)
}

// ResourceService はコレクション操作に加え、ID指定の取得・更新・削除を提供する。
type ResourceService[T, In, L any] interface {
	CollectionService[T, In, L]
	Get(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, id int64, in In) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// CollectionHandler は /api/<entity> の GET・POST を処理する。
type CollectionHandler[T, In, L any] struct {
	label   string
	service CollectionService[T, In, L]
	idOf    func(*T) int64
}

// NewCollectionHandler はCollectionHandlerを生成する。
// labelはレスポンスメッセージに使うエンティティ名、idOfは作成結果からIDを取り出す関数。
func NewCollectionHandler[T, In, L any](label string, service CollectionService[T, In, L], idOf func(*T) int64) *CollectionHandler[T, In, L] {
	return &CollectionHandler[T, In, L]{label: label, service: service, idOf: idOf}
}

// List はレコード一覧を返す。レコードがない場合は空配列を返す。
// GET /api/<entity>
func (h *CollectionHandler[T, In, L]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []L{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Create はレコードを作成し、採番されたIDを返す。
// POST /api/<entity>
func (h *CollectionHandler[T, In, L]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := decodeJSON(w, r, &in); err != nil {
		handleServiceError(w, r, err)
		return
	}

	record, err := h.service.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{
		Message: h.label + " created successfully",
		ID:      h.idOf(record),
	})
}

// ResourceHandler は /api/<entity> と /api/<entity>/{id} の全操作を処理する。
type ResourceHandler[T, In, L any] struct {
	*CollectionHandler[T, In, L]
	service ResourceService[T, In, L]
}

// NewResourceHandler はResourceHandlerを生成する。
func NewResourceHandler[T, In, L any](label string, service ResourceService[T, In, L], idOf func(*T) int64) *ResourceHandler[T, In, L] {
	return &ResourceHandler[T, In, L]{
		CollectionHandler: NewCollectionHandler[T, In, L](label, service, idOf),
		service:           service,
	}
}

// Get は指定IDのレコードを返す。
// GET /api/<entity>/{id}
func (h *ResourceHandler[T, In, L]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Update は指定されたフィールドだけを上書きし、更新後のレコードを返す。
// PUT /api/<entity>/{id}
func (h *ResourceHandler[T, In, L]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var in In
	if err := decodeJSON(w, r, &in); err != nil {
		handleServiceError(w, r, err)
		return
	}

	record, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updatedResponse{
		Message: h.label + " updated successfully",
		Data:    record,
	})
}

// Delete は指定IDのレコードを削除する。参照元のレコードは残る。
// DELETE /api/<entity>/{id}
func (h *ResourceHandler[T, In, L]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: h.label + " deleted successfully"})
}
