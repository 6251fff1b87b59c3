// Package service はエンティティごとのユースケースを提供する。
// ハンドラーとリポジトリの間で入力検証、エラー変換、変更通知を担う。
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/posledger/internal/events"
	"github.com/hitoshi/posledger/internal/metrics"
	"github.com/hitoshi/posledger/internal/model"
	"github.com/hitoshi/posledger/internal/repository"
)

// defaultPublishTimeout はイベント発行1件あたりの上限時間。
// 発行はリクエストのgoroutine上で行うため、ブローカーが詰まった場合の
// 変更系リクエストの遅延はこの値で頭打ちになる。
const defaultPublishTimeout = 500 * time.Millisecond

// Notifier はコミット済みの変更をメトリクスとイベントに反映する。
// 発行の失敗はログとメトリクスにのみ残し、呼び出し元には返さない。
// 発行は同期的に行うので、応答が返った時点でイベントは送信済みか失敗済みのどちらか。
type Notifier struct {
	metrics        metrics.MetricsCollector
	publisher      events.Publisher
	now            func() time.Time
	publishTimeout time.Duration
}

// NewNotifier はNotifierを生成する。publisherがnilの場合はイベントを発行しない。
func NewNotifier(m metrics.MetricsCollector, publisher events.Publisher) *Notifier {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Notifier{
		metrics:        m,
		publisher:      publisher,
		now:            time.Now,
		publishTimeout: defaultPublishTimeout,
	}
}

func (n *Notifier) notify(ctx context.Context, entity, action string, id int64) {
	if n == nil {
		return
	}

	slog.Info("record "+action,
		slog.String("entity", entity),
		slog.Int64("id", id),
	)

	if n.metrics != nil {
		n.metrics.RecordMutation(entity, action)
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.publishTimeout)
	defer cancel()

	event := events.Event{Entity: entity, Action: action, ID: id, OccurredAt: n.now().UTC()}
	if err := n.publisher.Publish(pubCtx, event); err != nil {
		slog.Warn("failed to publish change event",
			slog.String("routing_key", event.RoutingKey()),
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		if n.metrics != nil {
			n.metrics.RecordEventPublishFailure(entity)
		}
	}
}

// mapWriteError はリポジトリの更新・削除エラーをAPIErrorに変換する。
func mapWriteError(err error, label string, id int64, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return model.NewNotFoundError(label, id)
	}
	return fmt.Errorf("%sの%sに失敗しました: %w", label, op, err)
}

// getOrNotFound はFindByIDの結果を検査し、存在しない場合はNotFoundを返す。
func getOrNotFound[T any](v *T, err error, label string, id int64) (*T, error) {
	if err != nil {
		return nil, fmt.Errorf("%sの取得に失敗しました: %w", label, err)
	}
	if v == nil {
		return nil, model.NewNotFoundError(label, id)
	}
	return v, nil
}
