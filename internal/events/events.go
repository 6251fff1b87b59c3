// Package events はレコード変更イベントの発行を提供する。
// イベントは単一行のコミット後にベストエフォートで発行され、
// 発行の失敗はリクエストの結果に影響しない。
package events

import (
	"context"
	"time"
)

// 操作種別
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event はレコードの作成・更新・削除を表す。
type Event struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey はトピック交換機のルーティングキー（例: "order.created"）を返す。
func (e Event) RoutingKey() string {
	return e.Entity + "." + e.Action
}

// Publisher は変更イベントの発行インターフェース。
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher はイベントを破棄するPublisher。
// AMQP_URLが未設定の場合に使用する。
type NopPublisher struct{}

// Publish は何もしない。
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close は何もしない。
func (NopPublisher) Close() error { return nil }

var _ Publisher = NopPublisher{}
