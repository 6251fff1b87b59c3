package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/posledger/internal/model"
)

const orderColumns = `id, user_id, product_id, quantity, total_price, created_at`

// PostgresOrderRepo はPostgreSQLを使用した注文リポジトリ。
type PostgresOrderRepo struct {
	db *sql.DB
}

// NewPostgresOrderRepo はPostgresOrderRepoを生成する。
func NewPostgresOrderRepo(db *sql.DB) *PostgresOrderRepo {
	return &PostgresOrderRepo{db: db}
}

func scanOrder(row rowScanner) (*model.Order, error) {
	o := &model.Order{}
	if err := row.Scan(&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.CreatedAt); err != nil {
		return nil, err
	}
	return o, nil
}

// List は全注文をID昇順で返す。
func (r *PostgresOrderRepo) List(ctx context.Context) ([]*model.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// FindByID は指定IDの注文を取得する。見つからない場合はnilを返す。
func (r *PostgresOrderRepo) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return o, nil
}

// Create は注文を作成する。CreatedAtが未設定ならDBの現在時刻を使う。
func (r *PostgresOrderRepo) Create(ctx context.Context, order *model.Order) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, product_id, quantity, total_price, created_at)
		 VALUES ($1, $2, $3, $4, COALESCE($5::timestamptz, now()))
		 RETURNING id, created_at`,
		order.UserID, order.ProductID, order.Quantity,
		model.RoundMoney(order.TotalPrice), nullTime(order.CreatedAt),
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// Update は行をロックしてから指定フィールドだけを上書きする。
func (r *PostgresOrderRepo) Update(ctx context.Context, id int64, in model.OrderInput) (*model.Order, error) {
	var updated *model.Order
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		o, err := scanOrder(tx.QueryRowContext(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock order: %w", err)
		}

		in.ApplyTo(o)

		if _, err := tx.ExecContext(ctx,
			`UPDATE orders
			 SET user_id = $2, product_id = $3, quantity = $4, total_price = $5, created_at = $6
			 WHERE id = $1`,
			id, o.UserID, o.ProductID, o.Quantity, o.TotalPrice, o.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は指定IDの注文を削除する。
// payments・sales・deliveriesのorder_idは弱参照のため変更されない。
func (r *PostgresOrderRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "orders", id)
}

var _ OrderRepository = (*PostgresOrderRepo)(nil)
