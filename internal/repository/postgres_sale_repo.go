package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/posledger/internal/model"
)

// PostgresSaleRepo はPostgreSQLを使用した売上リポジトリ。
type PostgresSaleRepo struct {
	db *sql.DB
}

// NewPostgresSaleRepo はPostgresSaleRepoを生成する。
func NewPostgresSaleRepo(db *sql.DB) *PostgresSaleRepo {
	return &PostgresSaleRepo{db: db}
}

func scanSale(row rowScanner) (*model.Sale, error) {
	s := &model.Sale{}
	if err := row.Scan(&s.ID, &s.OrderID, &s.TotalRevenue, &s.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

// List は全売上をID昇順で返す。
func (r *PostgresSaleRepo) List(ctx context.Context) ([]*model.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, order_id, total_revenue, created_at FROM sales ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := []*model.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}
	return sales, nil
}

// FindByID は指定IDの売上を取得する。見つからない場合はnilを返す。
func (r *PostgresSaleRepo) FindByID(ctx context.Context, id int64) (*model.Sale, error) {
	s, err := scanSale(r.db.QueryRowContext(ctx,
		`SELECT id, order_id, total_revenue, created_at FROM sales WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sale by ID: %w", err)
	}
	return s, nil
}

// Create は売上を作成する。CreatedAtが未設定ならDBの現在時刻を使う。
func (r *PostgresSaleRepo) Create(ctx context.Context, sale *model.Sale) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sales (order_id, total_revenue, created_at)
		 VALUES ($1, $2, COALESCE($3::timestamptz, now()))
		 RETURNING id, created_at`,
		sale.OrderID, model.RoundMoney(sale.TotalRevenue), nullTime(sale.CreatedAt),
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}

// Update は行をロックしてから指定フィールドだけを上書きする。
func (r *PostgresSaleRepo) Update(ctx context.Context, id int64, in model.SaleInput) (*model.Sale, error) {
	var updated *model.Sale
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		s, err := scanSale(tx.QueryRowContext(ctx,
			`SELECT id, order_id, total_revenue, created_at FROM sales WHERE id = $1 FOR UPDATE`, id,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock sale: %w", err)
		}

		in.ApplyTo(s)

		if _, err := tx.ExecContext(ctx,
			`UPDATE sales SET order_id = $2, total_revenue = $3, created_at = $4 WHERE id = $1`,
			id, s.OrderID, s.TotalRevenue, s.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は指定IDの売上を削除する。
func (r *PostgresSaleRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "sales", id)
}

var _ SaleRepository = (*PostgresSaleRepo)(nil)
