package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/posledger/internal/model"
)

const paymentColumns = `id, order_id, amount, payment_method, payment_status, created_at`

// PostgresPaymentRepo はPostgreSQLを使用した支払いリポジトリ。
type PostgresPaymentRepo struct {
	db *sql.DB
}

// NewPostgresPaymentRepo はPostgresPaymentRepoを生成する。
func NewPostgresPaymentRepo(db *sql.DB) *PostgresPaymentRepo {
	return &PostgresPaymentRepo{db: db}
}

func scanPayment(row rowScanner) (*model.Payment, error) {
	p := &model.Payment{}
	var method, status sql.NullString
	if err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &method, &status, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.PaymentMethod = nullStringValue(method)
	p.PaymentStatus = nullStringValue(status)
	return p, nil
}

// List は全支払いをID昇順で返す。
func (r *PostgresPaymentRepo) List(ctx context.Context) ([]*model.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []*model.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// FindByID は指定IDの支払いを取得する。見つからない場合はnilを返す。
func (r *PostgresPaymentRepo) FindByID(ctx context.Context, id int64) (*model.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment by ID: %w", err)
	}
	return p, nil
}

// Create は支払いを作成する。CreatedAtが未設定ならDBの現在時刻を使う。
func (r *PostgresPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO payments (order_id, amount, payment_method, payment_status, created_at)
		 VALUES ($1, $2, $3, $4, COALESCE($5::timestamptz, now()))
		 RETURNING id, created_at`,
		payment.OrderID, model.RoundMoney(payment.Amount),
		nullString(payment.PaymentMethod), nullString(payment.PaymentStatus),
		nullTime(payment.CreatedAt),
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// Update は行をロックしてから指定フィールドだけを上書きする。
func (r *PostgresPaymentRepo) Update(ctx context.Context, id int64, in model.PaymentInput) (*model.Payment, error) {
	var updated *model.Payment
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		p, err := scanPayment(tx.QueryRowContext(ctx,
			`SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		in.ApplyTo(p)

		if _, err := tx.ExecContext(ctx,
			`UPDATE payments
			 SET order_id = $2, amount = $3, payment_method = $4, payment_status = $5, created_at = $6
			 WHERE id = $1`,
			id, p.OrderID, p.Amount,
			nullString(p.PaymentMethod), nullString(p.PaymentStatus), p.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は指定IDの支払いを削除する。
func (r *PostgresPaymentRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "payments", id)
}

var _ PaymentRepository = (*PostgresPaymentRepo)(nil)
