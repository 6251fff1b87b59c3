package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/posledger/internal/model"
)

const deliveryColumns = `id, order_id, deliveryman_id, delivery_status, delivery_address, delivery_timestamp`

// PostgresDeliveryRepo はPostgreSQLを使用した配達リポジトリ。
type PostgresDeliveryRepo struct {
	db *sql.DB
}

// NewPostgresDeliveryRepo はPostgresDeliveryRepoを生成する。
func NewPostgresDeliveryRepo(db *sql.DB) *PostgresDeliveryRepo {
	return &PostgresDeliveryRepo{db: db}
}

func scanDelivery(row rowScanner) (*model.Delivery, error) {
	d := &model.Delivery{}
	var deliverymanID sql.NullInt64
	var status, address sql.NullString
	var ts sql.NullTime
	if err := row.Scan(&d.ID, &d.OrderID, &deliverymanID, &status, &address, &ts); err != nil {
		return nil, err
	}
	if deliverymanID.Valid {
		d.DeliverymanID = &deliverymanID.Int64
	}
	d.DeliveryStatus = nullStringValue(status)
	d.DeliveryAddress = nullStringValue(address)
	if ts.Valid {
		d.DeliveryTimestamp = &ts.Time
	}
	return d, nil
}

// List は全配達をID昇順で返す。
func (r *PostgresDeliveryRepo) List(ctx context.Context) ([]*model.Delivery, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	deliveries := []*model.Delivery{}
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deliveries: %w", err)
	}
	return deliveries, nil
}

// FindByID は指定IDの配達を取得する。見つからない場合はnilを返す。
func (r *PostgresDeliveryRepo) FindByID(ctx context.Context, id int64) (*model.Delivery, error) {
	d, err := scanDelivery(r.db.QueryRowContext(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find delivery by ID: %w", err)
	}
	return d, nil
}

// Create は配達を作成する。
func (r *PostgresDeliveryRepo) Create(ctx context.Context, delivery *model.Delivery) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO deliveries (order_id, deliveryman_id, delivery_status, delivery_address, delivery_timestamp)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		delivery.OrderID, nullInt64Ptr(delivery.DeliverymanID),
		nullString(delivery.DeliveryStatus), nullString(delivery.DeliveryAddress),
		nullTimePtr(delivery.DeliveryTimestamp),
	).Scan(&delivery.ID)
	if err != nil {
		return fmt.Errorf("failed to insert delivery: %w", err)
	}
	return nil
}

// Update は行をロックしてから指定フィールドだけを上書きする。
func (r *PostgresDeliveryRepo) Update(ctx context.Context, id int64, in model.DeliveryInput) (*model.Delivery, error) {
	var updated *model.Delivery
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		d, err := scanDelivery(tx.QueryRowContext(ctx,
			`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock delivery: %w", err)
		}

		in.ApplyTo(d)

		if _, err := tx.ExecContext(ctx,
			`UPDATE deliveries
			 SET order_id = $2, deliveryman_id = $3, delivery_status = $4, delivery_address = $5, delivery_timestamp = $6
			 WHERE id = $1`,
			id, d.OrderID, nullInt64Ptr(d.DeliverymanID),
			nullString(d.DeliveryStatus), nullString(d.DeliveryAddress),
			nullTimePtr(d.DeliveryTimestamp),
		); err != nil {
			return fmt.Errorf("failed to update delivery: %w", err)
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は指定IDの配達を削除する。
func (r *PostgresDeliveryRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "deliveries", id)
}

var _ DeliveryRepository = (*PostgresDeliveryRepo)(nil)
