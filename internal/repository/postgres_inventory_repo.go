package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/posledger/internal/model"
)

// PostgresInventoryRepo はPostgreSQLを使用した在庫リポジトリ。
type PostgresInventoryRepo struct {
	db *sql.DB
}

// NewPostgresInventoryRepo はPostgresInventoryRepoを生成する。
func NewPostgresInventoryRepo(db *sql.DB) *PostgresInventoryRepo {
	return &PostgresInventoryRepo{db: db}
}

func scanInventory(row rowScanner) (*model.Inventory, error) {
	inv := &model.Inventory{}
	if err := row.Scan(&inv.ID, &inv.ProductID, &inv.Quantity); err != nil {
		return nil, err
	}
	return inv, nil
}

// List は全在庫をID昇順で返す。
func (r *PostgresInventoryRepo) List(ctx context.Context) ([]*model.Inventory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, product_id, quantity FROM inventory ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	items := []*model.Inventory{}
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory: %w", err)
		}
		items = append(items, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}
	return items, nil
}

// Create は在庫を作成する。
func (r *PostgresInventoryRepo) Create(ctx context.Context, inventory *model.Inventory) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO inventory (product_id, quantity) VALUES ($1, $2) RETURNING id`,
		inventory.ProductID, inventory.Quantity,
	).Scan(&inventory.ID)
	if err != nil {
		return fmt.Errorf("failed to insert inventory: %w", err)
	}
	return nil
}

var _ InventoryRepository = (*PostgresInventoryRepo)(nil)
