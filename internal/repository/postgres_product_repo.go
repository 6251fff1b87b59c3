package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/posledger/internal/model"
)

// PostgresProductRepo はPostgreSQLを使用した商品リポジトリ。
type PostgresProductRepo struct {
	db *sql.DB
}

// NewPostgresProductRepo はPostgresProductRepoを生成する。
func NewPostgresProductRepo(db *sql.DB) *PostgresProductRepo {
	return &PostgresProductRepo{db: db}
}

func scanProduct(row rowScanner) (*model.Product, error) {
	p := &model.Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Price); err != nil {
		return nil, err
	}
	return p, nil
}

// List は全商品をID昇順で返す。
func (r *PostgresProductRepo) List(ctx context.Context) ([]*model.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
func (r *PostgresProductRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT id, name, price FROM products WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// Create は商品を作成する。
func (r *PostgresProductRepo) Create(ctx context.Context, product *model.Product) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id`,
		product.Name, model.RoundMoney(product.Price),
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// Update は行をロックしてから指定フィールドだけを上書きする。
func (r *PostgresProductRepo) Update(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error) {
	var updated *model.Product
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		p, err := scanProduct(tx.QueryRowContext(ctx,
			`SELECT id, name, price FROM products WHERE id = $1 FOR UPDATE`, id,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock product: %w", err)
		}

		in.ApplyTo(p)

		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET name = $2, price = $3 WHERE id = $1`,
			id, p.Name, p.Price,
		); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は指定IDの商品を削除する。
func (r *PostgresProductRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "products", id)
}

var _ ProductRepository = (*PostgresProductRepo)(nil)
