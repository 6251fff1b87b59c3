package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/posledger/internal/model"
)

// contactTable はcustomers・deliverymenに共通する連絡先テーブルの操作。
// 2つのテーブルはカラム構成が同一で、テーブル名だけが異なる。
type contactTable struct {
	db    *sql.DB
	table string
}

func scanContact(row rowScanner) (int64, model.Contact, error) {
	var id int64
	var firstName, lastName, email, phone sql.NullString
	if err := row.Scan(&id, &firstName, &lastName, &email, &phone); err != nil {
		return 0, model.Contact{}, err
	}
	return id, model.Contact{
		FirstName:   nullStringValue(firstName),
		LastName:    nullStringValue(lastName),
		Email:       nullStringValue(email),
		PhoneNumber: nullStringValue(phone),
	}, nil
}

func (c contactTable) selectSQL() string {
	return `SELECT id, first_name, last_name, email, phone_number FROM ` + c.table
}

func (c contactTable) list(ctx context.Context, add func(id int64, contact model.Contact)) error {
	rows, err := c.db.QueryContext(ctx, c.selectSQL()+` ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", c.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		id, contact, err := scanContact(rows)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", c.table, err)
		}
		add(id, contact)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate %s: %w", c.table, err)
	}
	return nil
}

// find は見つからない場合ok=falseを返す。
func (c contactTable) find(ctx context.Context, id int64) (model.Contact, bool, error) {
	_, contact, err := scanContact(c.db.QueryRowContext(ctx, c.selectSQL()+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, false, nil
	}
	if err != nil {
		return model.Contact{}, false, fmt.Errorf("failed to find %s by ID: %w", c.table, err)
	}
	return contact, true, nil
}

func (c contactTable) create(ctx context.Context, contact model.Contact) (int64, error) {
	var id int64
	err := c.db.QueryRowContext(ctx,
		`INSERT INTO `+c.table+` (first_name, last_name, email, phone_number)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		nullString(contact.FirstName), nullString(contact.LastName),
		nullString(contact.Email), nullString(contact.PhoneNumber),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", c.table, err)
	}
	return id, nil
}

func (c contactTable) update(ctx context.Context, id int64, in model.ContactInput) (model.Contact, error) {
	var updated model.Contact
	err := withTx(ctx, c.db, func(tx *sql.Tx) error {
		_, contact, err := scanContact(tx.QueryRowContext(ctx, c.selectSQL()+` WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock %s: %w", c.table, err)
		}

		in.ApplyTo(&contact)

		if _, err := tx.ExecContext(ctx,
			`UPDATE `+c.table+`
			 SET first_name = $2, last_name = $3, email = $4, phone_number = $5
			 WHERE id = $1`,
			id,
			nullString(contact.FirstName), nullString(contact.LastName),
			nullString(contact.Email), nullString(contact.PhoneNumber),
		); err != nil {
			return fmt.Errorf("failed to update %s: %w", c.table, err)
		}
		updated = contact
		return nil
	})
	return updated, err
}

// PostgresCustomerRepo はPostgreSQLを使用した顧客リポジトリ。
type PostgresCustomerRepo struct {
	t contactTable
}

// NewPostgresCustomerRepo はPostgresCustomerRepoを生成する。
func NewPostgresCustomerRepo(db *sql.DB) *PostgresCustomerRepo {
	return &PostgresCustomerRepo{t: contactTable{db: db, table: "customers"}}
}

// List は全顧客をID昇順で返す。
func (r *PostgresCustomerRepo) List(ctx context.Context) ([]*model.Customer, error) {
	customers := []*model.Customer{}
	err := r.t.list(ctx, func(id int64, contact model.Contact) {
		customers = append(customers, &model.Customer{ID: id, Contact: contact})
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// FindByID は指定IDの顧客を取得する。見つからない場合はnilを返す。
func (r *PostgresCustomerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	contact, ok, err := r.t.find(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	return &model.Customer{ID: id, Contact: contact}, nil
}

// Create は顧客を作成する。
func (r *PostgresCustomerRepo) Create(ctx context.Context, customer *model.Customer) error {
	id, err := r.t.create(ctx, customer.Contact)
	if err != nil {
		return err
	}
	customer.ID = id
	return nil
}

// Update は指定フィールドだけを上書きする。
func (r *PostgresCustomerRepo) Update(ctx context.Context, id int64, in model.ContactInput) (*model.Customer, error) {
	contact, err := r.t.update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return &model.Customer{ID: id, Contact: contact}, nil
}

// Delete は指定IDの顧客を削除する。
func (r *PostgresCustomerRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.t.db, r.t.table, id)
}

// PostgresDeliverymanRepo はPostgreSQLを使用した配達員リポジトリ。
type PostgresDeliverymanRepo struct {
	t contactTable
}

// NewPostgresDeliverymanRepo はPostgresDeliverymanRepoを生成する。
func NewPostgresDeliverymanRepo(db *sql.DB) *PostgresDeliverymanRepo {
	return &PostgresDeliverymanRepo{t: contactTable{db: db, table: "deliverymen"}}
}

// List は全配達員をID昇順で返す。
func (r *PostgresDeliverymanRepo) List(ctx context.Context) ([]*model.Deliveryman, error) {
	deliverymen := []*model.Deliveryman{}
	err := r.t.list(ctx, func(id int64, contact model.Contact) {
		deliverymen = append(deliverymen, &model.Deliveryman{ID: id, Contact: contact})
	})
	if err != nil {
		return nil, err
	}
	return deliverymen, nil
}

// FindByID は指定IDの配達員を取得する。見つからない場合はnilを返す。
func (r *PostgresDeliverymanRepo) FindByID(ctx context.Context, id int64) (*model.Deliveryman, error) {
	contact, ok, err := r.t.find(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	return &model.Deliveryman{ID: id, Contact: contact}, nil
}

// Create は配達員を作成する。
func (r *PostgresDeliverymanRepo) Create(ctx context.Context, deliveryman *model.Deliveryman) error {
	id, err := r.t.create(ctx, deliveryman.Contact)
	if err != nil {
		return err
	}
	deliveryman.ID = id
	return nil
}

// Update は指定フィールドだけを上書きする。
func (r *PostgresDeliverymanRepo) Update(ctx context.Context, id int64, in model.ContactInput) (*model.Deliveryman, error) {
	contact, err := r.t.update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return &model.Deliveryman{ID: id, Contact: contact}, nil
}

// Delete は指定IDの配達員を削除する。
// deliveriesのdeliveryman_idは弱参照のため変更されない。
func (r *PostgresDeliverymanRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.t.db, r.t.table, id)
}

var (
	_ CustomerRepository    = (*PostgresCustomerRepo)(nil)
	_ DeliverymanRepository = (*PostgresDeliverymanRepo)(nil)
)
