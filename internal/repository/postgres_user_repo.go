package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/posledger/internal/model"
)

const userColumns = `id, username, password, first_name, last_name, email, phone_number`

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func scanUser(row rowScanner) (*model.User, error) {
	user := &model.User{}
	var firstName, lastName, email, phone sql.NullString
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &firstName, &lastName, &email, &phone); err != nil {
		return nil, err
	}
	user.FirstName = nullStringValue(firstName)
	user.LastName = nullStringValue(lastName)
	user.Email = nullStringValue(email)
	user.PhoneNumber = nullStringValue(phone)
	return user, nil
}

// List は全ユーザーをID昇順で返す。
func (r *PostgresUserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// Create はユーザーを作成する。Passwordはハッシュ済みの値を渡すこと。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, first_name, last_name, email, phone_number)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		user.Username, user.Password,
		nullString(user.FirstName), nullString(user.LastName),
		nullString(user.Email), nullString(user.PhoneNumber),
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update は行をロックしてから指定フィールドだけを上書きする。
func (r *PostgresUserRepo) Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	var updated *model.User
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		user, err := scanUser(tx.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}

		in.ApplyTo(user)

		_, err = tx.ExecContext(ctx,
			`UPDATE users
			 SET username = $2, password = $3, first_name = $4, last_name = $5, email = $6, phone_number = $7
			 WHERE id = $1`,
			id, user.Username, user.Password,
			nullString(user.FirstName), nullString(user.LastName),
			nullString(user.Email), nullString(user.PhoneNumber),
		)
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は指定IDのユーザーを削除する。
// ordersのuser_idは弱参照のため変更されない。
func (r *PostgresUserRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "users", id)
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
