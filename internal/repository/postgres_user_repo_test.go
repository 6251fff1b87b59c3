package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitoshi/posledger/internal/model"
)

var userRowColumns = []string{"id", "username", "password", "first_name", "last_name", "email", "phone_number"}

func strPtr(s string) *string { return &s }

func TestPostgresUserRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "alice", "$2a$hash", "Alice", nil, "alice@example.com", nil).
			AddRow(2, "bob", "$2a$hash", nil, nil, nil, nil))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "Alice", users[0].FirstName)
	assert.Equal(t, "", users[0].LastName)
	assert.Equal(t, int64(2), users[1].ID)
}

func TestPostgresUserRepo_List_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM users").WillReturnRows(sqlmock.NewRows(userRowColumns))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users, "empty list must encode as [] rather than null")
	assert.Empty(t, users)
}

func TestPostgresUserRepo_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	user, err := repo.FindByID(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestPostgresUserRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "$2a$hash", nil, nil, "alice@example.com", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	user := &model.User{Username: "alice", Password: "$2a$hash", Email: "alice@example.com"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
}

func TestPostgresUserRepo_Create_DuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	err := repo.Create(context.Background(), &model.User{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestPostgresUserRepo_Update_Partial(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1 FOR UPDATE").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "alice", "$2a$hash", "Alice", "Smith", "old@example.com", "090"))
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1), "alice", "$2a$hash", "Alice", "Smith", "new@example.com", "090").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := repo.Update(context.Background(), 1, model.UserInput{Email: strPtr("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Smith", user.LastName, "unspecified fields keep their stored value")
}

func TestPostgresUserRepo_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1 FOR UPDATE").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(userRowColumns))
	mock.ExpectRollback()

	user, err := repo.Update(context.Background(), 999, model.UserInput{Email: strPtr("x@example.com")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, user)
}

func TestPostgresUserRepo_Update_DuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(2, "bob", "h", nil, nil, nil, nil))
	mock.ExpectExec("UPDATE users").WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 2, model.UserInput{Username: strPtr("alice")})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestPostgresUserRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectExec("DELETE FROM users WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 1))
}
