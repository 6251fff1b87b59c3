package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/posledger/internal/events"
	"github.com/hitoshi/posledger/internal/model"
	"github.com/hitoshi/posledger/internal/repository"
)

// UserService はユーザーの管理を提供する。
// パスワードはbcryptでハッシュ化してから保存する。
type UserService struct {
	repo       repository.UserRepository
	notifier   *Notifier
	bcryptCost int
}

// NewUserService はUserServiceを生成する。
// bcryptCostが範囲外の場合はbcrypt.DefaultCostを使う。
func NewUserService(repo repository.UserRepository, notifier *Notifier, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, notifier: notifier, bcryptCost: bcryptCost}
}

// List は全ユーザーを一覧用の射影（id, username, email）で返す。
func (s *UserService) List(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Userの一覧取得に失敗しました: %w", err)
	}
	summaries := make([]model.UserSummary, len(users))
	for i, u := range users {
		summaries[i] = u.Summary()
	}
	return summaries, nil
}

// Get は指定IDのユーザーを返す。
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	return getOrNotFound(u, err, "User", id)
}

// Create は必須フィールドを検証してユーザーを作成する。
func (s *UserService) Create(ctx context.Context, in model.UserInput) (*model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user := &model.User{}
	in.ApplyTo(user)

	hash, err := s.hashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, model.NewDuplicateUsernameError(user.Username)
		}
		return nil, fmt.Errorf("Userの作成に失敗しました: %w", err)
	}

	s.notifier.notify(ctx, "user", events.ActionCreated, user.ID)
	return user, nil
}

// Update は指定されたフィールドだけを更新する。passwordが含まれる場合は再ハッシュする。
func (s *UserService) Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	if in.Password != nil {
		hash, err := s.hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		in.Password = &hash
	}

	user, err := s.repo.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) && in.Username != nil {
			return nil, model.NewDuplicateUsernameError(*in.Username)
		}
		return nil, mapWriteError(err, "User", id, "更新")
	}

	s.notifier.notify(ctx, "user", events.ActionUpdated, id)
	return user, nil
}

// Delete は指定IDのユーザーを削除する。
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "User", id, "削除")
	}
	s.notifier.notify(ctx, "user", events.ActionDeleted, id)
	return nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", model.NewInvalidValueError("password", "must be at most 72 bytes")
		}
		return "", fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}
	return string(hash), nil
}
