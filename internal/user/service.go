// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/recipebox/internal/model"
	"github.com/hitoshi/recipebox/internal/repository"
)

// PasswordHasher は登録時のパスワードハッシュに必要なインターフェース。
// auth.PasswordHasherの部分集合として定義する。
type PasswordHasher interface {
	Hash(rawPassword string) (string, error)
}

// Service はユーザー管理のサービス層。
// 登録・照会・削除のビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, hasher PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Register は新規ユーザーを登録する。
// 同一メールアドレスのユーザーが既に存在する場合はEMAIL_TAKENエラーを返す
// （完全一致・大文字小文字区別）。パスワードは不可逆ハッシュで保存し、
// ロールはデフォルトの{USER}を付与する。
func (s *Service) Register(ctx context.Context, email, rawPassword string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの照会に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailTakenError(email)
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュに失敗しました: %w", err)
	}

	newUser := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Roles:        []model.Role{model.RoleUser},
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	slog.Info("user registered",
		slog.Int64("user_id", newUser.ID),
	)

	return newUser, nil
}

// FindByEmail はメールアドレスでユーザーを解決する。
// 見つからない場合はUSER_NOT_FOUNDエラーを返す。
// 認証済みプリンシパルの解決に使われ、ここでの未検出は呼び出し側で
// 認証失敗として扱われる。
func (s *Service) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの照会に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// Delete は指定IDのユーザーを削除する。
// 存在しない場合はUSER_NOT_FOUNDエラーを返す。
// 所有レシピはリポジトリ層の同一トランザクション内でカスケード削除される。
func (s *Service) Delete(ctx context.Context, id int64) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	if err := s.userRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("user deleted",
		slog.Int64("user_id", id),
	)

	return nil
}
