// Package auth は認証情報の検証とパスワードハッシュを提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/recipebox/internal/model"
	"github.com/hitoshi/recipebox/internal/repository"
)

// Service は認証情報の検証を提供する。
// 認証方式そのもの（Basic認証ヘッダーの解釈等）はHTTP層が担い、
// ここではメールアドレスによる照会とハッシュ照合のみを行う。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, hasher PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Verify はメールアドレスとパスワードを検証し、一致したユーザーを返す。
// ユーザー不明とパスワード不一致は区別せず、同一のエラーを返す。
func (s *Service) Verify(ctx context.Context, email, rawPassword string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの照会に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := s.hasher.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	return user, nil
}

// EnsureAdmin は管理者ユーザーを起動時に作成する。
// 同一メールアドレスのユーザーが既に存在する場合は何もしない（冪等）。
func (s *Service) EnsureAdmin(ctx context.Context, email, rawPassword string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("管理者ユーザーの照会に失敗しました: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return fmt.Errorf("管理者パスワードのハッシュに失敗しました: %w", err)
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Roles:        []model.Role{model.RoleAdmin},
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("管理者ユーザーの作成に失敗しました: %w", err)
	}

	slog.Info("admin user created",
		slog.Int64("user_id", admin.ID),
	)

	return nil
}
