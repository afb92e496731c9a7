// Package auth は認証情報の検証とパスワードハッシュを提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher は一方向パスワードハッシュのインターフェース。
// 平文パスワードの保存・比較はこの境界の外では行わない。
type PasswordHasher interface {
	// Hash は平文パスワードの不可逆ハッシュを返す。
	Hash(rawPassword string) (string, error)
	// Compare はハッシュと平文パスワードを照合する。不一致の場合はエラーを返す。
	Compare(hashed, rawPassword string) error
}

// BcryptHasher はbcryptによるPasswordHasherの実装。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher はBcryptHasherを生成する。
// costが範囲外の場合はbcrypt.DefaultCostを使用する。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash は平文パスワードのbcryptハッシュを返す。
func (h *BcryptHasher) Hash(rawPassword string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare はbcryptハッシュと平文パスワードを照合する。
func (h *BcryptHasher) Compare(hashed, rawPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(rawPassword))
}

// compile-time interface check
var _ PasswordHasher = (*BcryptHasher)(nil)
