// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーの権限ロールを表す。
type Role string

const (
	// RoleUser は一般ユーザーロール。登録時にデフォルトで付与される。
	RoleUser Role = "USER"
	// RoleAdmin は管理者ロール。ユーザー削除とレシピ全削除が許可される。
	RoleAdmin Role = "ADMIN"
)

// User はサービス利用ユーザーを表す。
// PasswordHashには不可逆ハッシュのみを保持し、平文パスワードは保持しない。
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
}

// HasRole は指定ロールを保持しているかを返す。
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
