// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/recipebox/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーをロール込みで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する（完全一致・大文字小文字区別）。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーとロールを同一トランザクションで作成し、
	// 採番されたIDをuser.IDに設定する。
	Create(ctx context.Context, user *model.User) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 所有レシピ → ロール → ユーザーの順に同一トランザクションで削除し、
	// 部分失敗でレシピが孤児にならないことを保証する。
	DeleteByID(ctx context.Context, id int64) error
}

// RecipeRepository はレシピデータの永続化インターフェース。
type RecipeRepository interface {
	// FindByID は指定IDのレシピを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Recipe, error)

	// Create はレシピを作成し、採番されたIDをrecipe.IDに設定する。
	Create(ctx context.Context, recipe *model.Recipe) error

	// Update は既存レシピを同一IDで上書き更新する。
	Update(ctx context.Context, recipe *model.Recipe) error

	// DeleteByID は指定IDのレシピを削除する。
	DeleteByID(ctx context.Context, id int64) error

	// DeleteAll は全レシピを削除する。ユーザーには影響しない。
	DeleteAll(ctx context.Context) error

	// FindAllByCategory はカテゴリ完全一致（大文字小文字無視）でレシピを検索する。
	// 結果はID昇順の安定した並びで返す。
	FindAllByCategory(ctx context.Context, category string) ([]*model.Recipe, error)

	// FindAllByNameContains は名前の部分一致（大文字小文字無視）でレシピを検索する。
	// 結果はID昇順の安定した並びで返す。
	FindAllByNameContains(ctx context.Context, fragment string) ([]*model.Recipe, error)
}
