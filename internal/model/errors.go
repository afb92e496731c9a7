// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, recipe, user, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeRecipeNotFound     = "RECIPE_NOT_FOUND"
	ErrCodeNotRecipeOwner     = "NOT_RECIPE_OWNER"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeInvalidRecipe      = "INVALID_RECIPE"
	ErrCodeInvalidSearchQuery = "INVALID_SEARCH_QUERY"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// NewRecipeNotFoundError はレシピ未検出エラーを生成する。
func NewRecipeNotFoundError(recipeID int64) *APIError {
	return &APIError{
		Code:     ErrCodeRecipeNotFound,
		Message:  fmt.Sprintf("指定されたレシピが見つかりません: %d", recipeID),
		Category: "recipe",
		Action:   "レシピIDを確認してください。",
	}
}

// NewNotRecipeOwnerError はレシピの作成者以外による変更・削除エラーを生成する。
func NewNotRecipeOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodeNotRecipeOwner,
		Message:  "このレシピを変更できるのは作成者のみです。",
		Category: "auth",
		Action:   "自分が作成したレシピのみ変更・削除できます。",
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
func NewEmailTakenError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  fmt.Sprintf("このメールアドレスは既に登録されています: %s", email),
		Category: "validation",
		Action:   "別のメールアドレスで登録するか、ログインしてください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "user",
		Action:   "ユーザーIDを確認してください。",
	}
}

// NewInvalidRecipeError は無効なレシピ入力エラーを生成する。
func NewInvalidRecipeError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRecipe,
		Message:  fmt.Sprintf("無効なレシピです: %s", reason),
		Category: "validation",
		Action:   "name、category、descriptionと、1件以上のingredients、directionsを指定してください。",
	}
}

// NewInvalidSearchQueryError は無効な検索クエリエラーを生成する。
func NewInvalidSearchQueryError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSearchQuery,
		Message:  "検索にはcategoryまたはnameのどちらか一方のみを指定してください。",
		Category: "validation",
		Action:   "クエリパラメータcategoryかnameのいずれか1つを指定してください。",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メールアドレス不明とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "認証情報を確認して再度お試しください。",
	}
}
