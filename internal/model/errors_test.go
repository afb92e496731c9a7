package model

import (
	"errors"
	"strings"
	"testing"
)

func TestAPIError_ErrorFormat(t *testing.T) {
	err := &APIError{Code: "RECIPE_NOT_FOUND", Message: "not found"}
	want := "[RECIPE_NOT_FOUND] not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// APIErrorがerrors.Asで取り出せることを検証（ハンドラーのエラー分類が依存する）
func TestAPIError_ErrorsAs(t *testing.T) {
	var wrapped error = NewRecipeNotFoundError(5)

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As should extract *APIError")
	}
	if apiErr.Code != ErrCodeRecipeNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrCodeRecipeNotFound)
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		code     string
		category string
	}{
		{"レシピ未検出", NewRecipeNotFoundError(1), ErrCodeRecipeNotFound, "recipe"},
		{"作成者以外", NewNotRecipeOwnerError(), ErrCodeNotRecipeOwner, "auth"},
		{"メール重複", NewEmailTakenError("a@example.com"), ErrCodeEmailTaken, "validation"},
		{"ユーザー未検出", NewUserNotFoundError(), ErrCodeUserNotFound, "user"},
		{"無効なレシピ", NewInvalidRecipeError("nameが空です"), ErrCodeInvalidRecipe, "validation"},
		{"無効な検索クエリ", NewInvalidSearchQueryError(), ErrCodeInvalidSearchQuery, "validation"},
		{"認証失敗", NewInvalidCredentialsError(), ErrCodeInvalidCredentials, "auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Category != tt.category {
				t.Errorf("Category = %q, want %q", tt.err.Category, tt.category)
			}
			if tt.err.Message == "" {
				t.Error("Message should not be empty")
			}
			if tt.err.Action == "" {
				t.Error("Action should not be empty")
			}
		})
	}
}

// メール重複エラーは該当メールアドレスをメッセージに含む
func TestNewEmailTakenError_IncludesEmail(t *testing.T) {
	err := NewEmailTakenError("taken@example.com")
	if !strings.Contains(err.Message, "taken@example.com") {
		t.Errorf("Message %q should contain the email address", err.Message)
	}
}

// 認証失敗エラーはメール不明とパスワード不一致で共通のメッセージを使う
func TestNewInvalidCredentialsError_GenericMessage(t *testing.T) {
	err := NewInvalidCredentialsError()
	if strings.Contains(err.Message, "@") {
		t.Errorf("Message %q should not reveal account details", err.Message)
	}
}
