package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/recipebox/internal/model"
)

// TestWriteErrorResponse は統一フォーマットでエラーが書き込まれることを検証する。
func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteErrorResponse(rec, http.StatusForbidden, model.NewNotRecipeOwnerError())

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	var body ErrorResponseBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != model.ErrCodeNotRecipeOwner {
		t.Errorf("Code = %q, want %q", body.Code, model.ErrCodeNotRecipeOwner)
	}
	if body.Category != "auth" {
		t.Errorf("Category = %q, want auth", body.Category)
	}
	if body.Message == "" || body.Action == "" {
		t.Error("expected message and action to be populated")
	}
}

// TestWriteInternalServerError は内部エラーの統一レスポンスを検証する。
func TestWriteInternalServerError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteInternalServerError(rec)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var body ErrorResponseBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != "INTERNAL_ERROR" {
		t.Errorf("Code = %q, want INTERNAL_ERROR", body.Code)
	}
}
