package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/recipebox/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Register は新規ユーザーを登録する。メール重複時はEMAIL_TAKENエラーを返す。
	Register(ctx context.Context, email, rawPassword string) (*model.User, error)
	// Delete は指定IDのユーザーと所有レシピを削除する。
	Delete(ctx context.Context, id int64) error
}

// RegistrationRecorder はユーザー登録メトリクスの記録インターフェース。
type RegistrationRecorder interface {
	RecordUserRegistered()
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
	metrics RegistrationRecorder
}

// NewUserHandler はUserHandlerを生成する。
// metricsはnilでもよい。
func NewUserHandler(service UserServiceInterface, metrics RegistrationRecorder) *UserHandler {
	return &UserHandler{
		service: service,
		metrics: metrics,
	}
}

// registerRequest はユーザー登録リクエストのボディ。
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// emailPattern はメールアドレスの簡易形式チェック。
// ローカル部、ドメイン、ドットを含むトップレベルのみを要求する。
var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

const minPasswordLength = 8

// Register は新規ユーザーの登録を処理する。認証不要。
// POST /api/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if !emailPattern.MatchString(req.Email) {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "メールアドレスの形式が正しくありません。",
			Category: "validation",
			Action:   "正しい形式のメールアドレスを指定してください。",
		})
		return
	}

	if len(req.Password) < minPasswordLength {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "パスワードは8文字以上で指定してください。",
			Category: "validation",
			Action:   "8文字以上のパスワードを指定してください。",
		})
		return
	}

	if _, err := h.service.Register(r.Context(), req.Email, req.Password); err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordUserRegistered()
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteUser は指定IDのユーザーと所有レシピの削除を処理する。
// 管理者認可はミドルウェアで完結している。
// DELETE /api/deleteuser/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "ユーザーIDは数値で指定してください。",
			Category: "validation",
			Action:   "正しいユーザーIDを指定してください。",
		})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
