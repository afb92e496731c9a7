package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/recipebox/internal/middleware"
	"github.com/hitoshi/recipebox/internal/model"
)

// RecipeServiceInterface はレシピハンドラーが必要とするサービスインターフェース。
type RecipeServiceInterface interface {
	// Save は新規レシピを保存し、採番されたIDを含む保存結果を返す。
	Save(ctx context.Context, recipe *model.Recipe, owner *model.User) (*model.Recipe, error)
	// FindByID は指定IDのレシピを取得する。
	FindByID(ctx context.Context, id int64) (*model.Recipe, error)
	// Update は指定IDのレシピを作成者本人の場合のみ上書きする。
	Update(ctx context.Context, id int64, content *model.Recipe, actor *model.User) error
	// Delete は指定IDのレシピを作成者本人の場合のみ削除する。
	Delete(ctx context.Context, id int64, actor *model.User) error
	// DeleteAll は全レシピを削除する。呼び出し側が管理者として事前認可済みであること。
	DeleteAll(ctx context.Context) error
	// SearchByCategory はカテゴリ完全一致（大文字小文字無視）で検索する。
	SearchByCategory(ctx context.Context, category string) ([]*model.Recipe, error)
	// SearchByName は名前の部分一致（大文字小文字無視）で検索する。
	SearchByName(ctx context.Context, fragment string) ([]*model.Recipe, error)
}

// RecipeHandler はレシピ管理のHTTPハンドラー。
type RecipeHandler struct {
	service RecipeServiceInterface
}

// NewRecipeHandler はRecipeHandlerを生成する。
func NewRecipeHandler(service RecipeServiceInterface) *RecipeHandler {
	return &RecipeHandler{
		service: service,
	}
}

// recipeRequest はレシピ作成・更新リクエストのボディ。
// 所有者とタイムスタンプはサーバー側で設定するため受け付けない。
type recipeRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Directions  []string `json:"directions"`
}

// recipeResponse はレシピのAPIレスポンス。
// IDと所有者は外部に公開しない。
type recipeResponse struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Ingredients []string  `json:"ingredients"`
	Directions  []string  `json:"directions"`
}

// createdResponse はレシピ作成レスポンス。採番されたIDのみを返す。
type createdResponse struct {
	ID int64 `json:"id"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// New は新規レシピの保存を処理する。
// POST /api/recipe/new
func (h *RecipeHandler) New(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if reason := validateRecipeRequest(&req); reason != "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRecipeError(reason))
		return
	}

	saved, err := h.service.Save(r.Context(), toRecipeModel(&req), principal)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(createdResponse{ID: saved.ID})
}

// Get はレシピ詳細を取得する。
// GET /api/recipe/{id}
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeIDFromPath(w, r)
	if !ok {
		return
	}

	recipe, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toRecipeResponse(recipe))
}

// Update はレシピの上書き更新を処理する。作成者本人のみ許可される。
// PUT /api/recipe/{id}
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id, ok := recipeIDFromPath(w, r)
	if !ok {
		return
	}

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if reason := validateRecipeRequest(&req); reason != "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRecipeError(reason))
		return
	}

	if err := h.service.Update(r.Context(), id, toRecipeModel(&req), principal); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete はレシピの削除を処理する。作成者本人のみ許可される。
// DELETE /api/recipe/{id}
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id, ok := recipeIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, principal); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search はカテゴリ完全一致または名前部分一致でレシピを検索する。
// categoryとnameのどちらか一方のみを指定すること。
// GET /api/recipe/search?category=... | GET /api/recipe/search?name=...
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	hasCategory := query.Has("category")
	hasName := query.Has("name")

	if hasCategory == hasName {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidSearchQueryError())
		return
	}

	var recipes []*model.Recipe
	var err error
	if hasCategory {
		recipes, err = h.service.SearchByCategory(r.Context(), query.Get("category"))
	} else {
		recipes, err = h.service.SearchByName(r.Context(), query.Get("name"))
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]recipeResponse, len(recipes))
	for i, recipe := range recipes {
		results[i] = toRecipeResponse(recipe)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// DeleteAll は全レシピの削除を処理する。
// 管理者認可はミドルウェアで完結している。
// DELETE /api/recipe/delete
func (h *RecipeHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAll(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requirePrincipal はコンテキストから認証済みユーザーを取得する。
// 取得できない場合は401を書き込みfalseを返す。
func requirePrincipal(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "UNAUTHORIZED",
			Message:  "認証が必要です。",
			Category: "auth",
			Action:   "認証情報を付与してリクエストしてください。",
		})
		return nil, false
	}
	return principal, true
}

// recipeIDFromPath はパスパラメータからレシピIDを取得する。
// 数値でない場合は400を書き込みfalseを返す。
func recipeIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "レシピIDは数値で指定してください。",
			Category: "validation",
			Action:   "正しいレシピIDを指定してください。",
		})
		return 0, false
	}
	return id, true
}

// validateRecipeRequest はレシピリクエストを検証し、問題があれば理由を返す。
// 問題がなければ空文字列を返す。
func validateRecipeRequest(req *recipeRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "nameは必須です"
	}
	if strings.TrimSpace(req.Category) == "" {
		return "categoryは必須です"
	}
	if strings.TrimSpace(req.Description) == "" {
		return "descriptionは必須です"
	}
	if len(req.Ingredients) == 0 {
		return "ingredientsは1件以上必要です"
	}
	if len(req.Directions) == 0 {
		return "directionsは1件以上必要です"
	}
	return ""
}

// toRecipeModel はリクエストボディをドメインモデルに変換する。
// 所有者とタイムスタンプはサービス層で設定される。
func toRecipeModel(req *recipeRequest) *model.Recipe {
	return &model.Recipe{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Directions:  req.Directions,
	}
}

// toRecipeResponse はドメインモデルをAPIレスポンスに変換する。
func toRecipeResponse(recipe *model.Recipe) recipeResponse {
	return recipeResponse{
		Name:        recipe.Name,
		Category:    recipe.Category,
		Date:        recipe.Date,
		Description: recipe.Description,
		Ingredients: recipe.Ingredients,
		Directions:  recipe.Directions,
	}
}

// writeInvalidRequestBody はリクエストボディ解析失敗の400レスポンスを書き込む。
func writeInvalidRequestBody(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	})
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeRecipeNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeNotRecipeOwner:
		return http.StatusForbidden
	case model.ErrCodeEmailTaken:
		return http.StatusBadRequest
	case model.ErrCodeInvalidRecipe, model.ErrCodeInvalidSearchQuery, "INVALID_REQUEST":
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
