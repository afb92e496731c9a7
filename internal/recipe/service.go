// Package recipe はレシピ管理のドメインロジックを提供する。
// 所有権チェック・ライフサイクル操作・検索を担う。
package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/hitoshi/recipebox/internal/model"
	"github.com/hitoshi/recipebox/internal/repository"
	"github.com/hitoshi/recipebox/internal/security"
)

// MetricsRecorder はレシピ操作のメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordRecipeCreated()
	RecordRecipeUpdated()
	RecordRecipeDeleted()
	RecordRecipeSearch(kind string)
}

// Service はレシピ管理のサービス層。
type Service struct {
	repo      repository.RecipeRepository
	sanitizer security.ContentSanitizerService
	metrics   MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilを許容する（テストやメトリクス無効時）。
func NewService(repo repository.RecipeRepository, sanitizer security.ContentSanitizerService, metrics MetricsRecorder) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// isOwner はactorがrecipeの作成者かを判定する純粋関数。
// 管理者ロールによる上書きは意図的に行わない。単一レシピの変更・削除は
// ロールではなく所有権のみで許可される（管理者の権限は全削除という
// 別の操作として付与される）。
func isOwner(recipe *model.Recipe, actor *model.User) bool {
	return recipe.OwnerID == actor.ID
}

// Save は新規レシピを保存する。
// タイムスタンプと所有者をサーバー側で設定し、採番されたIDを含む保存結果を返す。
// 名前の一意性制約はない。
func (s *Service) Save(ctx context.Context, recipe *model.Recipe, owner *model.User) (*model.Recipe, error) {
	s.sanitizeFields(recipe)
	recipe.Date = time.Now()
	recipe.OwnerID = owner.ID

	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("レシピの保存に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordRecipeCreated()
	}

	slog.Info("recipe created",
		slog.Int64("recipe_id", recipe.ID),
		slog.Int64("owner_id", owner.ID),
	)

	return recipe, nil
}

// FindByID は指定IDのレシピを取得する。
// 見つからない場合はRECIPE_NOT_FOUNDエラーを返す。
func (s *Service) FindByID(ctx context.Context, id int64) (*model.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("レシピの取得に失敗しました: %w", err)
	}
	if recipe == nil {
		return nil, model.NewRecipeNotFoundError(id)
	}
	return recipe, nil
}

// Update は指定IDのレシピを新しい内容で上書きする。
// レシピが存在しない場合はRECIPE_NOT_FOUND、actorが作成者でない場合は
// NOT_RECIPE_OWNERエラーを返す。タイムスタンプは再設定し、所有者は
// 元のレシピのものを維持する（contentの所有者指定は無視される）。
func (s *Service) Update(ctx context.Context, id int64, content *model.Recipe, actor *model.User) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !isOwner(existing, actor) {
		return model.NewNotRecipeOwnerError()
	}

	s.sanitizeFields(content)
	content.ID = id
	content.OwnerID = existing.OwnerID
	content.Date = time.Now()

	if err := s.repo.Update(ctx, content); err != nil {
		return fmt.Errorf("レシピの更新に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordRecipeUpdated()
	}

	slog.Info("recipe updated",
		slog.Int64("recipe_id", id),
		slog.Int64("owner_id", existing.OwnerID),
	)

	return nil
}

// Delete は指定IDのレシピを削除する。
// レシピが存在しない場合はRECIPE_NOT_FOUND、actorが作成者でない場合は
// NOT_RECIPE_OWNERエラーを返す。
func (s *Service) Delete(ctx context.Context, id int64, actor *model.User) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !isOwner(existing, actor) {
		return model.NewNotRecipeOwnerError()
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("レシピの削除に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordRecipeDeleted()
	}

	slog.Info("recipe deleted",
		slog.Int64("recipe_id", id),
	)

	return nil
}

// DeleteAll は全レシピを無条件に削除する。
// レコード単位の所有権チェックは行わない。呼び出し側（HTTP層）が
// 管理者ロールで事前認可していることを前提とする。
func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("レシピの全削除に失敗しました: %w", err)
	}

	slog.Info("all recipes deleted")
	return nil
}

// SearchByCategory はカテゴリ完全一致（大文字小文字無視）でレシピを検索する。
// 結果はタイムスタンプ降順（新しい順）で返す。
func (s *Service) SearchByCategory(ctx context.Context, category string) ([]*model.Recipe, error) {
	recipes, err := s.repo.FindAllByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("レシピのカテゴリ検索に失敗しました: %w", err)
	}

	sortByDateDesc(recipes)

	if s.metrics != nil {
		s.metrics.RecordRecipeSearch("category")
	}

	return recipes, nil
}

// SearchByName は名前の部分一致（大文字小文字無視）でレシピを検索する。
// 結果はタイムスタンプ降順（新しい順）で返す。
func (s *Service) SearchByName(ctx context.Context, fragment string) ([]*model.Recipe, error) {
	recipes, err := s.repo.FindAllByNameContains(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("レシピの名前検索に失敗しました: %w", err)
	}

	sortByDateDesc(recipes)

	if s.metrics != nil {
		s.metrics.RecordRecipeSearch("name")
	}

	return recipes, nil
}

// sortByDateDesc はレシピをタイムスタンプ降順に並べ替える。
// 安定ソートのため、同一タイムスタンプの並びはリポジトリの取得順（ID昇順）を維持する。
func sortByDateDesc(recipes []*model.Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].Date.After(recipes[j].Date)
	})
}

// sanitizeFields はレシピの全テキストフィールドからHTMLを除去する。
func (s *Service) sanitizeFields(recipe *model.Recipe) {
	if s.sanitizer == nil {
		return
	}
	recipe.Name = s.sanitizer.Sanitize(recipe.Name)
	recipe.Category = s.sanitizer.Sanitize(recipe.Category)
	recipe.Description = s.sanitizer.Sanitize(recipe.Description)
	recipe.Ingredients = s.sanitizer.SanitizeAll(recipe.Ingredients)
	recipe.Directions = s.sanitizer.SanitizeAll(recipe.Directions)
}
