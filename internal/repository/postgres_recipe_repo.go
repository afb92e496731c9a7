package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/hitoshi/recipebox/internal/model"
)

// PostgresRecipeRepo はPostgreSQLを使用したレシピリポジトリ。
type PostgresRecipeRepo struct {
	db *sql.DB
}

// NewPostgresRecipeRepo はPostgresRecipeRepoを生成する。
func NewPostgresRecipeRepo(db *sql.DB) *PostgresRecipeRepo {
	return &PostgresRecipeRepo{db: db}
}

// FindByID は指定IDのレシピを取得する。見つからない場合はnilを返す。
func (r *PostgresRecipeRepo) FindByID(ctx context.Context, id int64) (*model.Recipe, error) {
	recipe := &model.Recipe{}
	var ingredients, directions pq.StringArray

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, category, description, ingredients, directions, date, user_id
		 FROM recipes WHERE id = $1`,
		id,
	).Scan(
		&recipe.ID, &recipe.Name, &recipe.Category, &recipe.Description,
		&ingredients, &directions, &recipe.Date, &recipe.OwnerID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("レシピの取得に失敗しました: %w", err)
	}

	recipe.Ingredients = []string(ingredients)
	recipe.Directions = []string(directions)
	return recipe, nil
}

// Create はレシピを作成し、採番されたIDをrecipe.IDに設定する。
func (r *PostgresRecipeRepo) Create(ctx context.Context, recipe *model.Recipe) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO recipes (name, category, description, ingredients, directions, date, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		recipe.Name, recipe.Category, recipe.Description,
		pq.Array(recipe.Ingredients), pq.Array(recipe.Directions),
		recipe.Date, recipe.OwnerID,
	).Scan(&recipe.ID)
	if err != nil {
		return fmt.Errorf("レシピの作成に失敗しました: %w", err)
	}

	return nil
}

// Update は既存レシピを同一IDで上書き更新する。
func (r *PostgresRecipeRepo) Update(ctx context.Context, recipe *model.Recipe) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recipes
		 SET name = $1, category = $2, description = $3,
		     ingredients = $4, directions = $5, date = $6, user_id = $7
		 WHERE id = $8`,
		recipe.Name, recipe.Category, recipe.Description,
		pq.Array(recipe.Ingredients), pq.Array(recipe.Directions),
		recipe.Date, recipe.OwnerID, recipe.ID,
	)
	if err != nil {
		return fmt.Errorf("レシピの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("recipe not found: %d", recipe.ID)
	}

	return nil
}

// DeleteByID は指定IDのレシピを削除する。
func (r *PostgresRecipeRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("レシピの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("recipe not found: %d", id)
	}

	return nil
}

// DeleteAll は全レシピを削除する。ユーザーには影響しない。
func (r *PostgresRecipeRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipes`); err != nil {
		return fmt.Errorf("レシピの全削除に失敗しました: %w", err)
	}
	return nil
}

// FindAllByCategory はカテゴリ完全一致（大文字小文字無視）でレシピを検索する。
func (r *PostgresRecipeRepo) FindAllByCategory(ctx context.Context, category string) ([]*model.Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, category, description, ingredients, directions, date, user_id
		 FROM recipes
		 WHERE LOWER(category) = LOWER($1)
		 ORDER BY id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("レシピのカテゴリ検索に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// FindAllByNameContains は名前の部分一致（大文字小文字無視）でレシピを検索する。
// ILIKEのワイルドカード文字はリテラルとして扱う。
func (r *PostgresRecipeRepo) FindAllByNameContains(ctx context.Context, fragment string) ([]*model.Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, category, description, ingredients, directions, date, user_id
		 FROM recipes
		 WHERE name ILIKE '%' || $1 || '%'
		 ORDER BY id`,
		escapeLikePattern(fragment),
	)
	if err != nil {
		return nil, fmt.Errorf("レシピの名前検索に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// scanRecipes は検索結果の行をモデルに変換する。
func scanRecipes(rows *sql.Rows) ([]*model.Recipe, error) {
	var recipes []*model.Recipe

	for rows.Next() {
		recipe := &model.Recipe{}
		var ingredients, directions pq.StringArray

		if err := rows.Scan(
			&recipe.ID, &recipe.Name, &recipe.Category, &recipe.Description,
			&ingredients, &directions, &recipe.Date, &recipe.OwnerID,
		); err != nil {
			return nil, fmt.Errorf("レシピ行の読み取りに失敗しました: %w", err)
		}

		recipe.Ingredients = []string(ingredients)
		recipe.Directions = []string(directions)
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("レシピ行の走査に失敗しました: %w", err)
	}

	return recipes, nil
}

// escapeLikePattern はLIKE/ILIKEパターンの特殊文字をエスケープする。
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// compile-time interface check
var _ RecipeRepository = (*PostgresRecipeRepo)(nil)
