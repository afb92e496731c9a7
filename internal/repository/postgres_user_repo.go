package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/recipebox/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByID は指定IDのユーザーをロール込みで取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	var roles pq.StringArray

	err := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.password_hash, u.created_at,
		        COALESCE(array_agg(ur.role ORDER BY ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}')
		 FROM users u
		 LEFT JOIN user_roles ur ON ur.user_id = u.id
		 WHERE u.id = $1
		 GROUP BY u.id`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &roles)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}

	user.Roles = toRoles(roles)
	return user, nil
}

// FindByEmail はメールアドレスでユーザーを検索する（完全一致・大文字小文字区別）。
// 見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	var roles pq.StringArray

	err := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.password_hash, u.created_at,
		        COALESCE(array_agg(ur.role ORDER BY ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}')
		 FROM users u
		 LEFT JOIN user_roles ur ON ur.user_id = u.id
		 WHERE u.email = $1
		 GROUP BY u.id`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &roles)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}

	user.Roles = toRoles(roles)
	return user, nil
}

// Create はユーザーとロールを同一トランザクションで作成し、採番されたIDをuser.IDに設定する。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// ユーザーを作成
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	// ロールを作成
	for _, role := range user.Roles {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
			user.ID, string(role),
		)
		if err != nil {
			return fmt.Errorf("failed to insert user role: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteByID は指定IDのユーザーを削除する。
// 所有レシピ → ロール → ユーザーの順に同一トランザクションで削除する。
func (r *PostgresUserRepo) DeleteByID(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. 所有レシピを削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipes WHERE user_id = $1`, id,
	); err != nil {
		return fmt.Errorf("failed to delete owned recipes: %w", err)
	}

	// 2. ロールを削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_roles WHERE user_id = $1`, id,
	); err != nil {
		return fmt.Errorf("failed to delete user roles: %w", err)
	}

	// 3. ユーザーを削除
	result, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %d", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// toRoles はDBから取得したロール文字列をmodel.Roleのスライスに変換する。
func toRoles(raw pq.StringArray) []model.Role {
	roles := make([]model.Role, len(raw))
	for i, r := range raw {
		roles[i] = model.Role(r)
	}
	return roles
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
