// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はレシピのテキストフィールドをサニタイズし、
// XSS攻撃などのセキュリティリスクからユーザーを保護する。
// レシピの名前・カテゴリ・説明・材料・手順はプレーンテキストであり、
// HTMLを含む必要がないため、bluemondayのStrictPolicyで全タグを除去する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はテキストコンテンツのサニタイズ機能のインターフェースを定義する。
// レシピの保存前および更新前に使用される。
type ContentSanitizerService interface {
	// Sanitize は入力文字列から全てのHTMLタグを除去してプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string

	// SanitizeAll はスライスの各要素をサニタイズした新しいスライスを返す。
	SanitizeAll(raw []string) []string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは全てのHTMLタグと属性を除去する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力文字列から全てのHTMLタグを除去してプレーンテキストを返す。
// bluemondayはタグ除去後にエンティティをエスケープするため、
// 元のテキスト内容を保つようにアンエスケープして返す。
func (s *contentSanitizer) Sanitize(raw string) string {
	cleaned := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// SanitizeAll はスライスの各要素をサニタイズした新しいスライスを返す。
func (s *contentSanitizer) SanitizeAll(raw []string) []string {
	if raw == nil {
		return nil
	}
	cleaned := make([]string, len(raw))
	for i, v := range raw {
		cleaned[i] = s.Sanitize(v)
	}
	return cleaned
}
