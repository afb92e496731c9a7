package security

import (
	"strings"
	"testing"
)

// TestSanitize_StripsAllTags は全てのHTMLタグが除去されることを検証する。
// レシピのテキストフィールドはプレーンテキストのみを想定する。
func TestSanitize_StripsAllTags(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "scriptタグが除去される",
			input: "<script>alert('xss')</script>ミントティー",
			want:  "ミントティー",
		},
		{
			name:  "pタグも除去される",
			input: "<p>軽くて爽やかな飲み物</p>",
			want:  "軽くて爽やかな飲み物",
		},
		{
			name:  "aタグはテキストのみ残る",
			input: `<a href="https://example.com">リンク付き説明</a>`,
			want:  "リンク付き説明",
		},
		{
			name:  "imgタグが除去される",
			input: `説明<img src="https://example.com/x.png">続き`,
			want:  "説明続き",
		},
		{
			name:  "onerror属性付きタグが除去される",
			input: `<img src=x onerror="alert(1)">boiled water`,
			want:  "boiled water",
		},
		{
			name:  "プレーンテキストはそのまま",
			input: "fresh mint leaves",
			want:  "fresh mint leaves",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitize_PreservesSpecialCharacters はHTMLエンティティ化される文字が
// 元のテキストのまま保たれることを検証する。
func TestSanitize_PreservesSpecialCharacters(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []string{
		"salt & pepper",
		"1/2 cup 'sugar'",
		`temperature < 100°C`,
	}

	for _, input := range tests {
		got := sanitizer.Sanitize(input)
		if got != input {
			t.Errorf("Sanitize(%q) = %q, special characters should be preserved", input, got)
		}
	}
}

// TestSanitize_Idempotent は同一入力に対して常に同一出力を返すことを検証する。
func TestSanitize_Idempotent(t *testing.T) {
	sanitizer := NewContentSanitizer()

	input := "<b>Fresh</b> Mint & Tea"
	first := sanitizer.Sanitize(input)
	second := sanitizer.Sanitize(first)

	if first != second {
		t.Errorf("Sanitize is not idempotent: first = %q, second = %q", first, second)
	}
}

// TestSanitize_EmptyString は空文字列入力に空文字列を返すことを検証する。
func TestSanitize_EmptyString(t *testing.T) {
	sanitizer := NewContentSanitizer()

	if got := sanitizer.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want \"\"", got)
	}
}

// TestSanitize_TrimsWhitespace は前後の空白が除去されることを検証する。
func TestSanitize_TrimsWhitespace(t *testing.T) {
	sanitizer := NewContentSanitizer()

	got := sanitizer.Sanitize("  boiled water  ")
	if got != "boiled water" {
		t.Errorf("Sanitize = %q, want %q", got, "boiled water")
	}
}

// TestSanitizeAll はスライスの全要素がサニタイズされることを検証する。
func TestSanitizeAll(t *testing.T) {
	sanitizer := NewContentSanitizer()

	input := []string{"<b>boiled water</b>", "honey", "<script>x</script>fresh mint leaves"}
	got := sanitizer.SanitizeAll(input)

	want := []string{"boiled water", "honey", "fresh mint leaves"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// 元のスライスは変更されない
	if !strings.Contains(input[0], "<b>") {
		t.Error("SanitizeAll should not mutate the input slice")
	}
}

// TestSanitizeAll_Nil はnilスライス入力にnilを返すことを検証する。
func TestSanitizeAll_Nil(t *testing.T) {
	sanitizer := NewContentSanitizer()

	if got := sanitizer.SanitizeAll(nil); got != nil {
		t.Errorf("SanitizeAll(nil) = %v, want nil", got)
	}
}
