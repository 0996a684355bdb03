package validation

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// MaxInputLength жёсткий предел длины любого текстового ввода
const MaxInputLength = 1000

var strictPolicy = bluemonday.StrictPolicy()

var unsafeChars = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")

// Sanitize убирает разметку, угловые скобки и кавычки и обрезает ввод до MaxInputLength.
// Применяется к каждому текстовому полю до проверки
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	cleaned := strictPolicy.Sanitize(strings.TrimSpace(text))
	cleaned = html.UnescapeString(cleaned)
	cleaned = unsafeChars.Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)

	return TruncateRunes(cleaned, MaxInputLength)
}

// TruncateRunes обрезает строку до limit символов (не байт)
func TruncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit])
}
