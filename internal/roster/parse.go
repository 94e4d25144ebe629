package roster

import (
	"strings"

	"github.com/samber/lo"
)

// ParseList splits free-form editor text into entries. Newlines and commas
// separate entries; surrounding whitespace is trimmed and blank entries are
// dropped. Duplicates are kept.
func ParseList(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ',' || r == '\r'
	})
	return lo.FilterMap(fields, func(field string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(field)
		return trimmed, trimmed != ""
	})
}

// FormatList renders entries one per line, the inverse of ParseList for the editors.
func FormatList(values []string) string {
	return strings.Join(values, "\n")
}
