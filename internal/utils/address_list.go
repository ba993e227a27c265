package utils

import (
	"regexp"
	"strings"
)

var (
	reLineComment  = regexp.MustCompile(`(//|#).*`)
	reBlockComment = regexp.MustCompile(`/\*[\s\S]*?\*/`)
)

// ParseAddressList turns newline separated address text into a clean token list.
// Line comments (// and #) and block comments are removed, pieces are trimmed and
// empty pieces dropped. Tokens are not validated as addresses.
func ParseAddressList(raw string) []string {
	text := strings.TrimSpace(raw)
	text = reLineComment.ReplaceAllString(text, "")
	text = reBlockComment.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	tokens := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}
