package describe

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

var unicodeReplacer = strings.NewReplacer(
	" ", " ",
	"–", "-",
	"—", "--",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"…", "...",
)

// SanitizeText replaces problematic Unicode punctuation with plain-ASCII
// equivalents and collapses repeated whitespace.
func SanitizeText(text string) string {
	if text == "" {
		return text
	}
	text = unicodeReplacer.Replace(text)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
