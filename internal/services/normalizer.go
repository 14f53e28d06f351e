package services

import (
	"regexp"
	"strings"
)

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	horizontalRuns = regexp.MustCompile(`[ \t]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// NormalizePreserveParagraphs canonicalizes line endings, collapses runs of
// tabs and spaces to a single space and caps blank-line runs at one, keeping
// paragraph structure intact. Pure and idempotent.
func NormalizePreserveParagraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = horizontalRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeCollapseAll flattens every whitespace run, newlines included, to a
// single space. Used where text is compared or embedded on one line.
func NormalizeCollapseAll(text string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}
