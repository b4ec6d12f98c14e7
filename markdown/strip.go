// Package markdown reduces structured markdown to plain text for
// destinations that cannot render markup.
package markdown

import (
	"regexp"
	"strings"
)

var (
	headings    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	bold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italic      = regexp.MustCompile(`\*(.+?)\*`)
	boldUnder   = regexp.MustCompile(`__(.+?)__`)
	italicUnder = regexp.MustCompile(`_(.+?)_`)
	// Backtick runs of any length are unwrapped in one pass, so double
	// backticks cannot peel into fresh single-backtick spans. The inner
	// text may not contain a backtick or newline, which keeps fence lines
	// intact until the fenced-block pass deletes them.
	inlineCode  = regexp.MustCompile("`+([^`\n]+)`+")
	fencedCode  = regexp.MustCompile("(?s)```.*?```")
	listItems   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	orderedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	quotes      = regexp.MustCompile(`(?m)^>\s+`)
	rules       = regexp.MustCompile(`(?m)^---+$`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
)

// Strip removes markdown structure and returns plain text. It is pure and
// idempotent. Fenced code blocks are deleted whole, content included, after
// inline code is unwrapped and before line markers are stripped so markers
// that only existed inside code are never touched.
func Strip(text string) string {
	result := text

	result = headings.ReplaceAllString(result, "")

	// Bold before italic: the bold marker is a superset of the italic one.
	result = bold.ReplaceAllString(result, "$1")
	result = italic.ReplaceAllString(result, "$1")
	result = boldUnder.ReplaceAllString(result, "$1")
	result = italicUnder.ReplaceAllString(result, "$1")

	result = inlineCode.ReplaceAllString(result, "$1")
	result = fencedCode.ReplaceAllString(result, "")

	result = listItems.ReplaceAllString(result, "")
	result = orderedList.ReplaceAllString(result, "")
	result = quotes.ReplaceAllString(result, "")
	result = rules.ReplaceAllString(result, "")

	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
