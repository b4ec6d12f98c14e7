// Package command rewrites spoken command phrases in a transcript into
// markdown structure. Rules are literal trigger phrases bounded by
// whitespace or punctuation, applied longest-trigger-first in a single
// pass each, so that a replacement is never re-read as a new trigger.
package command

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule maps a spoken trigger phrase to its markdown replacement.
type Rule struct {
	Trigger     string
	Replacement string
}

// builtinRules mirrors the stock voice-command vocabulary. Longer phrases
// must win over shorter ones that share a prefix (見出し3 over 見出し),
// which the length sort in NewProcessor guarantees.
var builtinRules = []Rule{
	// paragraphs and line breaks
	{"新しい段落", "\n\n"},
	{"段落変えて", "\n\n"},
	{"段落変え", "\n\n"},
	{"改行して", "\n"},
	{"改行", "\n"},

	// headings
	{"大見出し", "\n\n# "},
	{"見出し3", "\n\n### "},
	{"見出し2", "\n\n## "},
	{"見出し1", "\n\n# "},
	{"見出し", "\n\n## "},
	{"小見出し", "\n\n### "},

	// lists
	{"箇条書き開始", "\n\n"},
	{"次の項目", "\n- "},
	{"項目", "\n- "},
	{"リスト", "\n- "},

	// code
	{"コードブロック開始", "\n```\n"},
	{"コードブロック終了", "\n```\n"},
	{"コード開始", "\n```\n"},
	{"コード終了", "\n```\n"},
	{"インラインコード", "`"},

	// emphasis
	{"太字開始", "**"},
	{"太字終了", "**"},
	{"太字", "**"},
	{"斜体開始", "*"},
	{"斜体終了", "*"},

	// rules
	{"水平線", "\n\n---\n\n"},
	{"区切り線", "\n\n---\n\n"},

	// quotes
	{"引用開始", "\n\n> "},
	{"引用", "\n> "},
}

// boundaryRunes are the punctuation marks that delimit a trigger phrase
// in addition to whitespace and string start/end.
const boundaryRunes = "、。，．,."

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Processor applies the rule table to transcripts.
type Processor struct {
	enabled bool
	rules   []Rule
}

// NewProcessor builds a processor from the built-in table with custom rules
// prepended so they win length ties against built-ins.
func NewProcessor(enabled bool, custom []Rule) *Processor {
	rules := make([]Rule, 0, len(custom)+len(builtinRules))
	rules = append(rules, custom...)
	rules = append(rules, builtinRules...)
	sort.SliceStable(rules, func(i, j int) bool {
		return utf8.RuneCountInString(rules[i].Trigger) > utf8.RuneCountInString(rules[j].Trigger)
	})
	return &Processor{enabled: enabled, rules: rules}
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(boundaryRunes, r)
}

// boundedBefore reports whether position i in text starts a bounded match.
func boundedBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return isBoundary(r)
}

// replaceBounded substitutes every bounded occurrence of trigger in one
// left-to-right pass. The delimiting rune after the trigger, when present,
// is consumed along with it so the replacement splices cleanly.
func replaceBounded(text, trigger, replacement string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		j := strings.Index(text[i:], trigger)
		if j < 0 {
			break
		}
		j += i
		end := j + len(trigger)

		after := rune(-1)
		afterWidth := 0
		if end < len(text) {
			after, afterWidth = utf8.DecodeRuneInString(text[end:])
		}

		if boundedBefore(text, j) && (end == len(text) || isBoundary(after)) {
			b.WriteString(text[i:j])
			b.WriteString(replacement)
			if afterWidth > 0 {
				end += afterWidth
			}
			i = end
		} else {
			// Skip one rune past the failed match position.
			_, w := utf8.DecodeRuneInString(text[j:])
			b.WriteString(text[i : j+w])
			i = j + w
		}
	}
	b.WriteString(text[i:])
	return b.String()
}

// Process rewrites all command phrases in text and normalizes the result:
// blank-line runs collapse to one blank line, leading newlines are dropped
// and trailing whitespace is trimmed.
func (p *Processor) Process(text string) string {
	if !p.enabled || text == "" {
		return text
	}

	result := text
	for _, rule := range p.rules {
		result = replaceBounded(result, rule.Trigger, rule.Replacement)
	}

	result = blankRuns.ReplaceAllString(result, "\n\n")
	result = strings.TrimLeft(result, "\n")
	result = strings.TrimRight(result, " \t\n\r")
	return result
}

// HasCommands reports whether text contains at least one bounded trigger.
func (p *Processor) HasCommands(text string) bool {
	if !p.enabled || text == "" {
		return false
	}
	for _, rule := range p.rules {
		if containsBounded(text, rule.Trigger) {
			return true
		}
	}
	return false
}

func containsBounded(text, trigger string) bool {
	i := 0
	for i < len(text) {
		j := strings.Index(text[i:], trigger)
		if j < 0 {
			return false
		}
		j += i
		end := j + len(trigger)
		if boundedBefore(text, j) {
			if end == len(text) {
				return true
			}
			if r, _ := utf8.DecodeRuneInString(text[end:]); isBoundary(r) {
				return true
			}
		}
		_, w := utf8.DecodeRuneInString(text[j:])
		i = j + w
	}
	return false
}

// RuleInfo describes one available command for display.
type RuleInfo struct {
	Trigger     string
	Description string
}

// descReplacements maps replacement fragments to human-readable labels.
// Applied longest fragment first so compound snippets resolve before the
// single characters they contain.
var descReplacements = []struct{ literal, label string }{
	{"\n\n", "段落区切り"},
	{"\n", "改行"},
	{"```", "コードブロック"},
	{"**", "太字"},
	{"*", "斜体"},
	{"# ", "見出し"},
	{"- ", "箇条書き"},
	{"> ", "引用"},
	{"---", "水平線"},
	{"`", "コード"},
}

// ListRules returns the de-duplicated trigger set in priority order with a
// description derived from each replacement's structural role.
func (p *Processor) ListRules() []RuleInfo {
	seen := make(map[string]bool, len(p.rules))
	infos := make([]RuleInfo, 0, len(p.rules))
	for _, rule := range p.rules {
		if seen[rule.Trigger] {
			continue
		}
		seen[rule.Trigger] = true
		desc := rule.Replacement
		for _, dr := range descReplacements {
			desc = strings.ReplaceAll(desc, dr.literal, dr.label)
		}
		infos = append(infos, RuleInfo{Trigger: rule.Trigger, Description: strings.TrimSpace(desc)})
	}
	return infos
}
