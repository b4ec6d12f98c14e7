package formatter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// fillers lists the hesitation words the local fallback removes.
var fillers = []string{
	"えーと", "えっと", "えー", "あのー", "あの",
	"うーん", "うん", "まぁ", "まあ", "そのー",
	"なんか", "なんていうか", "ほら",
	"あー", "んー", "んと",
}

var (
	spaceRuns = regexp.MustCompile(`[ \t　]+`)
	blankRuns = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// Fallback strips filler words and normalizes whitespace. It never fails
// and is used when the remote formatter is absent, errors, or the
// transcript is too short to be worth a network round trip.
type Fallback struct {
	ordered []string
}

func NewFallback() *Fallback {
	ordered := make([]string, len(fillers))
	copy(ordered, fillers)
	// Longest first so えーと is never half-eaten by えー.
	sort.SliceStable(ordered, func(i, j int) bool {
		return utf8.RuneCountInString(ordered[i]) > utf8.RuneCountInString(ordered[j])
	})
	return &Fallback{ordered: ordered}
}

// Clean removes fillers bounded by whitespace or punctuation, collapses
// space runs and blank-line runs, and trims outer whitespace.
func (f *Fallback) Clean(text string) string {
	result := text
	for _, filler := range f.ordered {
		result = removeFiller(result, filler)
	}
	result = spaceRuns.ReplaceAllString(result, " ")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// removeFiller deletes bounded occurrences of one filler word together
// with the whitespace run that follows it.
func removeFiller(text, filler string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		j := strings.Index(text[i:], filler)
		if j < 0 {
			break
		}
		j += i
		end := j + len(filler)

		if startsBounded(text, j) && endsBounded(text, end) {
			b.WriteString(text[i:j])
			for end < len(text) {
				r, w := utf8.DecodeRuneInString(text[end:])
				if !unicode.IsSpace(r) {
					break
				}
				end += w
			}
			i = end
		} else {
			_, w := utf8.DecodeRuneInString(text[j:])
			b.WriteString(text[i : j+w])
			i = j + w
		}
	}
	b.WriteString(text[i:])
	return b.String()
}

func startsBounded(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return unicode.IsSpace(r)
}

func endsBounded(text string, end int) bool {
	if end == len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return unicode.IsSpace(r) || r == '、' || r == '。'
}
