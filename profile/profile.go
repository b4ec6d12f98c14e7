// Package profile maps the active destination application to an output
// profile controlling how aggressively markdown structure is kept.
package profile

import (
	"strings"

	"kotonote/markdown"
)

// FormatMode is a destination's preference for markdown structure.
type FormatMode string

const (
	ModeAuto       FormatMode = "auto"
	ModePlain      FormatMode = "plain"
	ModeStructured FormatMode = "structured"
)

// Profile is one destination's output configuration.
type Profile struct {
	Key             string
	DisplayName     string
	Mode            FormatMode
	StripMarkup     bool
	TrailingNewline bool

	// Source is the destination identifier the profile was resolved from,
	// set on the returned copy for diagnostics only.
	Source string
}

// Apply runs the profile's post-processing over formatted text.
func (p Profile) Apply(text string) string {
	if text == "" {
		return text
	}
	result := text
	if p.StripMarkup {
		result = markdown.Strip(result)
	}
	if p.TrailingNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result
}

// defaultProfiles lists the stock destination table. Order matters: the
// substring fallback scans it first to last.
var defaultProfiles = []Profile{
	// browsers (AI chat input)
	{Key: "Google Chrome", DisplayName: "ブラウザ", Mode: ModeAuto},
	{Key: "Safari", DisplayName: "Safari", Mode: ModeAuto},
	{Key: "Arc", DisplayName: "Arc", Mode: ModeAuto},
	{Key: "Firefox", DisplayName: "Firefox", Mode: ModeAuto},

	// chat (short plain text)
	{Key: "Slack", DisplayName: "Slack", Mode: ModePlain, StripMarkup: true},
	{Key: "LINE", DisplayName: "LINE", Mode: ModePlain, StripMarkup: true},
	{Key: "Discord", DisplayName: "Discord", Mode: ModeAuto},
	{Key: "Messages", DisplayName: "メッセージ", Mode: ModePlain, StripMarkup: true},

	// mail
	{Key: "Mail", DisplayName: "メール", Mode: ModePlain, StripMarkup: true, TrailingNewline: true},

	// note-taking (markdown friendly)
	{Key: "Notes", DisplayName: "メモ", Mode: ModeStructured, TrailingNewline: true},
	{Key: "Notion", DisplayName: "Notion", Mode: ModeStructured},
	{Key: "Obsidian", DisplayName: "Obsidian", Mode: ModeStructured, TrailingNewline: true},

	// editors
	{Key: "Code", DisplayName: "VS Code", Mode: ModeAuto, TrailingNewline: true},
	{Key: "Cursor", DisplayName: "Cursor", Mode: ModeAuto, TrailingNewline: true},

	// terminals
	{Key: "Terminal", DisplayName: "ターミナル", Mode: ModePlain, StripMarkup: true},
	{Key: "iTerm2", DisplayName: "iTerm2", Mode: ModePlain, StripMarkup: true},
}

// Fallback is the profile for unknown destinations. Never stored in the
// table; Resolve hands out copies.
var Fallback = Profile{DisplayName: "デフォルト", Mode: ModeAuto}

// Resolver resolves destination identifiers against a fixed profile table.
type Resolver struct {
	enabled  bool
	profiles []Profile
}

// NewResolver builds a resolver over the default table. Overrides replace
// entries with a matching key and otherwise are appended in order.
func NewResolver(enabled bool, overrides []Profile) *Resolver {
	profiles := make([]Profile, len(defaultProfiles))
	copy(profiles, defaultProfiles)
	for _, ov := range overrides {
		replaced := false
		for i := range profiles {
			if profiles[i].Key == ov.Key {
				profiles[i] = ov
				replaced = true
				break
			}
		}
		if !replaced {
			profiles = append(profiles, ov)
		}
	}
	return &Resolver{enabled: enabled, profiles: profiles}
}

// Resolve maps a destination identifier to its profile. Exact key match
// wins; otherwise the first table entry whose key matches the identifier
// case-insensitively as a substring in either direction; otherwise a copy
// of Fallback. The returned profile is always an independent copy carrying
// the observed identifier in Source.
func (r *Resolver) Resolve(destID string) Profile {
	if !r.enabled || destID == "" {
		p := Fallback
		p.Source = destID
		return p
	}

	for _, p := range r.profiles {
		if p.Key == destID {
			p.Source = destID
			return p
		}
	}

	destLower := strings.ToLower(destID)
	for _, p := range r.profiles {
		keyLower := strings.ToLower(p.Key)
		if strings.Contains(destLower, keyLower) || strings.Contains(keyLower, destLower) {
			p.Source = destID
			return p
		}
	}

	p := Fallback
	p.Source = destID
	return p
}

// List returns a snapshot of the registered profile table.
func (r *Resolver) List() []Profile {
	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}
