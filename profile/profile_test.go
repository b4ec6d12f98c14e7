package profile

import "testing"

func TestResolveExactMatch(t *testing.T) {
	r := NewResolver(true, nil)
	p := r.Resolve("Slack")
	if p.Key != "Slack" || !p.StripMarkup || p.Mode != ModePlain {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.Source != "Slack" {
		t.Fatalf("Source = %q", p.Source)
	}
}

func TestResolveSubstringEitherDirection(t *testing.T) {
	r := NewResolver(true, nil)

	// Table key is a substring of the destination id.
	p := r.Resolve("Slack - #general")
	if p.Key != "Slack" {
		t.Fatalf("expected Slack profile, got %+v", p)
	}

	// Destination id is a substring of the table key.
	p = r.Resolve("chrome")
	if p.Key != "Google Chrome" {
		t.Fatalf("expected Google Chrome profile, got %+v", p)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	// "e" appears in many keys; insertion order decides.
	r := NewResolver(true, nil)
	p := r.Resolve("e")
	if p.Key != "Google Chrome" {
		t.Fatalf("expected first table entry to win, got %q", p.Key)
	}
}

func TestResolveUnknownReturnsFallback(t *testing.T) {
	r := NewResolver(true, nil)
	p := r.Resolve("完全に未知のアプリ九十九")
	if p.Key != "" || p.DisplayName != Fallback.DisplayName {
		t.Fatalf("expected fallback, got %+v", p)
	}
	if p.Source != "完全に未知のアプリ九十九" {
		t.Fatalf("fallback must carry the observed id, got %q", p.Source)
	}
}

func TestResolveDisabled(t *testing.T) {
	r := NewResolver(false, nil)
	p := r.Resolve("Slack")
	if p.StripMarkup || p.Mode != ModeAuto {
		t.Fatalf("disabled resolver must return fallback, got %+v", p)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver(true, nil)
	a := r.Resolve("Obsidian")
	b := r.Resolve("Obsidian")
	if a != b {
		t.Fatalf("resolution not deterministic: %+v vs %+v", a, b)
	}
}

func TestResolveDoesNotMutateTable(t *testing.T) {
	r := NewResolver(true, nil)
	_ = r.Resolve("Terminal session")
	for _, p := range r.List() {
		if p.Source != "" {
			t.Fatalf("stored entry mutated: %+v", p)
		}
	}
}

func TestOverrides(t *testing.T) {
	ov := []Profile{
		{Key: "Slack", DisplayName: "Slack", Mode: ModeAuto},
		{Key: "Zed", DisplayName: "Zed", Mode: ModeStructured},
	}
	r := NewResolver(true, ov)

	if p := r.Resolve("Slack"); p.StripMarkup || p.Mode != ModeAuto {
		t.Fatalf("override should replace entry: %+v", p)
	}
	if p := r.Resolve("Zed"); p.Mode != ModeStructured {
		t.Fatalf("appended override not found: %+v", p)
	}
}

func TestApplyStripAndNewline(t *testing.T) {
	strip := Profile{StripMarkup: true}
	if got := strip.Apply("**重要** な話"); got != "重要 な話" {
		t.Fatalf("Apply strip = %q", got)
	}

	nl := Profile{TrailingNewline: true}
	if got := nl.Apply("本文"); got != "本文\n" {
		t.Fatalf("Apply newline = %q", got)
	}
	if got := nl.Apply("本文\n"); got != "本文\n" {
		t.Fatalf("Apply must not double the newline: %q", got)
	}

	var plain Profile
	if got := plain.Apply(""); got != "" {
		t.Fatalf("Apply empty = %q", got)
	}
}
