package main

import (
	"errors"
	"strings"
	"testing"

	"kotonote/config"
	"kotonote/profile"
)

func TestTriggerStatusMessages(t *testing.T) {
	if got := triggerStatus(nil); got != "" {
		t.Errorf("triggerStatus(nil) = %q, want no message", got)
	}
	if got := triggerStatus(ErrBusy); got != "処理中です。しばらくお待ちください。" {
		t.Errorf("triggerStatus(ErrBusy) = %q", got)
	}
	if got := triggerStatus(ErrNoAudio); got != "音声が検出されませんでした" {
		t.Errorf("triggerStatus(ErrNoAudio) = %q", got)
	}
	if got := triggerStatus(errors.New("mic unavailable")); got != "mic unavailable" {
		t.Errorf("triggerStatus(err) = %q", got)
	}
}

func TestPreviewTruncatesByRunes(t *testing.T) {
	short := "短いテキスト"
	if got := preview(short); got != short {
		t.Errorf("preview(short) = %q", got)
	}

	long := strings.Repeat("あ", 100)
	got := preview(long)
	if want := strings.Repeat("あ", 80) + "..."; got != want {
		t.Errorf("preview(long) = %q, want 80 runes + ellipsis", got)
	}
}

func TestCustomRulesSkipsEmptyTriggers(t *testing.T) {
	cfg := &config.Config{Commands: []config.Rule{
		{Trigger: "", Replacement: "x"},
		{Trigger: "ぱら", Replacement: "\n\n"},
	}}
	rules := customRules(cfg)
	if len(rules) != 1 || rules[0].Trigger != "ぱら" {
		t.Errorf("customRules = %+v", rules)
	}
}

func TestCustomProfilesDefaults(t *testing.T) {
	cfg := &config.Config{Profiles: []config.Profile{
		{Key: "Ghostty", Mode: "plain", StripMarkup: true},
	}}
	profiles := customProfiles(cfg)
	if len(profiles) != 1 {
		t.Fatalf("customProfiles = %+v", profiles)
	}
	p := profiles[0]
	if p.DisplayName != "Ghostty" {
		t.Errorf("DisplayName = %q, want key as fallback", p.DisplayName)
	}
	if p.Mode != profile.ModePlain {
		t.Errorf("Mode = %v", p.Mode)
	}
}

func TestParseMode(t *testing.T) {
	if parseMode("structured") != profile.ModeStructured {
		t.Error("structured not parsed")
	}
	if parseMode("") != profile.ModeAuto {
		t.Error("empty mode should be auto")
	}
	if parseMode("bogus") != profile.ModeAuto {
		t.Error("unknown mode should be auto")
	}
}
