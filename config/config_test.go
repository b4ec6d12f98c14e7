package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language != "ja" {
		t.Errorf("Language = %q, want ja", cfg.Language)
	}
	if cfg.FormatThreshold != 100 {
		t.Errorf("FormatThreshold = %d, want 100", cfg.FormatThreshold)
	}
	if !cfg.VoiceCommandsEnabled || !cfg.AppProfilesEnabled {
		t.Error("feature defaults should be enabled")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
language = "en"
format_threshold = 50
auto_paste = false

[[commands]]
trigger = "ぱら"
replacement = "\n\n"

[[profiles]]
key = "Ghostty"
display_name = "Ghostty"
strip_markup = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q", cfg.Language)
	}
	if cfg.FormatThreshold != 50 {
		t.Errorf("FormatThreshold = %d", cfg.FormatThreshold)
	}
	if cfg.AutoPaste {
		t.Error("AutoPaste should be overridden to false")
	}
	if len(cfg.Commands) != 1 || cfg.Commands[0].Trigger != "ぱら" {
		t.Errorf("Commands = %+v", cfg.Commands)
	}
	if len(cfg.Profiles) != 1 || !cfg.Profiles[0].StripMarkup {
		t.Errorf("Profiles = %+v", cfg.Profiles)
	}
	// Untouched keys keep their defaults.
	if !cfg.SaveMarkdown {
		t.Error("SaveMarkdown default lost")
	}
}

func TestLoadEnvKeys(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gk")
	t.Setenv("GEMINI_API_KEY", "mk")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Env.GroqAPIKey != "gk" || cfg.Env.GeminiAPIKey != "mk" {
		t.Errorf("Env = %+v", cfg.Env)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("language = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() succeeded on invalid TOML")
	}
}

func TestLoadClampsThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("format_threshold = -5"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FormatThreshold != 100 {
		t.Errorf("FormatThreshold = %d, want clamp to 100", cfg.FormatThreshold)
	}
}
