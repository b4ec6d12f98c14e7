// Package config loads settings from a TOML file layered over defaults, with
// API keys taken from the environment (optionally seeded from a .env file).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Rule is a user-supplied voice command checked ahead of the built-ins.
type Rule struct {
	Trigger     string `toml:"trigger"`
	Replacement string `toml:"replacement"`
}

// Profile overrides or extends the built-in destination profile table.
type Profile struct {
	Key             string `toml:"key"`
	DisplayName     string `toml:"display_name"`
	Mode            string `toml:"mode"`
	StripMarkup     bool   `toml:"strip_markup"`
	TrailingNewline bool   `toml:"trailing_newline"`
}

type Config struct {
	Language             string    `toml:"language"`
	GeminiModel          string    `toml:"gemini_model"`
	OutputDir            string    `toml:"output_dir"`
	AutoPaste            bool      `toml:"auto_paste"`
	SaveMarkdown         bool      `toml:"save_markdown"`
	FormatThreshold      int       `toml:"format_threshold"`
	VoiceCommandsEnabled bool      `toml:"voice_commands_enabled"`
	AppProfilesEnabled   bool      `toml:"app_profiles_enabled"`
	Commands             []Rule    `toml:"commands"`
	Profiles             []Profile `toml:"profiles"`

	Env Env `toml:"-"`
}

// Env holds secrets that never live in the config file.
type Env struct {
	GroqAPIKey   string `envconfig:"GROQ_API_KEY"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
}

func Default() *Config {
	return &Config{
		Language:             "ja",
		GeminiModel:          "gemini-2.0-flash",
		OutputDir:            defaultOutputDir(),
		AutoPaste:            true,
		SaveMarkdown:         true,
		FormatThreshold:      100,
		VoiceCommandsEnabled: true,
		AppProfilesEnabled:   true,
	}
}

// Path returns the default config file location.
func Path() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(base, "kotonote", "config.toml")
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes"
	}
	return filepath.Join(home, "Documents", "kotonote")
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error. API keys come from the environment after a best-effort .env load.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	_ = godotenv.Load()
	if err := envconfig.Process("", &cfg.Env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if cfg.FormatThreshold <= 0 {
		cfg.FormatThreshold = 100
	}

	return cfg, nil
}
