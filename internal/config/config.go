// Package config loads the tool's settings. Sources are layered with koanf,
// lowest priority first: built-in defaults, the YAML config file,
// FLASHCARD_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/conorfennell/flashcard/internal/gitsource"
)

const (
	appName   = "flashcard"
	envPrefix = "FLASHCARD_"
)

// Config is read once at startup and not mutated afterwards.
type Config struct {
	// ConfigFile is the YAML file the other values were read from, if any.
	ConfigFile string `koanf:"config"`

	Deck    string `koanf:"deck" validate:"required"`
	Results string `koanf:"results" validate:"required,nefield=Deck"`
	DB      string `koanf:"db" validate:"required"`

	// Editor falls back to $EDITOR when unset.
	Editor string `koanf:"editor"`
	Color  bool   `koanf:"color"`

	// Count is the quiz size; 0 means ask interactively.
	Count    int  `koanf:"count" validate:"gte=0"`
	Distinct bool `koanf:"distinct"`
	Speak    bool `koanf:"speak"`

	Speech SpeechConfig `koanf:"speech"`
	Git    GitConfig    `koanf:"git"`
	Log    LogConfig    `koanf:"log"`
}

// SpeechConfig configures the speech synthesizer used by quiz --speak.
type SpeechConfig struct {
	Command string `koanf:"command"`
}

// GitConfig points at a repository that holds the deck.
type GitConfig struct {
	URL string `koanf:"url"`
	// Dir is the checkout directory. Empty derives one from URL under the
	// data directory.
	Dir string `koanf:"dir"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in settings.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		ConfigFile: filepath.Join(configHome(home), appName, "config.yaml"),
		Deck:       filepath.Join(home, ".flashcard.cards"),
		Results:    filepath.Join(home, ".flashcard.log"),
		DB:         filepath.Join(DataDir(home), "flashcard.db"),
		Color:      true,
		Speech:     SpeechConfig{Command: "espeak"},
		Log:        LogConfig{Level: "warn"},
	}
}

// Load layers the config file, environment and flags over the
// defaults, then validates the result. Flags are expected to be registered
// with Default values, so an unchanged flag never masks a lower layer.
func Load(flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	path := Default().ConfigFile
	if f := flags.Lookup("config"); f != nil && f.Changed {
		path = f.Value.String()
	} else if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		path = p
	}
	path = expandHome(path)

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("No config file", "path", path)
	default:
		return Config{}, fmt.Errorf("stat config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
		return Config{}, fmt.Errorf("load flags: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = path

	if cfg.Editor == "" {
		cfg.Editor = os.Getenv("EDITOR")
	}
	cfg.Deck = expandHome(cfg.Deck)
	cfg.Results = expandHome(cfg.Results)
	cfg.DB = expandHome(cfg.DB)
	cfg.Git.Dir = expandHome(cfg.Git.Dir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Speak && strings.TrimSpace(c.Speech.Command) == "" {
		return errors.New("invalid config: speak is set but speech.command is empty")
	}
	return nil
}

// GitDir returns the checkout directory for the deck repository.
func (c Config) GitDir() (string, error) {
	if c.Git.URL == "" {
		return "", errors.New("no deck repository configured (set git.url)")
	}
	if c.Git.Dir != "" {
		return c.Git.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return gitsource.LocalPath(filepath.Join(DataDir(home), "repos"), c.Git.URL)
}

// SlogLevel converts Log.Level for a slog handler.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// DataDir resolves $XDG_DATA_HOME/flashcard, falling back to
// ~/.local/share/flashcard.
func DataDir(home string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName)
}

func configHome(home string) string {
	if p := os.Getenv("XDG_CONFIG_HOME"); p != "" {
		return p
	}
	return filepath.Join(home, ".config")
}

// envKey maps FLASHCARD_GIT_URL to git.url.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
}

// flagKey maps --log-level to log.level.
func flagKey(flags *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		return strings.ReplaceAll(f.Name, "-", "."), posflag.FlagVal(flags, f)
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
