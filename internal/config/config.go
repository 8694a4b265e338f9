// Package config loads the optional TOML config file and resolves the todo
// file path.
//
// Precedence, lowest to highest: built-in defaults, config file
// ($XDG_CONFIG_HOME/todo/config.toml or --config), environment (TODO_*),
// CLI flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	appDir         = "todo"
	configFileName = "config.toml"
	// DefaultFileName is joined to the home directory when no path is configured.
	DefaultFileName = ".todo"
)

// Config holds user preferences. Zero values mean "use the default".
type Config struct {
	Path          string `toml:"path"`
	Theme         string `toml:"theme"`      // classic | neon | mono
	Color         string `toml:"color"`      // auto | always | never
	Group         bool   `toml:"group"`      // list grouped by pending/done
	WriteMode     string `toml:"write_mode"` // truncate | atomic
	SkipMalformed bool   `toml:"skip_malformed"`
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme:     "classic",
		Color:     "auto",
		WriteMode: "truncate",
		LogLevel:  "warn",
	}
}

// DefaultFile returns the user-level config file location.
func DefaultFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, appDir, configFileName), nil
}

// Load reads defaults, then the config file, then environment overrides.
// A missing file is fine unless the caller named it explicitly.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultFile()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	applyEnv(&cfg, os.Getenv)
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("TODO_PATH"); v != "" {
		cfg.Path = v
	}
	if v := getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := getenv("TODO_COLOR"); v != "" {
		cfg.Color = v
	}
}

// ResolvePath picks the todo file: the explicit path when ok, else the
// configured one, else $HOME/.todo. The result is absolute.
func ResolvePath(explicit string, ok bool, cfg Config) (string, error) {
	var p string
	switch {
	case ok:
		if explicit == "" {
			return "", errors.New("empty --path")
		}
		p = explicit
	case cfg.Path != "":
		p = cfg.Path
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home: %w", err)
		}
		p = filepath.Join(home, DefaultFileName)
	}

	p = expandHome(p)
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", p, err)
	}
	return abs, nil
}
