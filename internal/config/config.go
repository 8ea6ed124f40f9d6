// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-books settings with viper. Precedence, lowest
// first: defaults, config file, ARC_BOOKS_* environment, command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName   = "arc-books"
	envPrefix = "ARC_BOOKS"
)

// Keys understood by arc-books.
const (
	KeyFile           = "file"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeySearchField    = "search.field"
	KeyConfirm        = "confirm"
	KeySortField      = "sort.field"
	KeySortDescending = "sort.descending"
)

// Confirm policies for side effects of status changes.
const (
	ConfirmAsk    = "ask"
	ConfirmAlways = "always"
	ConfirmNever  = "never"
)

// Config is the resolved settings snapshot.
type Config struct {
	File    string `mapstructure:"file"`
	Confirm string `mapstructure:"confirm"`
	Log     struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Search struct {
		Field string `mapstructure:"field"`
	} `mapstructure:"search"`
	Sort struct {
		Field      string `mapstructure:"field"`
		Descending bool   `mapstructure:"descending"`
	} `mapstructure:"sort"`
}

// Manager wraps a viper instance and remembers which file settings are
// written back to.
type Manager struct {
	v    *viper.Viper
	path string
}

// New returns a Manager with defaults and environment binding in place. No
// file is read until Load.
func New() *Manager {
	v := viper.New()
	v.SetDefault(KeyFile, DefaultDataFile())
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "pretty")
	v.SetDefault(KeySearchField, "All Fields")
	v.SetDefault(KeyConfirm, ConfirmAsk)
	v.SetDefault(KeySortField, "")
	v.SetDefault(KeySortDescending, false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Manager{v: v, path: DefaultConfigFile()}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error.
func (m *Manager) Load(path string) error {
	if path != "" {
		m.path = path
	}
	m.v.SetConfigFile(m.path)
	m.v.SetConfigType(configType(m.path))
	if err := m.v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", m.path, err)
	}
	return nil
}

// BindFlags lets flags override file and environment values. Flag names use
// dashes where keys use dots.
func (m *Manager) BindFlags(flags *pflag.FlagSet) error {
	bindings := map[string]string{
		KeyFile:      "file",
		KeyLogLevel:  "log-level",
		KeyLogFormat: "log-format",
	}
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := m.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Settings returns the resolved configuration.
func (m *Manager) Settings() (Config, error) {
	var c Config
	if err := m.v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.File = expandHome(c.File)
	switch c.Confirm {
	case ConfirmAsk, ConfirmAlways, ConfirmNever:
	default:
		return Config{}, fmt.Errorf("invalid confirm policy %q (choose ask, always, never)", c.Confirm)
	}
	return c, nil
}

// Path is the config file settings are read from and written to.
func (m *Manager) Path() string { return m.path }

// SaveActiveFile records path as the active book file.
func (m *Manager) SaveActiveFile(path string) error {
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	return m.persist(map[string]any{KeyFile: abs})
}

// SaveSortState records the last applied sort so the next sort on the same
// field toggles direction.
func (m *Manager) SaveSortState(field string, descending bool) error {
	return m.persist(map[string]any{
		KeySortField:      field,
		KeySortDescending: descending,
	})
}

// persist writes values into the config file only. A separate viper instance
// keeps env and flag overrides out of the file.
func (m *Manager) persist(values map[string]any) error {
	fv := viper.New()
	fv.SetConfigFile(m.path)
	fv.SetConfigType(configType(m.path))
	if err := fv.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config %s: %w", m.path, err)
		}
	}
	for k, val := range values {
		fv.Set(k, val)
		m.v.Set(k, val)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := fv.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("write config %s: %w", m.path, err)
	}
	return nil
}

// DefaultConfigFile is $XDG_CONFIG_HOME/arc-books/config.yaml.
func DefaultConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if d, err := os.UserConfigDir(); err == nil {
			dir = d
		} else {
			dir = "."
		}
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// DefaultDataFile is $XDG_DATA_HOME/arc-books/books.json, falling back to
// ~/.local/share.
func DefaultDataFile() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "books.json"
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, appName, "books.json")
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return "yaml"
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
