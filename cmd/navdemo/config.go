package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/navstack/pkg/navstack/scenarios"
)

// Config is the navdemo.toml file.
type Config struct {
	Language  string   `toml:"language"`
	LogLevel  string   `toml:"log_level"`
	LogPath   string   `toml:"log_path"`
	Debug     bool     `toml:"debug"`
	Scenarios []string `toml:"scenarios"`
	Style     Style    `toml:"style"`
}

// Style picks the colors frames are drawn with.
type Style struct {
	Accent string `toml:"accent"`
	Muted  string `toml:"muted"`
	Width  int    `toml:"width"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "error",
		Style: Style{
			Accent: "#f5c2e7",
			Muted:  "#6c7086",
			Width:  48,
		},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error
// unless required is set.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	known := map[string]bool{}
	for _, name := range scenarios.Names() {
		known[name] = true
	}
	for _, name := range c.Scenarios {
		if !known[name] {
			return fmt.Errorf("config: unknown scenario %q", name)
		}
	}
	if c.Style.Width < 0 {
		return fmt.Errorf("config: style.width must not be negative")
	}
	return nil
}

// selected returns the scenarios to run, all of them when none are named.
func (c Config) selected() []string {
	if len(c.Scenarios) == 0 {
		return scenarios.Names()
	}
	return c.Scenarios
}
