package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navstack/pkg/navstack/scenarios"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "navdemo.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
language = "ru"
scenarios = ["simple", "modal"]

[style]
width = 30
`)
	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	require.Equal(t, "ru", cfg.Language)
	require.Equal(t, "error", cfg.LogLevel, "unset keys keep defaults")
	require.Equal(t, []string{"simple", "modal"}, cfg.selected())
	require.Equal(t, 30, cfg.Style.Width)
	require.Equal(t, "#f5c2e7", cfg.Style.Accent)
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := loadConfig(missing, false)
	require.NoError(t, err)
	require.Equal(t, scenarios.Names(), cfg.selected())

	_, err = loadConfig(missing, true)
	require.Error(t, err)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", `colour = "red"`, "unknown keys: colour"},
		{"unknown scenario", `scenarios = ["simpel"]`, `unknown scenario "simpel"`},
		{"bad width", "[style]\nwidth = -1", "style.width"},
		{"bad toml", `language = `, "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body), true)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-list"}, &out))
	require.Equal(t, strings.Join(scenarios.Names(), "\n")+"\n", out.String())
}

func TestRunScenario(t *testing.T) {
	var out bytes.Buffer
	path := writeConfig(t, "")
	require.NoError(t, run([]string{"-config", path, "-lang", "en", "-scenario", "simple"}, &out))

	text := out.String()
	require.Contains(t, text, "simple")
	require.Contains(t, text, "Go to B")
	require.Contains(t, text, "5. Back")
}

func TestRunUnknownScenario(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-config", writeConfig(t, ""), "-scenario", "nope"}, &out)
	require.ErrorContains(t, err, `unknown scenario "nope"`)
}
