// Package navstack provides navigation state containers for UI layers:
// stacks of screen configurations, modal overlay slots, tab sets of
// independent stacks and string route encoding.
//
// The containers live in the router, route, value and instance
// subpackages. This package wires the shared infrastructure they log and
// localize through, and the scenarios package shows them in use.
package navstack

import (
	"log/slog"
	"os"

	"golang.org/x/text/language"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BrandonKowalski/navstack/pkg/navstack/internal"
)

// Options configures navstack initialization.
type Options struct {
	LogPath  string // Full path for log file including filename (creates parent directories)
	LogLevel string // Application log level name ("debug", "info", "warn", "error")
	Language string // BCP 47 tag for localized titles, e.g. "en" or "ru"
	Debug    bool   // Log navigation transitions from the library itself
}

// Init applies options. Environment variables take precedence: see
// constants.DebugEnvVar, constants.LanguageEnvVar and constants.LogPathEnvVar.
// Call before creating stacks so their loggers pick up the settings.
func Init(options Options) {
	logPath := options.LogPath
	if env := os.Getenv(constants.LogPathEnvVar); env != "" {
		logPath = env
	}
	if logPath != "" {
		internal.SetLogPath(logPath)
	}

	if options.Debug || constants.IsDebug() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}

	lang := options.Language
	if env := os.Getenv(constants.LanguageEnvVar); env != "" {
		lang = env
	}
	if lang == "" {
		lang = constants.DefaultLanguage
	}
	tag := internal.SetLanguage(lang)

	internal.GetInternalLogger().Debug("navstack initialized", "language", tag.String(), "log_path", logPath)
}

// Close flushes and closes the log file, if any.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetLanguage selects the language for Localize and returns the supported
// language actually chosen.
func SetLanguage(lang string) language.Tag {
	return internal.SetLanguage(lang)
}

// Language returns the active language.
func Language() language.Tag {
	return internal.Language()
}

// SupportedLanguages lists the languages with bundled titles.
func SupportedLanguages() []language.Tag {
	return internal.SupportedLanguages()
}

// Localize renders a bundled message. Unknown ids render as themselves.
func Localize(id string, data map[string]any) string {
	return internal.Localize(id, data)
}
