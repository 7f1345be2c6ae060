// Package constants defines shared constants used throughout navstack.
package constants

import "os"

// Development is the environment variable value for development mode.
const Development = "DEV"

// DebugEnvVar enables debug logging for the navigation packages when set.
const DebugEnvVar = "NAVSTACK_DEBUG"

// LanguageEnvVar overrides the language used for localized titles.
const LanguageEnvVar = "NAVSTACK_LANG"

// LogPathEnvVar overrides the log file path.
const LogPathEnvVar = "NAVSTACK_LOG_PATH"

// DefaultLanguage is used when nothing else selects a language.
const DefaultLanguage = "en"

// DefaultConfigFile is the file navdemo reads when -config is not given.
const DefaultConfigFile = "navdemo.toml"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// IsDebug returns true if debug logging was requested via the environment.
func IsDebug() bool {
	return os.Getenv(DebugEnvVar) != "" || IsDevMode()
}
