package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logMu   sync.Mutex
	logFile *os.File
	logPath string

	output io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   = &slog.LevelVar{}

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   = &slog.LevelVar{}
)

func init() {
	internalLevelVar.Set(slog.LevelError)
}

// SetLogPath sets the full path for the log file, including filename.
// Parent directories are created on first use. An empty path logs to
// stdout only.
func SetLogPath(path string) {
	logMu.Lock()
	defer logMu.Unlock()
	logPath = path
}

// SetOutput redirects both loggers to w. Must be called before the first
// GetLogger or GetInternalLogger call to take effect.
func SetOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	output = w
}

func writer() io.Writer {
	logMu.Lock()
	defer logMu.Unlock()

	if output != nil {
		return output
	}

	output = os.Stdout
	if logPath == "" {
		return output
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return output
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Can't open log file, fall back to console-only
		return output
	}
	logFile = f
	output = io.MultiWriter(os.Stdout, logFile)
	return output
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		logger = slog.New(slog.NewJSONHandler(writer(), &slog.HandlerOptions{
			Level: levelVar,
		}))
	})
	return logger
}

// GetInternalLogger returns the logger used by the navigation packages
// themselves. It defaults to error level so library chatter stays quiet.
func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		internalLogger = slog.New(slog.NewJSONHandler(writer(), &slog.HandlerOptions{
			Level: internalLevelVar,
		})).With("component", "navstack")
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	internalLevelVar.Set(level)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(raw string) {
	levelVar.Set(ParseLevel(raw))
}

func CloseLogger() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
