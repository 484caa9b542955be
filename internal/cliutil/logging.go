// Package cliutil holds small helpers shared by the command-line tools
// under cmd/, kept out of the library package so the decoder itself
// never depends on logging or flag-parsing machinery.
package cliutil

import (
	"log/slog"
	"os"
	"strings"
)

// InitSlog configures the default slog logger from the PHPDUMP_LOG_LEVEL
// environment variable. Supported levels: debug, info, warn, error.
// Left unset, slog's own default (info, discarding debug) applies.
func InitSlog() {
	level, ok := os.LookupEnv("PHPDUMP_LOG_LEVEL")
	if !ok {
		return
	}
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
