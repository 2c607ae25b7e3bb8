package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// newLogger returns a logger that writes JSON to the given file with
// rotation. An empty file path logs to stderr; the TUI owns stdout.
func newLogger(level, file string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	out := zerolog.New(os.Stderr)
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, err
		}
		out = zerolog.New(&lj.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	return out.With().Timestamp().Logger().Level(lvl), nil
}
