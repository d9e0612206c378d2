package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"rwsl-simulator/internal/config"
)

const header = "${time_rfc3339} ${level} ${short_file}:${line}"

// ParseLevel maps a config level name to a gommon level.
func ParseLevel(level string) (log.Lvl, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return log.DEBUG, nil
	case "INFO", "":
		return log.INFO, nil
	case "WARN":
		return log.WARN, nil
	case "ERROR":
		return log.ERROR, nil
	case "OFF":
		return log.OFF, nil
	}
	return log.INFO, fmt.Errorf("%s: invalid log level", level)
}

// Setup configures the package-level gommon logger: level, header and
// output. With cfg.File set, output goes to stderr and to a rotated file.
// The returned closer releases the file and must be called on exit.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	w, closer, err := Writer(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}

	log.SetLevel(lvl)
	log.SetHeader(header)
	log.SetOutput(w)
	return closer, nil
}

// Writer builds the log sink for cfg on top of console.
func Writer(cfg config.LogConfig, console io.Writer) (io.Writer, io.Closer, error) {
	if cfg.File == "" {
		return console, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return io.MultiWriter(console, lj), lj, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
