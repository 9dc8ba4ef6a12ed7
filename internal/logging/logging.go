// Package logging builds the logrus logger used across cubeengine.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeengine/internal/config"
)

// New returns a logger configured from cfg. Output goes to cfg.File when
// set, otherwise to out. The returned closer releases the log file and is
// never nil.
func New(cfg config.LogConfig, out io.Writer) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	closer := func() error { return nil }

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, closer, fmt.Errorf("failed to parse log level: %w", err)
	}
	log.SetLevel(lvl)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, closer, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		return log, f.Close, nil
	}

	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)
	return log, closer, nil
}

// Discard returns a logger that drops everything. Used as the engine
// default so library users opt in to logging.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
