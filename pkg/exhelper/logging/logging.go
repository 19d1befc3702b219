// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Config selects the level and output format.
type Config struct {
	Level  string
	Format string
	// Output defaults to stderr so command results on stdout stay parseable.
	Output io.Writer
}

var (
	once     sync.Once
	setupErr error
)

// Setup applies cfg to the standard logger. Only the first call has any
// effect; later calls return the first call's result.
func Setup(cfg Config) error {
	once.Do(func() {
		setupErr = configure(logrus.StandardLogger(), cfg)
	})
	return setupErr
}

func configure(l *logrus.Logger, cfg Config) error {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = parsed
	}

	var formatter logrus.Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	l.SetLevel(level)
	l.SetFormatter(formatter)
	l.SetOutput(out)
	return nil
}
