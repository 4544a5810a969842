package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ParseLevel converts textual levels into logrus levels, defaulting to info.
func ParseLevel(raw string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// New builds a logger writing to w (stdout when nil). Format is "json" or
// anything else for text.
func New(w io.Writer, level, format string) *log.Logger {
	if w == nil {
		w = os.Stdout
	}
	logger := log.New()
	logger.SetOutput(w)
	logger.SetLevel(ParseLevel(level))
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// Component returns an entry tagged with the component name
func Component(logger *log.Logger, name string) *log.Entry {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return logger.WithField("component", name)
}
