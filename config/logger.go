package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logrus logger with the configured format and level.
// Unknown levels fall back to info.
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg != nil && cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level := logrus.InfoLevel
	if cfg != nil {
		if l, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			level = l
		}
	}
	log.SetLevel(level)
	return log
}
