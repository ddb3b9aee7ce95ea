// Package logging configures the process-wide structured logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates the application logger. Release mode emits JSON for log
// aggregation; anything else gets human-readable text with timestamps.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if os.Getenv("GIN_MODE") == "release" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	return log
}
