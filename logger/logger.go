package logger

import (
	"os"
	"strings"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
)

// NewFormatter keeps module and method at the front of every line.
func NewFormatter(noColors bool) *nested.Formatter {
	return &nested.Formatter{
		FieldsOrder:     []string{"module", "method"},
		TimestampFormat: time.RFC3339,
		NoColors:        noColors,
		TrimMessages:    true,
	}
}

// Init configures the global logrus logger. Unknown levels fall back to info.
func Init(level string) log.Level {
	parsed, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = log.InfoLevel
	}

	log.SetOutput(os.Stdout)
	log.SetFormatter(NewFormatter(os.Getenv("NO_COLOR") != ""))
	log.SetLevel(parsed)

	if err != nil && level != "" {
		log.Warnf("unknown LOG_LEVEL %q, using info", level)
	}
	return parsed
}
