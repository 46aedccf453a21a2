package logger

import (
	"bytes"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestInitLevel(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{" WARN ", log.WarnLevel},
		{"trace", log.TraceLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := Init(tt.level); got != tt.want {
				t.Errorf("Init(%q) = %v; want %v", tt.level, got, tt.want)
			}
			if log.GetLevel() != tt.want {
				t.Errorf("log.GetLevel() = %v; want %v", log.GetLevel(), tt.want)
			}
		})
	}
}

func TestFormatterFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(NewFormatter(true))

	logger.WithFields(log.Fields{
		"track":  "Bonobo - Cirrus",
		"method": "Resolve",
		"module": "playlist",
	}).Info("resolved")

	line := buf.String()
	module := strings.Index(line, "playlist")
	method := strings.Index(line, "Resolve")
	track := strings.Index(line, "Bonobo")
	if module < 0 || method < 0 || track < 0 {
		t.Fatalf("missing fields in %q", line)
	}
	if !(module < method && method < track) {
		t.Errorf("fields out of order in %q", line)
	}
	if !strings.Contains(line, "resolved") {
		t.Errorf("message missing in %q", line)
	}
}
