package sentry

import (
	sentry "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"yogabeats/config"
)

// Init configures the global Sentry client. An empty DSN leaves Sentry
// disabled; spans and captures become no-ops.
func Init(cfg config.SentryConfig) {
	if cfg.DSN == "" {
		log.Info("SENTRY_DSN not set, error reporting disabled")
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Release:          cfg.Release,
		EnableTracing:    cfg.DSN != "",
		TracesSampleRate: 1.0,
	}); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
}

func GetSentryGin() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{Repanic: true})
}

func ReportError(err error) {
	sentry.CaptureException(err)
}
