package sentryhelper

import (
	"context"
	"errors"
	"testing"

	sentry "github.com/getsentry/sentry-go"
)

func TestHubFromContextFallsBackToCurrentHub(t *testing.T) {
	if got := HubFromContext(nil); got != sentry.CurrentHub() {
		t.Error("nil context should return the current hub")
	}
	if got := HubFromContext(context.Background()); got != sentry.CurrentHub() {
		t.Error("empty context should return the current hub")
	}
}

func TestStartRequestTransactionIsolatesHub(t *testing.T) {
	ctx, transaction := StartRequestTransaction(context.Background(), "generate", map[string]string{"class_name": "Vinyasa"})
	defer transaction.Finish()

	hub := HubFromContext(ctx)
	if hub == sentry.CurrentHub() {
		t.Error("expected a cloned hub in the request context")
	}
	if transaction.Tags["class_name"] != "Vinyasa" {
		t.Errorf("tags = %v", transaction.Tags)
	}
	if transaction.Op != "generate" {
		t.Errorf("Op = %q; want generate", transaction.Op)
	}

	// no client configured, so these are no-ops that must not panic
	AddBreadcrumb(ctx, "test", "breadcrumb", nil)
	CaptureException(ctx, errors.New("boom"))
	CaptureMessage(ctx, "degraded")
}
