package observes

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryOptions configures the Sentry client
type SentryOptions struct {
	Dsn         string
	Name        string
	Release     string
	Environment string
	SampleRate  float64
}

// NewSentry registers the global Sentry client.
// A nil option or empty DSN leaves Sentry disabled and returns a no-op flush.
func NewSentry(opt *SentryOptions) (func(), error) {
	if opt == nil || opt.Dsn == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opt.Dsn,
		AttachStacktrace: true,
		TracesSampleRate: opt.SampleRate,
		ServerName:       opt.Name,
		Release:          opt.Release,
		Environment:      opt.Environment,
	})
	if err != nil {
		return nil, err
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureError reports err to Sentry when a client is bound
func CaptureError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.CaptureException(err)
}

// CapturePanic reports a recovered panic value to Sentry when a client is bound
func CapturePanic(ctx context.Context, recovered any) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.RecoverWithContext(ctx, recovered)
}
