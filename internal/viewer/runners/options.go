package runner

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type Option func(*HTTPProber)

// SleepFunc pauses for d or returns early with ctx.Err().
type SleepFunc func(ctx context.Context, d time.Duration) error

func WithTarget(target string) Option {
	return func(p *HTTPProber) {
		p.target = target
	}
}

func WithClient(client *http.Client) Option {
	return func(p *HTTPProber) {
		p.client = client
	}
}

func WithSleep(sleep SleepFunc) Option {
	return func(p *HTTPProber) {
		p.sleep = sleep
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *HTTPProber) {
		p.logger = logger
	}
}

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
