package runner

import (
	"CamView/internal/shared/constants"
	"CamView/internal/viewer/domain"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"
)

type HTTPProber struct {
	client     *http.Client
	target     string
	attempts   int
	retryDelay time.Duration
	sleep      SleepFunc
	logger     *slog.Logger
}

func NewHTTPProber(opts ...Option) *HTTPProber {
	p := &HTTPProber{
		client:     newProbeClient(),
		target:     constants.CameraURL,
		attempts:   constants.ProbeMaxAttempts,
		retryDelay: constants.ProbeRetryDelay,
		sleep:      contextSleep,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func newProbeClient() *http.Client {
	dialer := &net.Dialer{
		Timeout: constants.ProbeConnectTimeout,
	}

	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 nil,
			DialContext:           dialer.DialContext,
			ResponseHeaderTimeout: constants.ProbeReadTimeout,
			DisableKeepAlives:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

func (p *HTTPProber) Target() string {
	return p.target
}

// Probe runs up to p.attempts sequential requests and stops at the first
// 2xx answer. Failed attempts are followed by a pause unless they were last.
func (p *HTTPProber) Probe(ctx context.Context, eventID string) *domain.ProbeReport {
	report := domain.NewProbeReport(eventID, p.target)
	defer report.Finish()

	for i := 1; i <= p.attempts; i++ {
		result := p.attempt(ctx, i)
		report.Add(result)

		p.logger.Debug("probe attempt finished",
			"event_id", eventID,
			"attempt", i,
			"status_code", result.StatusCode,
			"failure", result.Failure,
			"latency_ms", result.Latency.Milliseconds(),
		)

		if result.OK() {
			break
		}

		if result.Failure == domain.FailureCancelled {
			report.MarkCancelled()
			break
		}

		if i == p.attempts {
			break
		}

		if err := p.sleep(ctx, p.retryDelay); err != nil {
			report.MarkCancelled()
			break
		}
	}

	return report
}

func (p *HTTPProber) attempt(ctx context.Context, n int) domain.AttemptResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target, nil)
	if err != nil {
		return domain.NewErrorAttempt(n, domain.FailureTransport, fmt.Errorf("failed to create request: %w", err), 0)
	}
	req.Header.Set("User-Agent", "CamView/1.0")

	start := time.Now()
	resp, err := p.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		return domain.NewErrorAttempt(n, classifyError(ctx, err), err, latency)
	}
	// Only the status line matters; the body is never read.
	resp.Body.Close()

	if !domain.IsSuccessStatus(resp.StatusCode) {
		return domain.NewStatusFailure(n, resp.StatusCode, latency)
	}
	return domain.NewSuccessAttempt(n, resp.StatusCode, latency)
}

func classifyError(ctx context.Context, err error) domain.FailureKind {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return domain.FailureCancelled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.FailureTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.FailureTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.FailureHostResolution
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return domain.FailureRefused
	}

	return domain.FailureTransport
}
