package runner

import (
	"CamView/internal/viewer/domain"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSleep struct {
	mu     sync.Mutex
	pauses []time.Duration
}

func (r *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pauses = append(r.pauses, d)
	return ctx.Err()
}

func (r *recordingSleep) total() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum time.Duration
	for _, d := range r.pauses {
		sum += d
	}
	return sum
}

// sequenceServer answers the n-th request with codes[n].
func sequenceServer(t *testing.T, codes ...int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(hits.Add(1)) - 1
		code := http.StatusInternalServerError
		if n < len(codes) {
			code = codes[n]
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func closedAddress(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return "http://" + addr
}

func TestProbeStopsAtFirstSuccess(t *testing.T) {
	srv, hits := sequenceServer(t, http.StatusOK, http.StatusOK, http.StatusOK)
	sleeper := &recordingSleep{}

	prober := NewHTTPProber(WithTarget(srv.URL), WithSleep(sleeper.sleep))
	report := prober.Probe(context.Background(), "event-1")

	assert.True(t, report.Reachable())
	assert.EqualValues(t, 1, hits.Load())
	assert.Len(t, report.Attempts, 1)
	assert.Empty(t, sleeper.pauses)
	assert.Equal(t, "event-1", report.EventID)
	assert.False(t, report.FinishedAt.IsZero())
}

func TestProbeSuccessSequences(t *testing.T) {
	const ok, bad = http.StatusOK, http.StatusServiceUnavailable

	tests := []struct {
		name       string
		codes      []int
		reachable  bool
		wantHits   int32
		wantPauses int
	}{
		{"zero successes", []int{bad, bad, bad}, false, 3, 2},
		{"success on third", []int{bad, bad, ok}, true, 3, 2},
		{"success on second", []int{bad, ok, bad}, true, 2, 1},
		{"two successes", []int{bad, ok, ok}, true, 2, 1},
		{"three successes", []int{ok, ok, ok}, true, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := sequenceServer(t, tt.codes...)
			sleeper := &recordingSleep{}

			report := NewHTTPProber(WithTarget(srv.URL), WithSleep(sleeper.sleep)).
				Probe(context.Background(), "event")

			assert.Equal(t, tt.reachable, report.Reachable())
			assert.Equal(t, tt.wantHits, hits.Load())
			assert.Len(t, sleeper.pauses, tt.wantPauses)
		})
	}
}

func TestProbeStatusCodes(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusOK, true},
		{http.StatusNoContent, true},
		{299, true},
		{http.StatusMultipleChoices, false},
		{http.StatusNotFound, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.code), func(t *testing.T) {
			srv, _ := sequenceServer(t, tt.code, tt.code, tt.code)
			sleeper := &recordingSleep{}

			report := NewHTTPProber(WithTarget(srv.URL), WithSleep(sleeper.sleep)).
				Probe(context.Background(), "event")

			assert.Equal(t, tt.want, report.Reachable())
			if !tt.want {
				require.Len(t, report.Attempts, 3)
				assert.Equal(t, domain.FailureStatus, report.Attempts[0].Failure)
				assert.Equal(t, tt.code, report.Attempts[0].StatusCode)
			}
		})
	}
}

func TestProbeUnreachablePausesTwice(t *testing.T) {
	sleeper := &recordingSleep{}

	report := NewHTTPProber(WithTarget(closedAddress(t)), WithSleep(sleeper.sleep)).
		Probe(context.Background(), "event")

	assert.False(t, report.Reachable())
	require.Len(t, report.Attempts, 3)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, sleeper.pauses)
	assert.Equal(t, time.Second, sleeper.total())

	for _, attempt := range report.Attempts {
		assert.Equal(t, domain.FailureRefused, attempt.Failure)
		assert.Zero(t, attempt.StatusCode)
		assert.NotEmpty(t, attempt.Error)
	}
}

func TestProbeErrorMatchesStatusFailure(t *testing.T) {
	srv, _ := sequenceServer(t, http.StatusNotFound, http.StatusNotFound, http.StatusNotFound)

	byStatus := NewHTTPProber(WithTarget(srv.URL), WithSleep((&recordingSleep{}).sleep)).
		Probe(context.Background(), "status")
	byError := NewHTTPProber(WithTarget(closedAddress(t)), WithSleep((&recordingSleep{}).sleep)).
		Probe(context.Background(), "error")

	assert.Equal(t, byStatus.Reachable(), byError.Reachable())
	assert.Equal(t, len(byStatus.Attempts), len(byError.Attempts))
}

func TestProbeCancelledDuringPause(t *testing.T) {
	srv, hits := sequenceServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	cancelling := func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	report := NewHTTPProber(WithTarget(srv.URL), WithSleep(cancelling)).Probe(ctx, "event")

	assert.False(t, report.Reachable())
	assert.True(t, report.Cancelled())
	assert.EqualValues(t, 1, hits.Load())
	assert.Len(t, report.Attempts, 1)
}

func TestProbeCancelledDuringRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
		<-r.Context().Done()
	}))
	defer srv.Close()

	report := NewHTTPProber(WithTarget(srv.URL), WithSleep((&recordingSleep{}).sleep)).Probe(ctx, "event")

	assert.True(t, report.Cancelled())
	require.Len(t, report.Attempts, 1)
	assert.Equal(t, domain.FailureCancelled, report.Attempts[0].Failure)
}

func TestProbeIgnoresStalledBody(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	done := make(chan *domain.ProbeReport, 1)
	go func() {
		done <- NewHTTPProber(WithTarget(srv.URL)).Probe(context.Background(), "event")
	}()

	select {
	case report := <-done:
		assert.True(t, report.Reachable())
		assert.Len(t, report.Attempts, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("Probe blocked on a response body that never completes")
	}
}

func TestProbeReadTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := &http.Client{Transport: &http.Transport{ResponseHeaderTimeout: 50 * time.Millisecond}}
	report := NewHTTPProber(
		WithTarget(srv.URL),
		WithClient(client),
		WithSleep((&recordingSleep{}).sleep),
	).Probe(context.Background(), "event")

	assert.False(t, report.Reachable())
	require.Len(t, report.Attempts, 3)
	assert.Equal(t, domain.FailureTimeout, report.Attempts[0].Failure)
}

func TestClassifyError(t *testing.T) {
	ctx := context.Background()
	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	refused := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want domain.FailureKind
	}{
		{"deadline", ctx, context.DeadlineExceeded, domain.FailureTimeout},
		{"cancelled", cancelled, errors.New("request aborted"), domain.FailureCancelled},
		{"dns", ctx, &url.Error{Op: "Get", URL: "http://camera", Err: &net.DNSError{Err: "no such host", Name: "camera"}}, domain.FailureHostResolution},
		{"refused", ctx, &url.Error{Op: "Get", URL: "http://camera", Err: refused}, domain.FailureRefused},
		{"other", ctx, errors.New("malformed HTTP response"), domain.FailureTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyError(tt.ctx, tt.err))
		})
	}
}

func TestNewHTTPProberDefaults(t *testing.T) {
	prober := NewHTTPProber()

	assert.Equal(t, "http://192.168.4.1", prober.Target())
	assert.Equal(t, 3, prober.attempts)
	assert.Equal(t, 500*time.Millisecond, prober.retryDelay)

	transport, ok := prober.client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, transport.ResponseHeaderTimeout)
}

func TestContextSleep(t *testing.T) {
	assert.NoError(t, contextSleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, contextSleep(ctx, time.Hour), context.Canceled)
}
