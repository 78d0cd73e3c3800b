package domain

import "time"

type FailureKind string

const (
	FailureNone           FailureKind = "none"
	FailureStatus         FailureKind = "status"
	FailureTimeout        FailureKind = "timeout"
	FailureRefused        FailureKind = "refused"
	FailureHostResolution FailureKind = "host_resolution"
	FailureTransport      FailureKind = "transport"
	FailureCancelled      FailureKind = "cancelled"
)

// AttemptResult is the outcome of a single probe request.
// StatusCode is 0 when no response was received.
type AttemptResult struct {
	Attempt    int           `json:"attempt"`
	StatusCode int           `json:"status_code"`
	Failure    FailureKind   `json:"failure"`
	Error      string        `json:"error,omitempty"`
	Latency    time.Duration `json:"latency"`
}

func NewSuccessAttempt(attempt, statusCode int, latency time.Duration) AttemptResult {
	return AttemptResult{
		Attempt:    attempt,
		StatusCode: statusCode,
		Failure:    FailureNone,
		Latency:    latency,
	}
}

func NewStatusFailure(attempt, statusCode int, latency time.Duration) AttemptResult {
	return AttemptResult{
		Attempt:    attempt,
		StatusCode: statusCode,
		Failure:    FailureStatus,
		Latency:    latency,
	}
}

func NewErrorAttempt(attempt int, kind FailureKind, err error, latency time.Duration) AttemptResult {
	result := AttemptResult{
		Attempt: attempt,
		Failure: kind,
		Latency: latency,
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func (a AttemptResult) OK() bool {
	return a.Failure == FailureNone
}

// IsSuccessStatus reports whether code is in the inclusive 2xx range.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}
