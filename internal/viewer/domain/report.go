package domain

import "time"

type ProbeReport struct {
	EventID    string          `json:"event_id"`
	Target     string          `json:"target"`
	Attempts   []AttemptResult `json:"attempts"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Aborted    bool            `json:"cancelled"`
}

func NewProbeReport(eventID, target string) *ProbeReport {
	return &ProbeReport{
		EventID:   eventID,
		Target:    target,
		Attempts:  make([]AttemptResult, 0, 3),
		StartedAt: time.Now(),
	}
}

func (r *ProbeReport) Add(attempt AttemptResult) {
	r.Attempts = append(r.Attempts, attempt)
}

func (r *ProbeReport) Finish() {
	r.FinishedAt = time.Now()
}

// Reachable collapses every attempt into the single go/no-go answer.
func (r *ProbeReport) Reachable() bool {
	for _, attempt := range r.Attempts {
		if attempt.OK() {
			return true
		}
	}
	return false
}

// MarkCancelled records that the sequence stopped early because its context
// was cancelled. No attempt is added.
func (r *ProbeReport) MarkCancelled() {
	r.Aborted = true
}

func (r *ProbeReport) Cancelled() bool {
	return r.Aborted
}

// LastFailure returns the failure kind of the final attempt, or FailureNone.
func (r *ProbeReport) LastFailure() FailureKind {
	if len(r.Attempts) == 0 {
		return FailureNone
	}
	return r.Attempts[len(r.Attempts)-1].Failure
}

func (r *ProbeReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
