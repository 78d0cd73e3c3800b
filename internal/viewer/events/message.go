package events

import (
	"CamView/internal/viewer/domain"
	"time"
)

type ProbeMessage struct {
	EventID     string             `json:"event_id"`
	Target      string             `json:"target"`
	Reachable   bool               `json:"reachable"`
	Cancelled   bool               `json:"cancelled"`
	Attempts    int                `json:"attempts"`
	LastFailure domain.FailureKind `json:"last_failure"`
	DurationMs  int64              `json:"duration_ms"`
	Timestamp   time.Time          `json:"timestamp"`
}

func NewProbeMessage(report *domain.ProbeReport) ProbeMessage {
	return ProbeMessage{
		EventID:     report.EventID,
		Target:      report.Target,
		Reachable:   report.Reachable(),
		Cancelled:   report.Cancelled(),
		Attempts:    len(report.Attempts),
		LastFailure: report.LastFailure(),
		DurationMs:  report.Duration().Milliseconds(),
		Timestamp:   report.FinishedAt.UTC(),
	}
}
