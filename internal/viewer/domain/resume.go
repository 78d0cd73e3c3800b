package domain

import (
	"CamView/pkg/uuidutil"
	"time"
)

type ResumeSource string

const (
	ResumeStartup ResumeSource = "startup"
	ResumeSignal  ResumeSource = "signal"
	ResumeReload  ResumeSource = "reload"
)

type ResumeEvent struct {
	ID     string       `json:"id"`
	Source ResumeSource `json:"source"`
	At     time.Time    `json:"at"`
}

func NewResumeEvent(source ResumeSource) ResumeEvent {
	return ResumeEvent{
		ID:     uuidutil.NewTimeOrdered(),
		Source: source,
		At:     time.Now(),
	}
}
