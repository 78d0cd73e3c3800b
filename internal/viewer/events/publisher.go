package events

import (
	"CamView/internal/viewer/domain"
	"context"
)

// Publisher fans probe reports out to external observers. Reports are not
// stored.
type Publisher interface {
	PublishReport(ctx context.Context, report *domain.ProbeReport) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) PublishReport(ctx context.Context, report *domain.ProbeReport) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
