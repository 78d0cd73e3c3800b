package runner

import (
	"CamView/internal/viewer/domain"
	"context"
)

type Prober interface {
	Probe(ctx context.Context, eventID string) *domain.ProbeReport
}
