package handler

import (
	"CamView/internal/shared/constants"
	"CamView/internal/viewer/domain"
	"CamView/internal/viewer/events"
	runner "CamView/internal/viewer/runners"
	"CamView/internal/viewer/shell"
	"context"
	"log/slog"
	"sync"
)

type probeTask struct {
	eventID string
	cancel  context.CancelFunc
}

// LifecycleHandler runs one reachability probe per resume event and applies
// the outcome to the shell on the main loop. A newer resume cancels the
// probe of an older one.
type LifecycleHandler struct {
	prober    runner.Prober
	loop      *MainLoop
	shell     shell.Shell
	publisher events.Publisher
	logger    *slog.Logger

	mu      sync.Mutex
	current *probeTask
	latest  *domain.ProbeReport
	wg      sync.WaitGroup
}

func NewLifecycleHandler(prober runner.Prober, loop *MainLoop, sh shell.Shell, publisher events.Publisher, logger *slog.Logger) *LifecycleHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &LifecycleHandler{
		prober:    prober,
		loop:      loop,
		shell:     sh,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *LifecycleHandler) OnResume(ctx context.Context, event domain.ResumeEvent) {
	taskCtx, cancel := context.WithCancel(ctx)
	task := &probeTask{eventID: event.ID, cancel: cancel}

	h.mu.Lock()
	if h.current != nil {
		h.logger.Debug("cancelling superseded probe", "event_id", h.current.eventID)
		h.current.cancel()
	}
	h.current = task
	h.wg.Add(1)
	h.mu.Unlock()

	h.logger.Info("Resume received", "event_id", event.ID, "source", event.Source)

	go func() {
		defer h.wg.Done()
		defer cancel()
		h.run(taskCtx, task)
	}()
}

func (h *LifecycleHandler) OnPause() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil {
		h.current.cancel()
		h.current = nil
	}
}

// Wait blocks until every started probe goroutine returned.
func (h *LifecycleHandler) Wait() {
	h.wg.Wait()
}

func (h *LifecycleHandler) Latest() (domain.ProbeReport, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.latest == nil {
		return domain.ProbeReport{}, false
	}
	return *h.latest, true
}

func (h *LifecycleHandler) run(ctx context.Context, task *probeTask) {
	report := h.prober.Probe(ctx, task.eventID)

	h.logger.Info("Probe finished",
		"event_id", task.eventID,
		"reachable", report.Reachable(),
		"attempts", len(report.Attempts),
		"last_failure", report.LastFailure(),
		"duration_ms", report.Duration().Milliseconds(),
	)

	defer h.publish(ctx, report)

	if ctx.Err() != nil || report.Cancelled() {
		h.logger.Debug("probe cancelled, skipping dispatch", "event_id", task.eventID)
		return
	}

	sh := h.shell
	uiCtx := context.WithoutCancel(ctx)
	posted := h.loop.Post(func() {
		h.complete(uiCtx, task, report, sh)
	})
	if !posted {
		h.logger.Warn("main loop stopped, probe result dropped", "event_id", task.eventID)
	}
}

// publish hands the report to the publisher without holding up the decision.
func (h *LifecycleHandler) publish(ctx context.Context, report *domain.ProbeReport) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.PublishTimeout)
		defer cancel()

		if err := h.publisher.PublishReport(pubCtx, report); err != nil {
			h.logger.Warn("Failed to publish probe report", "event_id", report.EventID, "error", err)
		}
	}()
}

// complete runs on the main loop and owns sh for its duration.
func (h *LifecycleHandler) complete(ctx context.Context, task *probeTask, report *domain.ProbeReport, sh shell.Shell) {
	h.mu.Lock()
	if h.current != task {
		h.mu.Unlock()
		h.logger.Debug("stale probe result ignored", "event_id", task.eventID)
		return
	}
	h.current = nil
	h.latest = report
	h.mu.Unlock()

	if report.Reachable() {
		if err := sh.LoadTargetPage(ctx); err != nil {
			h.logger.Error("Failed to load camera page", "error", err)
		}
		return
	}

	if err := sh.PromptReconnect(ctx); err != nil {
		h.logger.Error("Failed to prompt reconnect", "error", err)
	}
}
