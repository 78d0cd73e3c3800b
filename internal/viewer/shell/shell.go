package shell

import "context"

// Shell is the presentation surface the probe decision is applied to.
// Methods must be called from the main loop goroutine.
type Shell interface {
	LoadTargetPage(ctx context.Context) error
	PromptReconnect(ctx context.Context) error
}
