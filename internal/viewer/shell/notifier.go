package shell

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

type Notifier interface {
	Notify(ctx context.Context, message string)
}

// ConsoleNotifier prints a transient message to the attached terminal.
type ConsoleNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

func NewConsoleNotifier(out io.Writer, logger *slog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{
		out:    out,
		logger: logger,
	}
}

func (n *ConsoleNotifier) Notify(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.logger.Warn(message)
	if n.out != nil {
		fmt.Fprintf(n.out, "\n  %s\n\n", message)
	}
}
