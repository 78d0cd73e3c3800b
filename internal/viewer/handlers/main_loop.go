package handler

import (
	"context"
	"sync"
)

// MainLoop serialises UI work onto the goroutine that calls Run.
type MainLoop struct {
	tasks chan func()

	mu       sync.Mutex
	stopped  bool
	done     chan struct{}
	stopOnce sync.Once
}

func NewMainLoop(buffer int) *MainLoop {
	return &MainLoop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It returns false once the loop has stopped.
func (l *MainLoop) Post(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return false
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted tasks until ctx is done. Once it returned, the loop
// stays stopped and a later Run returns immediately.
func (l *MainLoop) Run(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	default:
	}
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

func (l *MainLoop) stop() {
	l.stopOnce.Do(func() {
		close(l.done)

		l.mu.Lock()
		l.stopped = true
		l.mu.Unlock()
	})
}
