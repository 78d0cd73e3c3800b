package shell

import (
	"context"
	"sync"
)

type fakeLauncher struct {
	mu          sync.Mutex
	urls        []string
	settings    int
	urlErr      error
	settingsErr error
}

func (f *fakeLauncher) OpenURL(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return f.urlErr
}

func (f *fakeLauncher) OpenNetworkSettings(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings++
	return f.settingsErr
}

func (f *fakeLauncher) settingsOpened() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings
}

func (f *fakeLauncher) openedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}
