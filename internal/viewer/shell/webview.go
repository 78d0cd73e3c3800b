package shell

import (
	"CamView/internal/shared/constants"
	"CamView/internal/viewer/domain"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Dispatcher runs fn on the main loop. It returns false if fn was dropped.
type Dispatcher func(fn func()) bool

type WebViewConfig struct {
	ListenAddr  string
	OpenBrowser bool
	Mode        string
	Settings    domain.WidgetSettings
}

// WebView shows the camera page through a local reverse proxy. Until
// LoadTargetPage is called it serves a placeholder.
type WebView struct {
	cfg      WebViewConfig
	target   *url.URL
	prompter *Prompter
	launcher Launcher
	logger   *slog.Logger

	router *gin.Engine
	proxy  *httputil.ReverseProxy
	server *http.Server

	loaded     atomic.Bool
	opened     atomic.Bool
	pageErrors atomic.Int64

	mu       sync.RWMutex
	listener net.Listener
	dispatch Dispatcher
	onReload func()
}

func NewWebView(cfg WebViewConfig, target string, prompter *Prompter, launcher Launcher, logger *slog.Logger) (*WebView, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL: %w", err)
	}

	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	w := &WebView{
		cfg:      cfg,
		target:   targetURL,
		prompter: prompter,
		launcher: launcher,
		logger:   logger,
		router:   gin.New(),
	}
	w.proxy = w.newProxy()

	w.setupMiddlewares()
	w.setupRoutes()

	return w, nil
}

// SetDispatcher routes page-load error prompts through the main loop.
func (w *WebView) SetDispatcher(d Dispatcher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dispatch = d
}

func (w *WebView) OnReload(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

func (w *WebView) Handler() http.Handler {
	return w.router
}

func (w *WebView) Loaded() bool {
	return w.loaded.Load()
}

func (w *WebView) PageErrors() int64 {
	return w.pageErrors.Load()
}

func (w *WebView) LoadTargetPage(ctx context.Context) error {
	w.loaded.Store(true)
	w.logger.Info("loading camera page", "target", w.target.String())

	if !w.cfg.OpenBrowser || w.opened.Swap(true) {
		return nil
	}

	addr := w.PublicURL()
	if addr == "" {
		w.opened.Store(false)
		return fmt.Errorf("open viewer: %w", ErrNotLoaded)
	}
	if err := w.launcher.OpenURL(ctx, addr); err != nil {
		w.opened.Store(false)
		return err
	}
	return nil
}

func (w *WebView) PromptReconnect(ctx context.Context) error {
	w.loaded.Store(false)
	return w.prompter.PromptReconnect(ctx)
}

func (w *WebView) newProxy() *httputil.ReverseProxy {
	dialer := &net.Dialer{Timeout: constants.PageDialTimeout}

	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(w.target)
			r.Out.Host = w.target.Host
		},
		Transport: &http.Transport{
			Proxy:                 nil,
			DialContext:           dialer.DialContext,
			ResponseHeaderTimeout: constants.PageHeaderTimeout,
		},
		ModifyResponse: func(resp *http.Response) error {
			applySettings(resp.Header, w.cfg.Settings)
			return nil
		},
		ErrorHandler: w.pageLoadError,
	}
}

func (w *WebView) pageLoadError(rw http.ResponseWriter, req *http.Request, err error) {
	w.pageErrors.Add(1)
	w.logger.Warn("camera page failed to load",
		"path", req.URL.Path,
		"error", err,
	)

	if isNavigation(req) {
		w.promptFromWidget()
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusBadGateway)
	fmt.Fprintf(rw, errorPage, constants.ReconnectMessage)
}

func (w *WebView) promptFromWidget() {
	w.mu.RLock()
	dispatch := w.dispatch
	w.mu.RUnlock()

	prompt := func() {
		if err := w.prompter.PromptReconnect(context.Background()); err != nil {
			w.logger.Error("Failed to prompt reconnect", "error", err)
		}
	}

	if dispatch == nil {
		prompt()
		return
	}
	if !dispatch(prompt) {
		w.logger.Warn("reconnect prompt dropped, main loop stopped")
	}
}

// isNavigation reports whether req loads a top-level document rather than a
// sub-resource of the page.
func isNavigation(req *http.Request) bool {
	if req.Method != http.MethodGet {
		return false
	}
	if dest := req.Header.Get("Sec-Fetch-Dest"); dest != "" {
		return dest == "document"
	}
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}

func applySettings(h http.Header, s domain.WidgetSettings) {
	if !s.JavaScriptEnabled {
		h.Set("Content-Security-Policy", "script-src 'none'")
	}
	if s.MediaPlaybackRequiresUserGesture {
		h.Set("Permissions-Policy", "autoplay=()")
	}
}

const placeholderPage = `<!doctype html>
<html><head><meta charset="utf-8"><meta http-equiv="refresh" content="2">
<title>CamView</title></head>
<body style="margin:0;display:flex;height:100vh;align-items:center;justify-content:center;font-family:sans-serif">
<p>Connecting to camera&hellip;</p>
</body></html>`

const errorPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>CamView</title></head>
<body style="margin:0;display:flex;height:100vh;align-items:center;justify-content:center;font-family:sans-serif">
<p>%s</p>
</body></html>`
