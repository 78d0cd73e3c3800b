package shell

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (w *WebView) setupMiddlewares() {
	w.router.Use(gin.Recovery())
	w.router.Use(w.loggerMiddleware())
}

func (w *WebView) setupRoutes() {
	viewer := w.router.Group("/_viewer")
	{
		viewer.GET("/status", w.status)
		viewer.POST("/reload", w.reload)
	}

	w.router.NoRoute(w.page)
}

func (w *WebView) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"loaded":      w.loaded.Load(),
		"target":      w.target.String(),
		"page_errors": w.pageErrors.Load(),
		"settings":    w.cfg.Settings,
		"timestamp":   time.Now().UTC(),
	})
}

func (w *WebView) reload(c *gin.Context) {
	w.mu.RLock()
	onReload := w.onReload
	w.mu.RUnlock()

	if onReload == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "unavailable",
			"message": "reload is not wired",
		})
		return
	}

	onReload()
	c.JSON(http.StatusAccepted, gin.H{"status": "reloading"})
}

func (w *WebView) page(c *gin.Context) {
	if !w.loaded.Load() {
		c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", []byte(placeholderPage))
		return
	}

	w.proxy.ServeHTTP(c.Writer, c.Request)
}

func (w *WebView) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		statusCode := c.Writer.Status()
		log := w.logger.Debug
		if statusCode >= 500 {
			log = w.logger.Warn
		}

		log("HTTP request",
			"status", statusCode,
			"method", c.Request.Method,
			"path", path,
			"latency", time.Since(start),
		)
	}
}

// Listen binds the viewer address so PublicURL is known before Serve runs.
func (w *WebView) Listen() error {
	ln, err := net.Listen("tcp", w.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", w.cfg.ListenAddr, err)
	}

	w.mu.Lock()
	w.listener = ln
	w.server = &http.Server{
		Handler:           w.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	w.mu.Unlock()

	w.logger.Info("Viewer listening", "address", ln.Addr().String())
	return nil
}

func (w *WebView) PublicURL() string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.listener == nil {
		return ""
	}
	return "http://" + w.listener.Addr().String()
}

func (w *WebView) Serve() error {
	w.mu.RLock()
	server, ln := w.server, w.listener
	w.mu.RUnlock()

	if server == nil {
		return errors.New("viewer is not listening")
	}

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("viewer server failed: %w", err)
	}
	return nil
}

func (w *WebView) Shutdown(ctx context.Context) error {
	w.mu.RLock()
	server, ln := w.server, w.listener
	w.mu.RUnlock()

	if server == nil {
		return nil
	}

	err := server.Shutdown(ctx)
	// Shutdown only closes listeners that Serve was called with.
	_ = ln.Close()
	return err
}
