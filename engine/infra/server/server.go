// Package server exposes the tab registry over a read-only HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tabhost/tabhost/engine/diagnostic"
	"github.com/tabhost/tabhost/engine/registry"
	"github.com/tabhost/tabhost/pkg/logger"
)

// DiagnosticsSource supplies the diagnostics of the most recent load pass.
type DiagnosticsSource func() []diagnostic.Entry

// Config holds the listen address and timeouts.
type Config struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// Server serves registry lookups. All endpoints are read-only; registration
// happens exclusively through the extension loader.
type Server struct {
	config      Config
	registry    *registry.TabRegistry
	diagnostics DiagnosticsSource
}

// New creates a Server over the given registry. diagnostics may be nil.
func New(config Config, reg *registry.TabRegistry, diagnostics DiagnosticsSource) *Server {
	if diagnostics == nil {
		diagnostics = func() []diagnostic.Entry { return nil }
	}
	return &Server{
		config:      config,
		registry:    reg,
		diagnostics: diagnostics,
	}
}

// Routes builds the gin engine with all API routes attached.
func (s *Server) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v0")
	api.GET("/tabs", s.listTabs)
	api.GET("/tabs/:id", s.getTab)
	api.GET("/tabgroups", s.listGroups)
	api.GET("/diagnostics", s.listDiagnostics)
	return router
}

// Run serves the API until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	timeout := s.config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: timeout,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving dashboard tab API", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) listTabs(c *gin.Context) {
	if provider := c.Query("provider"); provider != "" {
		c.JSON(http.StatusOK, gin.H{"tabs": s.registry.TabsForProvider(provider)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tabs": s.registry.Tabs()})
}

func (s *Server) getTab(c *gin.Context) {
	id := c.Param("id")
	record, ok := s.registry.Get(id)
	if !ok {
		respondProblemWithCode(c, http.StatusNotFound, "tab_not_found",
			fmt.Sprintf("no dashboard tab registered under %q", id))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) listGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tabGroups": s.registry.Groups()})
}

func (s *Server) listDiagnostics(c *gin.Context) {
	entries := s.diagnostics()
	if entries == nil {
		entries = []diagnostic.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"diagnostics": entries})
}
