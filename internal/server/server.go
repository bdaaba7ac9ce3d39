// Package server runs the HTTP server for the example service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/ncobase/example-api/biz/example"
	"github.com/ncobase/example-api/config"
	"github.com/ncobase/example-api/data"
	"github.com/ncobase/example-api/logging/logger"
	"github.com/ncobase/example-api/net/resp"
)

// ProviderSet is the wire provider set for the server package
var ProviderSet = wire.NewSet(New)

type Server struct {
	config *config.Config
	logger *logger.Logger
	data   *data.Data
	module *example.Module
	engine *gin.Engine
}

func New(cfg *config.Config, l *logger.Logger, d *data.Data, m *example.Module) (*Server, error) {
	if cfg == nil || cfg.Server == nil {
		return nil, fmt.Errorf("server config is nil")
	}
	if m == nil {
		return nil, fmt.Errorf("example module is nil")
	}
	if l == nil {
		l = logger.StdLogger()
	}

	s := &Server{config: cfg, logger: l, data: d, module: m}
	s.engine = s.setupRouter()
	return s, nil
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRouter() *gin.Engine {
	switch {
	case s.config.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case s.config.IsTest():
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(s.recoveryMiddleware())
	r.Use(corsMiddleware(s.config.Server.Cors))
	r.Use(traceMiddleware())
	r.Use(s.loggerMiddleware())

	r.GET("/health", s.handleHealth)

	api := r.Group(prefix(s.config.Server.Prefix))
	s.module.RegisterRoutes(api)

	r.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound(fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path)))
	})

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx := c.Request.Context()
	if err := errors.Join(s.data.Ping(ctx), s.module.Ping(ctx)); err != nil {
		s.logger.Warn(ctx, "Health check failed", "error", err)
		resp.Fail(c.Writer, resp.ServiceUnavailable("unhealthy"))
		return
	}
	resp.Success(c.Writer, map[string]string{"status": "healthy"})
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	sc := s.config.Server
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  sc.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof(context.Background(), "%s server is LIVE on port: %d", s.config.AppName, port(ln.Addr(), sc.Port))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "Shutting down server...")

	timeout := sc.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error(context.Background(), "Server forced to shutdown", "error", err)
		return err
	}

	s.logger.Info(context.Background(), "Server exited")
	return <-errCh
}

func prefix(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func port(addr net.Addr, fallback int) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return fallback
}
