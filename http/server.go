// Package http provides the local JSON API for browsing the formula catalog.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/formulary"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultAddr binds to loopback so bookmarks stay local to one user.
const DefaultAddr = "127.0.0.1:8080"

// DefaultShutdownTimeout bounds graceful shutdown after the context ends.
const DefaultShutdownTimeout = 5 * time.Second

// Default explain rate limit: one request per second with a small burst.
const (
	DefaultExplainRate  = rate.Limit(1)
	DefaultExplainBurst = 5
)

// RequestObserver records served requests.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Server serves the catalog, bookmarks and explain endpoints.
type Server struct {
	catalog   formulary.Catalog
	bookmarks formulary.BookmarkService
	explainer formulary.Explainer

	logger          *slog.Logger
	observer        RequestObserver
	metrics         http.Handler
	limiter         *rate.Limiter
	addr            string
	shutdownTimeout time.Duration

	engine *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address used by ListenAndServe.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithExplainer enables explanations. Without it the explain endpoint
// answers with formulary.DisabledExplanation.
func WithExplainer(e formulary.Explainer) Option {
	return func(s *Server) {
		s.explainer = e
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records every request on observer and exposes handler at
// /metrics.
func WithMetrics(observer RequestObserver, handler http.Handler) Option {
	return func(s *Server) {
		s.observer = observer
		s.metrics = handler
	}
}

// WithExplainRateLimit overrides the explain rate limit.
func WithExplainRateLimit(r rate.Limit, burst int) Option {
	return func(s *Server) {
		s.limiter = rate.NewLimiter(r, burst)
	}
}

// WithShutdownTimeout overrides DefaultShutdownTimeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// NewServer creates a Server and registers its routes.
func NewServer(catalog formulary.Catalog, bookmarks formulary.BookmarkService, opts ...Option) *Server {
	s := &Server{
		catalog:         catalog,
		bookmarks:       bookmarks,
		logger:          slog.New(slog.DiscardHandler),
		limiter:         rate.NewLimiter(DefaultExplainRate, DefaultExplainBurst),
		addr:            DefaultAddr,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.observe())
	s.registerRoutes()
	return s
}

// Handler returns the router for use with httptest or a custom server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe listens on the configured address and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// observe logs and records every request.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		d := time.Since(begin)
		status := c.Writer.Status()

		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", d,
		)
		if s.observer != nil {
			s.observer.ObserveRequest(c.Request.Method, c.FullPath(), status, d)
		}
	}
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	api.GET("/functions", s.handleListFunctions)
	api.GET("/functions/:name", s.handleGetFunction)
	api.GET("/categories", s.handleListCategories)
	api.GET("/guides", s.handleListGuides)
	api.GET("/guides/:id", s.handleGetGuide)
	api.GET("/bookmarks", s.handleListBookmarks)
	api.POST("/bookmarks/:name", s.handleToggleBookmark)
	api.POST("/explain", s.handleExplain)
	api.GET("/route", s.handleRoute)
	api.GET("/playground", s.handlePlayground)

	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics))
	}
}

// Error writes err as a JSON error response. Internal errors are logged and
// reported without detail.
func (s *Server) Error(c *gin.Context, err error) {
	code := formulary.ErrorCode(err)
	if code == formulary.EINTERNAL {
		s.logger.Error("http error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", err,
		)
	}
	c.JSON(ErrorStatusCode(code), gin.H{"error": formulary.ErrorMessage(err)})
}

var codes = map[string]int{
	formulary.ECONFLICT:       http.StatusConflict,
	formulary.EINVALID:        http.StatusBadRequest,
	formulary.ENOTFOUND:       http.StatusNotFound,
	formulary.ENOTIMPLEMENTED: http.StatusNotImplemented,
	formulary.EINTERNAL:       http.StatusInternalServerError,
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
