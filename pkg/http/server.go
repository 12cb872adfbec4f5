package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SajuPulse/pkg/http/middleware"
	applogger "SajuPulse/pkg/logger"
)

// Handler registers its routes on the shared echo instance.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

type ServerConfig struct {
	Host        string
	Port        int
	Timeouts    ServerTimeouts
	CORSOrigins []string
	MetricsPath string
	SlowRequest time.Duration
	Logger      *applogger.Logger
}

type ServerTimeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

type ServerOption func(*ServerConfig)

func WithHost(host string) ServerOption {
	return func(c *ServerConfig) { c.Host = host }
}

func WithPort(port int) ServerOption {
	return func(c *ServerConfig) { c.Port = port }
}

func WithTimeouts(read, write, shutdown time.Duration) ServerOption {
	return func(c *ServerConfig) { c.Timeouts = ServerTimeouts{Read: read, Write: write, Shutdown: shutdown} }
}

// WithCORSOrigins enables CORS for origins. None leaves CORS off.
func WithCORSOrigins(origins []string) ServerOption {
	return func(c *ServerConfig) { c.CORSOrigins = origins }
}

// WithMetricsPath mounts the Prometheus handler at path; "" leaves it off.
func WithMetricsPath(path string) ServerOption {
	return func(c *ServerConfig) { c.MetricsPath = path }
}

func WithLogger(l *applogger.Logger) ServerOption {
	return func(c *ServerConfig) { c.Logger = l }
}

// Server is the API server: echo with the service middleware stack and a
// JSON error handler that answers in the response envelope.
type Server struct {
	e   *echo.Echo
	cfg ServerConfig
}

func NewServer(handlers []Handler, opts ...ServerOption) *Server {
	cfg := ServerConfig{
		Host:        "0.0.0.0",
		Port:        8080,
		Timeouts:    ServerTimeouts{Read: 10 * time.Second, Write: time.Minute, Shutdown: 10 * time.Second},
		MetricsPath: "/metrics",
		SlowRequest: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = applogger.Nop()
	}

	e := echo.New()
	e.HideBanner, e.HidePort = true, true
	e.Server.ReadTimeout = cfg.Timeouts.Read
	e.Server.WriteTimeout = cfg.Timeouts.Write
	e.HTTPErrorHandler = errorHandler(cfg.Logger)

	e.Use(
		middleware.Recover(cfg.Logger),
		middleware.Metrics(cfg.Logger, cfg.SlowRequest),
		middleware.RequestLogging(cfg.Logger),
	)
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	for _, h := range handlers {
		if h != nil {
			h.RegisterRoutes(e)
		}
	}
	if cfg.MetricsPath != "" {
		e.GET(cfg.MetricsPath, echo.WrapHandler(promhttp.Handler()))
	}
	return &Server{e: e, cfg: cfg}
}

// errorHandler renders errors that reach echo: routing errors keep their
// status, AppErrors go through AppErrorResponse and anything else is a 500.
func errorHandler(l *applogger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			_ = respond(c, he.Code, []ValidationError{{Code: "ERR_HTTP_" + strconv.Itoa(he.Code), Message: fmt.Sprint(he.Message)}})
			return
		}
		var appErr *AppError
		if !errors.As(err, &appErr) {
			l.Error("unhandled http error", applogger.String("route", c.Path()), applogger.Error(err))
		}
		_ = AppErrorResponse(c, err)
	}
}

func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Start serves in the background. A listen failure arrives on the channel,
// which is closed when the server stops.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.cfg.Logger.Info("http server listening", applogger.String("addr", s.Addr()))
		if err := s.e.Start(s.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	return errCh
}

// Stop shuts down gracefully, bounded by ctx or the shutdown timeout when
// ctx has no deadline.
func (s *Server) Stop(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeouts.Shutdown)
		defer cancel()
	}
	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.cfg.Logger.Info("http server stopped")
	return nil
}

func (s *Server) Echo() *echo.Echo { return s.e }
