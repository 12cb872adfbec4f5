package server

import (
	"context"
	"fmt"
	"time"

	"SajuPulse/internal/service/ratelimit"
	"SajuPulse/internal/usecase"
	"SajuPulse/pkg/config"
	xhttp "SajuPulse/pkg/http"
	pkgkafka "SajuPulse/pkg/kafka"
	applogger "SajuPulse/pkg/logger"
)

const limiterIdle = 10 * time.Minute

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	limiter    *ratelimit.Limiter
}

// New creates a new App instance with all dependencies. consumer may be nil.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaScanHandler,
	limiter *ratelimit.Limiter,
) *App {
	return &App{
		cfg:        cfg,
		log:        l,
		httpServer: httpServer,
		consumer:   consumer,
		kh:         kh,
		limiter:    limiter,
	}
}

// Run starts the application and blocks until ctx is cancelled or the HTTP
// server fails.
func (a *App) Run(ctx context.Context) error {
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		if err := a.consumer.Start(); err != nil {
			return fmt.Errorf("kafka consumer: %w", err)
		}
		a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	errCh := a.httpServer.Start()

	go a.pruneLimiter(ctx)

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			runErr = err
			a.log.Error("http server error", applogger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	a.shutdown(shutdownCtx)
	return runErr
}

// pruneLimiter periodically drops rate-limit buckets idle for limiterIdle.
func (a *App) pruneLimiter(ctx context.Context) {
	if a.limiter == nil {
		return
	}
	t := time.NewTicker(limiterIdle)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.limiter.Prune(limiterIdle); n > 0 {
				a.log.Debug("rate limiter pruned", applogger.Int("buckets", n))
			}
		}
	}
}

// shutdown stops the HTTP server first so no new scans start, then drains the
// consumer. Infrastructure clients are closed by the DI cleanup.
func (a *App) shutdown(ctx context.Context) {
	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}
	a.log.Info("shutdown complete")
}
