package di

import (
	"context"
	"fmt"
	"time"

	"SajuPulse/internal/domain/repository"
	domsvc "SajuPulse/internal/domain/service"
	"SajuPulse/internal/handler/api"
	internalrepo "SajuPulse/internal/repository"
	icache "SajuPulse/internal/service/cache"
	"SajuPulse/internal/service/ratelimit"
	"SajuPulse/internal/services/attribution"
	"SajuPulse/internal/services/ephemeris"
	"SajuPulse/internal/services/relations"
	"SajuPulse/internal/services/scoring"
	"SajuPulse/internal/services/temporal"
	"SajuPulse/internal/usecase"
	pkgch "SajuPulse/pkg/clickhouse"
	"SajuPulse/pkg/config"
	xhttp "SajuPulse/pkg/http"
	pkgkafka "SajuPulse/pkg/kafka"
	applogger "SajuPulse/pkg/logger"
	"SajuPulse/pkg/metrics"
	"SajuPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config, l *applogger.Logger) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	client, err := pkgch.NewClient(context.Background(),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithEndpoint(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database, cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithTimeouts(pkgch.TimeoutConfig{
			Dial:    cfg.ClickHouse.DialTimeout,
			Read:    cfg.ClickHouse.ReadTimeout,
			MaxExec: cfg.ClickHouse.MaxExecutionTime,
		}),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	return client, cleanup, nil
}

// ProvidePeriodStore creates the history store and ensures its table exists.
func ProvidePeriodStore(client *pkgch.Client, cfg *config.Config, l *applogger.Logger) (repository.PeriodStore, error) {
	if client == nil {
		return nil, nil
	}
	store, err := internalrepo.NewClickHousePeriodStore(client.DB(), cfg.ClickHouse.Table, l)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers...),
		pkgkafka.WithDelivery(cfg.Kafka.RequiredAcks, cfg.Kafka.Producer.MaxAttempts, cfg.Kafka.Compression),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, int64(cfg.Kafka.Producer.BatchBytes), cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	cleanup := func() {
		if err := producer.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return producer, cleanup, nil
}

// ProvideReportPublisher publishes completed reports when Kafka is enabled.
func ProvideReportPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.ReportPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.ReportsTopic)
}

// ProvideReportCache uses Redis when enabled and reachable, the in-process
// TTL cache otherwise.
func ProvideReportCache(cfg *config.Config, l *applogger.Logger) (repository.ReportCache, func()) {
	if cfg.Cache.Redis.Enabled {
		rc := icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := rc.Ping(ctx)
		if err == nil {
			return icache.NewJSONCache(rc, "sajupulse", cfg.Cache.TTL), func() { _ = rc.Close() }
		}
		l.Warn("redis unavailable, using in-memory cache", applogger.String("addr", cfg.Cache.Redis.Addr), applogger.Error(err))
		_ = rc.Close()
	}
	return icache.NewJSONCache(icache.NewTTLCache(icache.WithMaxEntries(cfg.Cache.MaxEntries)), "sajupulse", cfg.Cache.TTL), func() {}
}

// ProvideAstrology creates the ephemeris client. With no URL configured it
// returns empty snapshots and scoring stays Saju-only.
func ProvideAstrology(cfg *config.Config) domsvc.AstrologyProvider {
	return ephemeris.New(cfg.Ephemeris.URL, cfg.Ephemeris.Timeout, cfg.Ephemeris.Attempts)
}

func ProvideEvaluator(astro domsvc.AstrologyProvider, l *applogger.Logger) *usecase.Evaluator {
	return usecase.NewEvaluator(temporal.Calculator{}, scoring.Scorer{}, astro, l)
}

func ProvideCategoryReporter(eval *usecase.Evaluator) *usecase.CategoryReporter {
	return usecase.NewCategoryReporter(eval, relations.Detector{}, attribution.Analyzer{})
}

func ProvideTimingScanner(cfg *config.Config, astro domsvc.AstrologyProvider, m repository.Metrics, l *applogger.Logger) *usecase.TimingScanner {
	return usecase.NewTimingScanner(temporal.Calculator{}, scoring.Scorer{},
		usecase.WithAstrology(astro),
		usecase.WithScanWorkers(cfg.Engine.ScanWorkers),
		usecase.WithMaxMonths(cfg.Engine.MaxMonths),
		usecase.WithScanTimeout(cfg.Engine.ScanTimeout),
		usecase.WithDefaultThresholds(cfg.Engine.OptimalThreshold, cfg.Engine.AvoidThreshold),
		usecase.WithScannerMetrics(m),
		usecase.WithScannerLogger(l.With(applogger.String("component", "scanner"))),
	)
}

func ProvideScanService(scanner *usecase.TimingScanner, store repository.PeriodStore, pub repository.ReportPublisher,
	m repository.Metrics, l *applogger.Logger,
) *usecase.ScanService {
	return usecase.NewScanService(scanner, store, pub, m, l)
}

func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

func ProvideEngineHandler(l *applogger.Logger, eval *usecase.Evaluator, reporter *usecase.CategoryReporter,
	scans *usecase.ScanService, cache repository.ReportCache, limiter *ratelimit.Limiter,
) *api.EngineHandler {
	return api.NewEngineHandler(l, eval, reporter, scans, cache, limiter)
}

// ProvideHTTPServer creates the echo server with every API handler registered.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, h *api.EngineHandler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer([]xhttp.Handler{h},
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORSOrigins(cfg.Server.CORSOrigins),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML, or nil
// when Kafka is disabled.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.NewHookChain(pkgkafka.TraceHook(), pkgkafka.LoggingHook(l)))
	return consumer, nil
}

// ProvideKafkaScanHandler handles the scan requests topic.
func ProvideKafkaScanHandler(cfg *config.Config, scans *usecase.ScanService, m repository.Metrics, l *applogger.Logger) *usecase.KafkaScanHandler {
	return usecase.NewKafkaScanHandler(cfg.Kafka.RequestsTopic, scans, m, l)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaScanHandler,
	limiter *ratelimit.Limiter,
) *server.App {
	return server.New(cfg, l, srv, consumer, kh, limiter)
}
