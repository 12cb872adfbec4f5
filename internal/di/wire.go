//go:build wireinject
// +build wireinject

package di

import (
	"SajuPulse/pkg/config"
	"SajuPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideReportCache,
		ProvideAstrology,

		// Repositories
		ProvidePeriodStore,
		ProvideReportPublisher,

		// Use cases
		ProvideEvaluator,
		ProvideCategoryReporter,
		ProvideTimingScanner,
		ProvideScanService,
		ProvideKafkaScanHandler,

		// Transport
		ProvideLimiter,
		ProvideEngineHandler,
		ProvideHTTPServer,

		ProvideApp,
	)
	return nil, nil, nil
}
