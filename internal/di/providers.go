package di

import (
	"fmt"

	"astroengine/internal/domain/repository"
	"astroengine/internal/ephemeris"
	"astroengine/internal/handler/api"
	internalrepo "astroengine/internal/repository"
	"astroengine/internal/usecase"
	"astroengine/pkg/cache"
	"astroengine/pkg/config"
	pkgkafka "astroengine/pkg/kafka"
	"astroengine/pkg/logger"
	"astroengine/pkg/metrics"
	"astroengine/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideCache selects the cache backend from config. Disabled caching
// still returns a tiny memory cache so usecases need no nil checks.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(1)), nil
	}
	switch cfg.Cache.Backend {
	case "redis":
		c, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.MinIdleConns, 0),
			cache.WithRedisDialTimeout(cfg.Cache.Redis.DialTimeout),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	case "memory":
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.Memory.MaxSize)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideEphemeris creates the analytic ephemeris source.
func ProvideEphemeris(cfg *config.Config) ephemeris.Source {
	return ephemeris.New(cfg.Ephemeris.MinYear, cfg.Ephemeris.MaxYear)
}

// ProvidePublisher creates the Kafka chart event publisher, or nil
// when events are disabled.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer), nil
}

// ProvideBirthChartUseCase creates the natal chart use case.
func ProvideBirthChartUseCase(
	source ephemeris.Source,
	cacheSvc cache.Service,
	m repository.Metrics,
	pub repository.Publisher,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.BirthChartUseCase {
	return usecase.NewBirthChartUseCase(source, cacheSvc, m, pub, l, cfg.Cache.TTL, cfg.Events.Topic)
}

// ProvideTransitUseCase creates the transit use case.
func ProvideTransitUseCase(
	source ephemeris.Source,
	cacheSvc cache.Service,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.TransitUseCase {
	return usecase.NewTransitUseCase(source, cacheSvc, m, l, cfg.Cache.TTL)
}

// ProvideProgressionUseCase creates the progression use case.
func ProvideProgressionUseCase(
	source ephemeris.Source,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.ProgressionUseCase {
	return usecase.NewProgressionUseCase(source, m, l)
}

// ProvideHandler creates the API handler with every route.
func ProvideHandler(
	l *logger.Logger,
	charts *usecase.BirthChartUseCase,
	transits *usecase.TransitUseCase,
	progressions *usecase.ProgressionUseCase,
	cfg *config.Config,
) *api.Handler {
	return api.NewHandler(l, charts, transits, progressions,
		cfg.Server.RequestTimeout, cfg.Forecast.Planets)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	h *api.Handler,
	cacheSvc cache.Service,
	pub repository.Publisher,
) *server.App {
	return server.New(cfg, l, h, cacheSvc, pub)
}
