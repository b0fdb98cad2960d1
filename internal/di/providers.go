package di

import (
	"fmt"

	"StockCast/internal/domain/repository"
	"StockCast/internal/handler/api"
	"StockCast/internal/modelstore"
	internalrepo "StockCast/internal/repository"
	"StockCast/internal/services/marketdata"
	"StockCast/internal/usecase"
	"StockCast/pkg/cache"
	pkgch "StockCast/pkg/clickhouse"
	"StockCast/pkg/config"
	xhttp "StockCast/pkg/http"
	pkgkafka "StockCast/pkg/kafka"
	"StockCast/pkg/logger"
	"StockCast/pkg/metrics"
	"StockCast/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePriceCache selects the cache backend: Redis when configured,
// in-process memory otherwise.
func ProvidePriceCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		c, err := cache.NewRedisCache(
			cache.WithAddr(cfg.Cache.Redis.Addr),
			cache.WithPassword(cfg.Cache.Redis.Password),
			cache.WithDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvidePriceSource creates the Yahoo client wrapped with the TTL cache.
func ProvidePriceSource(cfg *config.Config, c cache.Service, log *logger.Logger) repository.PriceSource {
	yahoo := marketdata.NewYahooClient(cfg.MarketData.BaseURL, cfg.MarketData.Timeout, log)
	return marketdata.NewCachedSource(yahoo, c, cfg.MarketData.CacheTTL, log)
}

// ProvideModelStore creates the on-disk model store.
func ProvideModelStore(cfg *config.Config, log *logger.Logger) (repository.ModelStore, error) {
	store, err := modelstore.New(cfg.Models.Dir, log)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideRunHistory creates the ClickHouse sink, or nil when disabled.
func ProvideRunHistory(cfg *config.Config, log *logger.Logger) (repository.RunHistory, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.History.Host),
		pkgch.WithPort(cfg.History.Port),
		pkgch.WithDatabase(cfg.History.Database),
		pkgch.WithCredentials(cfg.History.User, cfg.History.Password),
		pkgch.WithDialTimeout(cfg.History.DialTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return internalrepo.NewClickHouseHistory(client, log)
}

// ProvidePublisher creates the Kafka publisher, or nil when disabled.
func ProvidePublisher(cfg *config.Config, log *logger.Logger) (repository.Publisher, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Events.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Events.Topic, log), nil
}

// ProvidePipeline wires the pipeline use case.
func ProvidePipeline(
	source repository.PriceSource,
	store repository.ModelStore,
	m repository.Metrics,
	history repository.RunHistory,
	events repository.Publisher,
	cfg *config.Config,
	log *logger.Logger,
) *usecase.Pipeline {
	return usecase.NewPipeline(source, store, m, history, events,
		usecase.PipelineConfig{HiddenUnits: cfg.Pipeline.HiddenUnits}, log)
}

// ProvidePretrainer wires the batch pretrainer.
func ProvidePretrainer(pipeline *usecase.Pipeline, store repository.ModelStore, log *logger.Logger) *usecase.Pretrainer {
	return usecase.NewPretrainer(pipeline, store, log)
}

// ProvideHandler creates the HTTP route handler.
func ProvideHandler(log *logger.Logger, pipeline *usecase.Pipeline, store repository.ModelStore) xhttp.Handler {
	return api.NewForecastEchoHandler(log, pipeline, store)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	history repository.RunHistory,
	events repository.Publisher,
	priceCache cache.Service,
) *server.App {
	return server.New(cfg, log, handler, history, events, priceCache)
}
