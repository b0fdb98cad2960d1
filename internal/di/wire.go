//go:build wireinject
// +build wireinject

package di

import (
	"StockCast/internal/usecase"
	"StockCast/pkg/config"
	"StockCast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvidePriceCache,
		ProvidePriceSource,
		ProvideModelStore,
		ProvideRunHistory,
		ProvidePublisher,
		ProvidePipeline,
		ProvideHandler,
		ProvideApp,
	)
	return nil, nil
}

// InitializePretrainer wires the batch pretrainer for the CLI.
func InitializePretrainer(cfg *config.Config) (*usecase.Pretrainer, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvidePriceCache,
		ProvidePriceSource,
		ProvideModelStore,
		ProvideRunHistory,
		ProvidePublisher,
		ProvidePipeline,
		ProvidePretrainer,
	)
	return nil, nil
}
