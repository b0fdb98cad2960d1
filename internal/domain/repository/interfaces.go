package repository

import (
	"context"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/internal/forecast"
)

// PriceSource fetches daily closes for a symbol over [start, end].
type PriceSource interface {
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error)
}

// ModelStore persists trained artifacts keyed by symbol.
type ModelStore interface {
	Exists(symbol string) bool
	Load(symbol string) (*forecast.Artifact, error) // nil, nil when absent
	Save(art *forecast.Artifact) (string, error)    // returns the stored path
	Delete(symbol string) (bool, error)
	List() ([]models.ModelInfo, error)
	Path(symbol string) string
}

// RunHistory records completed pipeline runs for later analysis.
type RunHistory interface {
	Insert(ctx context.Context, rec *models.RunRecord) error
	Close() error
}

// Publisher emits a completed-run event to downstream consumers.
type Publisher interface {
	PublishResult(ctx context.Context, res *models.PipelineResult) error
	Close() error
}

// Metrics is the instrumentation surface used across the pipeline.
type Metrics interface {
	RecordTrainingDuration(symbol string, seconds float64)
	RecordModelCache(hit bool)
	RecordRMSE(symbol string, rmse float64)
	RecordForecast(symbol string)
	RecordError(kind string)
}
