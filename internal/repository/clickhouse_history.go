package repository

import (
	"context"
	"fmt"

	"StockCast/internal/domain/models"
	"StockCast/pkg/clickhouse"
	"StockCast/pkg/logger"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS pipeline_runs (
    symbol      LowCardinality(String),
    run_at      DateTime64(3, 'UTC'),
    range_start Date,
    range_end   Date,
    lookback    UInt16,
    epochs      UInt16,
    rmse        Float64,
    cache_hit   UInt8,
    horizon     UInt16,
    duration_s  Float64
) ENGINE = MergeTree()
ORDER BY (symbol, run_at)
TTL toDateTime(run_at) + INTERVAL 180 DAY
`

// ClickHouseHistory persists one row per pipeline run.
type ClickHouseHistory struct {
	client *clickhouse.Client
	log    *logger.Logger
}

// NewClickHouseHistory creates the sink and ensures the table exists.
func NewClickHouseHistory(client *clickhouse.Client, log *logger.Logger) (*ClickHouseHistory, error) {
	h := &ClickHouseHistory{
		client: client,
		log:    log.With(logger.String("component", "run_history")),
	}
	if err := client.InitSchema(context.Background(), []string{runsSchema}); err != nil {
		return nil, fmt.Errorf("run history: %w", err)
	}
	return h, nil
}

// Insert writes one run record.
func (h *ClickHouseHistory) Insert(ctx context.Context, rec *models.RunRecord) error {
	cacheHit := uint8(0)
	if rec.CacheHit {
		cacheHit = 1
	}

	const q = `
INSERT INTO pipeline_runs
    (symbol, run_at, range_start, range_end, lookback, epochs, rmse, cache_hit, horizon, duration_s)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := h.client.DB().ExecContext(ctx, q,
		rec.Symbol, rec.RunAt, rec.Start, rec.End,
		uint16(rec.Lookback), uint16(rec.Epochs),
		rec.RMSE, cacheHit, uint16(rec.Horizon), rec.DurationS,
	); err != nil {
		return fmt.Errorf("run history insert: %w", err)
	}

	h.log.Debug("run recorded", logger.String("symbol", rec.Symbol))
	return nil
}

// Close releases the connection pool.
func (h *ClickHouseHistory) Close() error {
	return h.client.Close()
}
