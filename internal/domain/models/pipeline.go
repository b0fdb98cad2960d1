package models

import "time"

// ForecastResult is the recursive multi-step projection beyond the series end.
// Dates hold only business days (Mon-Fri), one per projected step.
type ForecastResult struct {
	Dates  []string  `json:"dates"`
	Prices []float64 `json:"prices"`
}

// PipelineResult is the full outcome of one end-to-end run for a symbol.
// Warnings collect non-fatal failures (model save, history sink, event
// publish) that did not stop the run.
type PipelineResult struct {
	Symbol    string          `json:"symbol"`
	Dates     []string        `json:"dates"`
	Predicted []float64       `json:"predicted"`
	Actual    []float64       `json:"actual"`
	RMSE      float64         `json:"rmse"`
	CacheHit  bool            `json:"cache_hit"`
	ModelPath string          `json:"model_path,omitempty"`
	Forecast  *ForecastResult `json:"forecast,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// RunRecord is the flattened row written to the run-history sink.
type RunRecord struct {
	Symbol    string
	RunAt     time.Time
	Start     time.Time
	End       time.Time
	Lookback  int
	Epochs    int
	RMSE      float64
	CacheHit  bool
	Horizon   int
	DurationS float64
}

// ModelInfo describes one cached model artifact on disk.
type ModelInfo struct {
	Symbol      string    `json:"symbol"`
	Lookback    int       `json:"lookback"`
	TrainedAt   time.Time `json:"trained_at"`
	EpochsRun   int       `json:"epochs_run"`
	BestValLoss float64   `json:"best_val_loss"`
	Path        string    `json:"path"`
	SizeBytes   int64     `json:"size_bytes"`
}
