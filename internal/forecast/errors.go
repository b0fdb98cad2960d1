package forecast

import "errors"

// Sentinel errors for the forecasting pipeline. Callers classify failures
// with errors.Is; context (symbol, stage) is attached by wrapping.
var (
	// ErrDataUnavailable means the source returned no rows for the symbol/range.
	ErrDataUnavailable = errors.New("no price data for symbol/range")

	// ErrInsufficientData means rows exist but not enough for the requested
	// lookback, or a chronological split produced an empty partition.
	ErrInsufficientData = errors.New("insufficient price data")

	// ErrDegenerateSeries means the series has zero variance and a min-max
	// scaler is undefined over it.
	ErrDegenerateSeries = errors.New("degenerate price series: zero variance")

	// ErrTraining means the underlying fit failed for a reason opaque to
	// the pipeline.
	ErrTraining = errors.New("model training failed")

	// ErrCacheIO means a model artifact could not be read or written.
	ErrCacheIO = errors.New("model cache i/o")
)
