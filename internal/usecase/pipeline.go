package usecase

import (
	"context"
	"fmt"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/internal/domain/repository"
	"StockCast/internal/forecast"
	"StockCast/pkg/logger"
	"StockCast/pkg/util"
)

// minExtraPoints is how many points beyond the lookback a series must have
// before a run is worth attempting.
const minExtraPoints = 10

// RunParams are the knobs for one end-to-end run.
type RunParams struct {
	Symbol       string
	Start        time.Time
	End          time.Time
	Lookback     int
	Epochs       int
	BatchSize    int
	Horizon      int
	ForceRetrain bool
}

// PipelineConfig carries training defaults shared across runs.
type PipelineConfig struct {
	HiddenUnits int
}

// Pipeline runs fetch, scale, window, train-or-load, evaluate, forecast for
// one symbol. The history sink and event publisher are optional; a nil value
// disables that enrichment.
type Pipeline struct {
	source  repository.PriceSource
	store   repository.ModelStore
	metrics repository.Metrics
	history repository.RunHistory
	events  repository.Publisher
	cfg     PipelineConfig
	log     *logger.Logger
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(
	source repository.PriceSource,
	store repository.ModelStore,
	metrics repository.Metrics,
	history repository.RunHistory,
	events repository.Publisher,
	cfg PipelineConfig,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		source:  source,
		store:   store,
		metrics: metrics,
		history: history,
		events:  events,
		cfg:     cfg,
		log:     log.With(logger.String("component", "pipeline")),
	}
}

// Run executes the full pipeline for one symbol.
func (p *Pipeline) Run(ctx context.Context, params RunParams) (*models.PipelineResult, error) {
	started := time.Now()

	series, err := p.source.FetchDaily(ctx, params.Symbol, params.Start, params.End)
	if err != nil {
		p.metrics.RecordError("fetch")
		return nil, fmt.Errorf("pipeline %s: %w", params.Symbol, err)
	}

	if series.Len() < params.Lookback+minExtraPoints {
		p.metrics.RecordError("insufficient_data")
		return nil, fmt.Errorf("pipeline %s: %d points, need at least %d: %w",
			params.Symbol, series.Len(), params.Lookback+minExtraPoints, forecast.ErrInsufficientData)
	}

	closes := series.Closes()
	scaler, err := forecast.FitScaler(closes)
	if err != nil {
		p.metrics.RecordError("scaler")
		return nil, fmt.Errorf("pipeline %s: %w", params.Symbol, err)
	}
	normalized := scaler.Transform(closes)

	inputs, targets, err := forecast.MakeWindows(normalized, params.Lookback)
	if err != nil {
		p.metrics.RecordError("window")
		return nil, fmt.Errorf("pipeline %s: %w", params.Symbol, err)
	}
	split, err := forecast.ChronoSplit(inputs, targets, forecast.DefaultTrainFraction)
	if err != nil {
		p.metrics.RecordError("split")
		return nil, fmt.Errorf("pipeline %s: %w", params.Symbol, err)
	}

	result := &models.PipelineResult{Symbol: params.Symbol}

	art, cacheHit, warnings, err := p.loadOrTrain(params, split)
	result.Warnings = warnings
	if err != nil {
		p.metrics.RecordError("training")
		return nil, fmt.Errorf("pipeline %s: %w", params.Symbol, err)
	}
	result.CacheHit = cacheHit
	result.ModelPath = p.store.Path(params.Symbol)
	p.metrics.RecordModelCache(cacheHit)

	ev, err := forecast.Evaluate(art, split.EvalInputs, split.EvalTargets, scaler)
	if err != nil {
		p.metrics.RecordError("evaluate")
		return nil, fmt.Errorf("pipeline %s: %w", params.Symbol, err)
	}
	result.Predicted = ev.Predicted
	result.Actual = ev.Actual
	result.RMSE = ev.RMSE
	p.metrics.RecordRMSE(params.Symbol, ev.RMSE)

	// eval window j predicts the close at series position lookback+cut+j
	cut := len(split.TrainInputs)
	result.Dates = make([]string, len(split.EvalInputs))
	for j := range split.EvalInputs {
		result.Dates[j] = util.FormatDate(series.Points[params.Lookback+cut+j].Date)
	}

	if params.Horizon > 0 {
		tail := normalized[len(normalized)-params.Lookback:]
		prices, err := forecast.Forecast(art, tail, scaler, params.Horizon)
		if err != nil {
			p.log.Warn("forecast failed", logger.String("symbol", params.Symbol), logger.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("forecast failed: %v", err))
		} else {
			days := util.BusinessDays(series.LastDate(), params.Horizon)
			dates := make([]string, len(days))
			for i, d := range days {
				dates[i] = util.FormatDate(d)
			}
			result.Forecast = &models.ForecastResult{Dates: dates, Prices: prices}
			p.metrics.RecordForecast(params.Symbol)
		}
	}

	p.enrich(ctx, params, series, result, time.Since(started))

	p.log.Info("pipeline run complete",
		logger.String("symbol", params.Symbol),
		logger.Bool("cache_hit", cacheHit),
		logger.Float64("rmse", result.RMSE),
		logger.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// loadOrTrain resolves the model: cached artifact when allowed and usable,
// otherwise a fresh training run. Load and save problems never abort the run;
// they degrade to retraining or to a warning.
func (p *Pipeline) loadOrTrain(params RunParams, split *forecast.Split) (*forecast.Artifact, bool, []string, error) {
	var warnings []string

	if !params.ForceRetrain && p.store.Exists(params.Symbol) {
		art, err := p.store.Load(params.Symbol)
		switch {
		case err != nil:
			p.log.Warn("cached model unusable, retraining",
				logger.String("symbol", params.Symbol), logger.Error(err))
			warnings = append(warnings, fmt.Sprintf("cached model unusable: %v", err))
		case art != nil && art.Lookback != params.Lookback:
			p.log.Warn("cached model lookback mismatch, retraining",
				logger.String("symbol", params.Symbol),
				logger.Int("cached", art.Lookback),
				logger.Int("requested", params.Lookback))
			warnings = append(warnings, fmt.Sprintf(
				"cached model lookback %d does not match requested %d", art.Lookback, params.Lookback))
		case art != nil:
			return art, true, warnings, nil
		}
	}

	trainStart := time.Now()
	art, err := forecast.Train(params.Symbol, split, forecast.TrainConfig{
		Epochs:    params.Epochs,
		BatchSize: params.BatchSize,
		Hidden:    p.cfg.HiddenUnits,
	})
	if err != nil {
		p.log.Error("training failed", logger.String("symbol", params.Symbol), logger.Error(err))
		return nil, false, warnings, err
	}
	p.metrics.RecordTrainingDuration(params.Symbol, time.Since(trainStart).Seconds())

	if _, err := p.store.Save(art); err != nil {
		// the in-memory model is still good; persistence is best effort
		p.log.Warn("model save failed", logger.String("symbol", params.Symbol), logger.Error(err))
		warnings = append(warnings, fmt.Sprintf("model save failed: %v", err))
	}
	return art, false, warnings, nil
}

// enrich pushes the run into the optional history and event sinks.
func (p *Pipeline) enrich(ctx context.Context, params RunParams, series *models.PriceSeries, result *models.PipelineResult, elapsed time.Duration) {
	if p.history != nil {
		rec := &models.RunRecord{
			Symbol:    params.Symbol,
			RunAt:     time.Now().UTC(),
			Start:     params.Start,
			End:       params.End,
			Lookback:  params.Lookback,
			Epochs:    params.Epochs,
			RMSE:      result.RMSE,
			CacheHit:  result.CacheHit,
			Horizon:   params.Horizon,
			DurationS: elapsed.Seconds(),
		}
		if err := p.history.Insert(ctx, rec); err != nil {
			p.log.Warn("run history insert failed", logger.String("symbol", params.Symbol), logger.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("run history insert failed: %v", err))
		}
	}

	if p.events != nil {
		if err := p.events.PublishResult(ctx, result); err != nil {
			p.log.Warn("event publish failed", logger.String("symbol", params.Symbol), logger.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("event publish failed: %v", err))
		}
	}
}
