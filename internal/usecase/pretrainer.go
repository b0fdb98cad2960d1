package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"StockCast/internal/domain/repository"
	"StockCast/pkg/logger"
	"StockCast/pkg/queue"
)

// PretrainParams configures one batch training sweep.
type PretrainParams struct {
	Symbols     []string
	Start       time.Time
	End         time.Time
	Lookback    int
	Epochs      int
	BatchSize   int
	Force       bool
	Concurrency int
	MaxFailures int
}

// PretrainSummary reports what a sweep did.
type PretrainSummary struct {
	Trained []string
	Skipped []string
	Failed  map[string]error
	Aborted bool
}

// Pretrainer trains models for many symbols on a bounded worker pool.
type Pretrainer struct {
	pipeline *Pipeline
	store    repository.ModelStore
	log      *logger.Logger
}

// NewPretrainer wires a batch pretrainer.
func NewPretrainer(pipeline *Pipeline, store repository.ModelStore, log *logger.Logger) *Pretrainer {
	return &Pretrainer{
		pipeline: pipeline,
		store:    store,
		log:      log.With(logger.String("component", "pretrainer")),
	}
}

// Run sweeps the symbol list. Symbols with an existing artifact are skipped
// unless Force is set. Duplicate symbols are trained once. After MaxFailures
// failures the sweep stops submitting new work and reports Aborted.
func (p *Pretrainer) Run(ctx context.Context, params PretrainParams) (*PretrainSummary, error) {
	if len(params.Symbols) == 0 {
		return nil, fmt.Errorf("pretrain: no symbols given")
	}
	if params.Concurrency < 1 {
		params.Concurrency = 1
	}

	summary := &PretrainSummary{Failed: map[string]error{}}

	// dedupe, preserving order; the same symbol is never enqueued twice
	seen := map[string]bool{}
	symbols := make([]string, 0, len(params.Symbols))
	for _, s := range params.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true

		if !params.Force && p.store.Exists(s) {
			p.log.Info("model exists, skipping", logger.String("symbol", s))
			summary.Skipped = append(summary.Skipped, s)
			continue
		}
		symbols = append(symbols, s)
	}

	pool := queue.NewPool(params.Concurrency, len(symbols)+1)
	pool.Start(ctx)

	var failures int64
	go func() {
		defer pool.CloseAndWait()
		for _, symbol := range symbols {
			if params.MaxFailures > 0 && atomic.LoadInt64(&failures) >= int64(params.MaxFailures) {
				summary.Aborted = true
				p.log.Error("failure limit reached, aborting sweep",
					logger.Int("max_failures", params.MaxFailures))
				return
			}

			sym := symbol
			err := pool.Submit(ctx, sym, func(taskCtx context.Context) error {
				_, err := p.pipeline.Run(taskCtx, RunParams{
					Symbol:       sym,
					Start:        params.Start,
					End:          params.End,
					Lookback:     params.Lookback,
					Epochs:       params.Epochs,
					BatchSize:    params.BatchSize,
					ForceRetrain: params.Force,
				})
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				return err
			})
			if err != nil {
				return
			}
		}
	}()

	for res := range pool.Results() {
		if res.Err != nil {
			p.log.Error("pretrain failed", logger.String("symbol", res.ID), logger.Error(res.Err))
			summary.Failed[res.ID] = res.Err
		} else {
			summary.Trained = append(summary.Trained, res.ID)
		}
	}

	p.log.Info("pretrain sweep finished",
		logger.Int("trained", len(summary.Trained)),
		logger.Int("skipped", len(summary.Skipped)),
		logger.Int("failed", len(summary.Failed)),
		logger.Bool("aborted", summary.Aborted),
	)
	return summary, nil
}
