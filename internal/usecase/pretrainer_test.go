package usecase

import (
	"context"
	"testing"
	"time"
)

func pretrainParams(symbols ...string) PretrainParams {
	return PretrainParams{
		Symbols:     symbols,
		Start:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Lookback:    10,
		Epochs:      2,
		BatchSize:   16,
		Concurrency: 2,
	}
}

func TestPretrainTrainsAndDedupes(t *testing.T) {
	source := &stubSource{series: weekdaySeries("ANY", 60, func(i int) float64 {
		return 100 + float64(i)
	})}
	p, store := testPipeline(t, source)
	pre := NewPretrainer(p, store, p.log)

	summary, err := pre.Run(context.Background(), pretrainParams("aapl", "MSFT", "AAPL", " msft "))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Trained) != 2 {
		t.Fatalf("expected 2 trained, got %v", summary.Trained)
	}
	if !store.Exists("AAPL") || !store.Exists("MSFT") {
		t.Fatalf("artifacts missing after sweep")
	}
}

func TestPretrainSkipsExisting(t *testing.T) {
	source := &stubSource{series: weekdaySeries("ANY", 60, func(i int) float64 {
		return 100 + float64(i)
	})}
	p, store := testPipeline(t, source)
	pre := NewPretrainer(p, store, p.log)

	if _, err := pre.Run(context.Background(), pretrainParams("AAPL")); err != nil {
		t.Fatalf("first sweep: %v", err)
	}

	summary, err := pre.Run(context.Background(), pretrainParams("AAPL", "GOOG"))
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if len(summary.Skipped) != 1 || summary.Skipped[0] != "AAPL" {
		t.Fatalf("expected AAPL skipped, got %v", summary.Skipped)
	}
	if len(summary.Trained) != 1 || summary.Trained[0] != "GOOG" {
		t.Fatalf("expected GOOG trained, got %v", summary.Trained)
	}
}

func TestPretrainForceRetrains(t *testing.T) {
	source := &stubSource{series: weekdaySeries("ANY", 60, func(i int) float64 {
		return 100 + float64(i)
	})}
	p, store := testPipeline(t, source)
	pre := NewPretrainer(p, store, p.log)

	if _, err := pre.Run(context.Background(), pretrainParams("AAPL")); err != nil {
		t.Fatalf("first sweep: %v", err)
	}

	params := pretrainParams("AAPL")
	params.Force = true
	summary, err := pre.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("forced sweep: %v", err)
	}
	if len(summary.Trained) != 1 || len(summary.Skipped) != 0 {
		t.Fatalf("force did not retrain: %+v", summary)
	}
}

func TestPretrainRecordsFailures(t *testing.T) {
	// a series too short for the lookback makes every run fail
	source := &stubSource{series: weekdaySeries("ANY", 12, func(i int) float64 {
		return 100 + float64(i)
	})}
	p, store := testPipeline(t, source)
	pre := NewPretrainer(p, store, p.log)

	params := pretrainParams("AAPL", "MSFT")
	params.Concurrency = 1
	summary, err := pre.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Failed) != 2 {
		t.Fatalf("expected 2 failures, got %v", summary.Failed)
	}
}

func TestPretrainEmptySymbols(t *testing.T) {
	source := &stubSource{}
	p, store := testPipeline(t, source)
	pre := NewPretrainer(p, store, p.log)

	if _, err := pre.Run(context.Background(), pretrainParams()); err == nil {
		t.Fatalf("expected error for empty symbol list")
	}
}
