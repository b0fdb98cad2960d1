package forecast

import (
	"math"
	"testing"
)

// stubPredictor returns a fixed sequence of normalized predictions and
// records the windows it saw.
type stubPredictor struct {
	outputs []float64
	calls   int
	windows [][]float64
}

func (s *stubPredictor) Predict(window []float64) float64 {
	w := make([]float64, len(window))
	copy(w, window)
	s.windows = append(s.windows, w)
	out := s.outputs[s.calls%len(s.outputs)]
	s.calls++
	return out
}

func TestForecastLengthInvariant(t *testing.T) {
	scaler := &Scaler{Min: 0, Max: 1}
	for _, h := range []int{1, 2, 5, 30} {
		stub := &stubPredictor{outputs: []float64{0.5}}
		prices, err := Forecast(stub, []float64{0.1, 0.2, 0.3}, scaler, h)
		if err != nil {
			t.Fatalf("horizon %d: %v", h, err)
		}
		if len(prices) != h {
			t.Fatalf("horizon %d: got %d predictions", h, len(prices))
		}
		if stub.calls != h {
			t.Fatalf("horizon %d: model invoked %d times", h, stub.calls)
		}
	}
}

func TestForecastWindowSlides(t *testing.T) {
	scaler := &Scaler{Min: 0, Max: 1}
	stub := &stubPredictor{outputs: []float64{0.9, 0.8, 0.7}}
	_, err := Forecast(stub, []float64{0.1, 0.2, 0.3}, scaler, 3)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}

	// each prediction becomes the newest element of the next window
	wantWindows := [][]float64{
		{0.1, 0.2, 0.3},
		{0.2, 0.3, 0.9},
		{0.3, 0.9, 0.8},
	}
	for i, want := range wantWindows {
		for j := range want {
			if stub.windows[i][j] != want[j] {
				t.Fatalf("step %d window %v, want %v", i, stub.windows[i], want)
			}
		}
	}
}

func TestForecastSeedNotMutated(t *testing.T) {
	scaler := &Scaler{Min: 0, Max: 1}
	tail := []float64{0.1, 0.2, 0.3}
	stub := &stubPredictor{outputs: []float64{0.5}}
	if _, err := Forecast(stub, tail, scaler, 4); err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if tail[0] != 0.1 || tail[1] != 0.2 || tail[2] != 0.3 {
		t.Fatalf("seed window mutated: %v", tail)
	}
}

func TestForecastInverseTransforms(t *testing.T) {
	scaler := &Scaler{Min: 100, Max: 200}
	stub := &stubPredictor{outputs: []float64{0.5}}
	prices, err := Forecast(stub, []float64{0.1, 0.2}, scaler, 1)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if math.Abs(prices[0]-150) > 1e-9 {
		t.Fatalf("got %v want 150", prices[0])
	}
}

func TestForecastBadHorizon(t *testing.T) {
	scaler := &Scaler{Min: 0, Max: 1}
	stub := &stubPredictor{outputs: []float64{0.5}}
	if _, err := Forecast(stub, []float64{0.1}, scaler, 0); err == nil {
		t.Fatalf("expected error for horizon 0")
	}
	if _, err := Forecast(stub, nil, scaler, 1); err == nil {
		t.Fatalf("expected error for empty seed")
	}
}
