package forecast

import (
	"errors"
	"math"
	"testing"
)

func TestScalerRoundTrip(t *testing.T) {
	s, err := FitScaler([]float64{100, 150, 125, 199})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	for _, v := range []float64{100, 125, 150, 199, 101.5} {
		got := s.InverseValue(s.TransformValue(v))
		if math.Abs(got-v) > 1e-9 {
			t.Fatalf("round trip %v: got %v", v, got)
		}
	}
}

func TestScalerTransformRange(t *testing.T) {
	s, err := FitScaler([]float64{100, 200})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if got := s.TransformValue(100); got != 0 {
		t.Fatalf("min should map to 0, got %v", got)
	}
	if got := s.TransformValue(200); got != 1 {
		t.Fatalf("max should map to 1, got %v", got)
	}
	if got := s.TransformValue(150); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("mid should map to 0.5, got %v", got)
	}
}

func TestScalerNoClampOutOfRange(t *testing.T) {
	s, err := FitScaler([]float64{100, 200})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	// recursive forecasts may drift outside the fitted range
	if got := s.InverseValue(1.5); math.Abs(got-250) > 1e-9 {
		t.Fatalf("inverse of 1.5: got %v want 250", got)
	}
	if got := s.InverseValue(-0.5); math.Abs(got-50) > 1e-9 {
		t.Fatalf("inverse of -0.5: got %v want 50", got)
	}
}

func TestScalerDegenerateSeries(t *testing.T) {
	_, err := FitScaler([]float64{150, 150, 150})
	if !errors.Is(err, ErrDegenerateSeries) {
		t.Fatalf("expected ErrDegenerateSeries, got %v", err)
	}
}

func TestScalerEmpty(t *testing.T) {
	_, err := FitScaler(nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestScalerSliceTransform(t *testing.T) {
	s, err := FitScaler([]float64{0, 10})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	norm := s.Transform([]float64{0, 5, 10})
	back := s.Inverse(norm)
	want := []float64{0, 5, 10}
	for i := range want {
		if math.Abs(back[i]-want[i]) > 1e-12 {
			t.Fatalf("index %d: got %v want %v", i, back[i], want[i])
		}
	}
}
