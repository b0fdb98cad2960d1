package forecast

import "fmt"

// Scaler is a reversible min-max normalization fitted over a price series.
// One Scaler is fitted per pipeline invocation and is not persisted with
// the model artifact.
type Scaler struct {
	Min float64
	Max float64
}

// FitScaler computes min/max over the given values.
// A zero-variance series leaves the linear map undefined and is rejected.
func FitScaler(values []float64) (*Scaler, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("fit scaler: %w", ErrInsufficientData)
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return nil, fmt.Errorf("fit scaler: %w", ErrDegenerateSeries)
	}

	return &Scaler{Min: min, Max: max}, nil
}

// TransformValue maps a price into [0,1] relative to the fitted range.
func (s *Scaler) TransformValue(v float64) float64 {
	return (v - s.Min) / (s.Max - s.Min)
}

// Transform maps a price slice into normalized space.
func (s *Scaler) Transform(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = s.TransformValue(v)
	}
	return out
}

// InverseValue is the exact algebraic inverse of TransformValue.
// No clamping: recursive forecasts may legitimately drift outside the
// fitted range.
func (s *Scaler) InverseValue(n float64) float64 {
	return n*(s.Max-s.Min) + s.Min
}

// Inverse maps normalized values back to price scale.
func (s *Scaler) Inverse(normalized []float64) []float64 {
	out := make([]float64, len(normalized))
	for i, n := range normalized {
		out[i] = s.InverseValue(n)
	}
	return out
}
