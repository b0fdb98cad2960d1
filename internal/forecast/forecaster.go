package forecast

import (
	"fmt"
)

// forecastState is the explicit state of the autoregressive loop: a sliding
// window of the last lookback normalized values.
type forecastState struct {
	window []float64
}

// step runs one transition: infer the next normalized value from the current
// window, then slide the window by dropping the oldest element and appending
// the prediction. The model consumes its own prior output as the newest
// input for the next step.
func (s forecastState) step(p Predictor) (float64, forecastState) {
	pred := p.Predict(s.window)

	next := make([]float64, len(s.window))
	copy(next, s.window[1:])
	next[len(next)-1] = pred
	return pred, forecastState{window: next}
}

// Forecast recursively predicts horizon future steps from the tail of the
// fitted series, returning predictions in price scale. No external truth is
// reintroduced mid-forecast: errors compound, and that accumulating drift is
// the contract, not a defect.
func Forecast(p Predictor, tail []float64, scaler *Scaler, horizon int) ([]float64, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("forecast: horizon %d must be >= 1", horizon)
	}
	if len(tail) == 0 {
		return nil, fmt.Errorf("forecast: empty seed window: %w", ErrInsufficientData)
	}

	seed := make([]float64, len(tail))
	copy(seed, tail)
	state := forecastState{window: seed}

	prices := make([]float64, 0, horizon)
	for i := 0; i < horizon; i++ {
		var pred float64
		pred, state = state.step(p)
		prices = append(prices, scaler.InverseValue(pred))
	}
	return prices, nil
}
