package forecast

import (
	"fmt"
	"math"
)

// Evaluation holds held-out accuracy in price scale.
type Evaluation struct {
	Predicted []float64
	Actual    []float64
	RMSE      float64
}

// Evaluate runs inference on every evaluation window, inverse-transforms
// predictions and targets back to price scale, and computes RMSE there.
// RMSE in normalized space is not price-comparable and is never reported.
func Evaluate(p Predictor, evalInputs [][]float64, evalTargets []float64, scaler *Scaler) (*Evaluation, error) {
	if len(evalInputs) == 0 {
		return nil, fmt.Errorf("evaluate: no evaluation windows: %w", ErrInsufficientData)
	}
	if len(evalInputs) != len(evalTargets) {
		return nil, fmt.Errorf("evaluate: %d inputs vs %d targets", len(evalInputs), len(evalTargets))
	}

	predicted := make([]float64, len(evalInputs))
	actual := make([]float64, len(evalTargets))
	sumSq := 0.0
	for i, w := range evalInputs {
		predicted[i] = scaler.InverseValue(p.Predict(w))
		actual[i] = scaler.InverseValue(evalTargets[i])
		d := predicted[i] - actual[i]
		sumSq += d * d
	}

	return &Evaluation{
		Predicted: predicted,
		Actual:    actual,
		RMSE:      math.Sqrt(sumSq / float64(len(evalInputs))),
	}, nil
}
