package forecast

import "fmt"

// DefaultTrainFraction is the chronological train/eval cut used by the pipeline.
const DefaultTrainFraction = 0.8

// MakeWindows converts a normalized series into supervised windows.
// Window i covers series[i : i+lookback] and predicts series[i+lookback],
// so a series of length N yields exactly N-lookback windows.
func MakeWindows(series []float64, lookback int) (inputs [][]float64, targets []float64, err error) {
	if lookback < 1 {
		return nil, nil, fmt.Errorf("make windows: lookback %d: %w", lookback, ErrInsufficientData)
	}
	if len(series) <= lookback {
		return nil, nil, fmt.Errorf("make windows: %d points for lookback %d: %w",
			len(series), lookback, ErrInsufficientData)
	}

	count := len(series) - lookback
	inputs = make([][]float64, count)
	targets = make([]float64, count)
	for i := 0; i < count; i++ {
		w := make([]float64, lookback)
		copy(w, series[i:i+lookback])
		inputs[i] = w
		targets[i] = series[i+lookback]
	}
	return inputs, targets, nil
}

// Split partitions windows chronologically into a training prefix and an
// evaluation suffix. Order is never shuffled: shuffling would leak future
// information into training.
type Split struct {
	TrainInputs  [][]float64
	TrainTargets []float64
	EvalInputs   [][]float64
	EvalTargets  []float64
}

// ChronoSplit cuts at floor(trainFraction*len(inputs)).
// An empty partition on either side is rejected: training on nothing or
// evaluating on nothing is meaningless.
func ChronoSplit(inputs [][]float64, targets []float64, trainFraction float64) (*Split, error) {
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("split: %d inputs vs %d targets", len(inputs), len(targets))
	}
	cut := int(trainFraction * float64(len(inputs)))
	if cut == 0 || cut == len(inputs) {
		return nil, fmt.Errorf("split: cut %d of %d windows: %w", cut, len(inputs), ErrInsufficientData)
	}
	return &Split{
		TrainInputs:  inputs[:cut],
		TrainTargets: targets[:cut],
		EvalInputs:   inputs[cut:],
		EvalTargets:  targets[cut:],
	}, nil
}
