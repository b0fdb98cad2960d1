package forecast

import (
	"math"
	"math/rand"
	"time"
)

// Predictor runs one-step inference on a normalized lookback window.
// The Forecaster and Evaluator only depend on this, so both are testable
// with a stub model.
type Predictor interface {
	Predict(window []float64) float64
}

// Network is a hand-rolled sequence model: two stacked tanh recurrent
// layers with dropout between them, feeding a single linear output unit.
// Weights are plain slices so the artifact serializes to JSON.
type Network struct {
	Hidden1 int `json:"hidden1"`
	Hidden2 int `json:"hidden2"`

	// layer 1: scalar input -> Hidden1 recurrent units
	W1x []float64   `json:"w1x"` // [h1]
	W1h [][]float64 `json:"w1h"` // [h1][h1]
	B1  []float64   `json:"b1"`  // [h1]

	// layer 2: Hidden1 -> Hidden2 recurrent units
	W2x [][]float64 `json:"w2x"` // [h2][h1]
	W2h [][]float64 `json:"w2h"` // [h2][h2]
	B2  []float64   `json:"b2"`  // [h2]

	// output: Hidden2 -> 1 linear unit
	Wo []float64 `json:"wo"` // [h2]
	Bo float64   `json:"bo"`
}

// NewNetwork initializes a network with small random weights.
// The second layer is half the width of the first, floored at 8 units.
func NewNetwork(hidden int, rng *rand.Rand) *Network {
	h1 := hidden
	h2 := hidden / 2
	if h2 < 8 {
		h2 = 8
	}

	n := &Network{
		Hidden1: h1,
		Hidden2: h2,
		W1x:     randVec(rng, h1, 1.0),
		W1h:     randMat(rng, h1, h1, float64(h1)),
		B1:      make([]float64, h1),
		W2x:     randMat(rng, h2, h1, float64(h1)),
		W2h:     randMat(rng, h2, h2, float64(h2)),
		B2:      make([]float64, h2),
		Wo:      randVec(rng, h2, float64(h2)),
	}
	return n
}

func randVec(rng *rand.Rand, n int, fanIn float64) []float64 {
	scale := 1.0 / math.Sqrt(fanIn)
	v := make([]float64, n)
	for i := range v {
		v[i] = (rng.Float64()*2 - 1) * scale
	}
	return v
}

func randMat(rng *rand.Rand, rows, cols int, fanIn float64) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = randVec(rng, cols, fanIn)
	}
	return m
}

// Predict runs a forward pass with dropout disabled.
func (n *Network) Predict(window []float64) float64 {
	h1 := make([]float64, n.Hidden1)
	h2 := make([]float64, n.Hidden2)

	for _, x := range window {
		h1 = n.stepLayer1(x, h1)
		h2 = n.stepLayer2(h1, h2)
	}

	y := n.Bo
	for i, h := range h2 {
		y += n.Wo[i] * h
	}
	return y
}

func (n *Network) stepLayer1(x float64, prev []float64) []float64 {
	next := make([]float64, n.Hidden1)
	for i := 0; i < n.Hidden1; i++ {
		a := n.B1[i] + n.W1x[i]*x
		for j, p := range prev {
			a += n.W1h[i][j] * p
		}
		next[i] = math.Tanh(a)
	}
	return next
}

func (n *Network) stepLayer2(in, prev []float64) []float64 {
	next := make([]float64, n.Hidden2)
	for i := 0; i < n.Hidden2; i++ {
		a := n.B2[i]
		for j, v := range in {
			a += n.W2x[i][j] * v
		}
		for j, p := range prev {
			a += n.W2h[i][j] * p
		}
		next[i] = math.Tanh(a)
	}
	return next
}

// clone deep-copies all weights; used to snapshot the best epoch.
func (n *Network) clone() *Network {
	c := &Network{
		Hidden1: n.Hidden1,
		Hidden2: n.Hidden2,
		W1x:     append([]float64(nil), n.W1x...),
		W1h:     cloneMat(n.W1h),
		B1:      append([]float64(nil), n.B1...),
		W2x:     cloneMat(n.W2x),
		W2h:     cloneMat(n.W2h),
		B2:      append([]float64(nil), n.B2...),
		Wo:      append([]float64(nil), n.Wo...),
		Bo:      n.Bo,
	}
	return c
}

func cloneMat(m [][]float64) [][]float64 {
	c := make([][]float64, len(m))
	for i := range m {
		c[i] = append([]float64(nil), m[i]...)
	}
	return c
}

// Artifact is the serialized trained predictor for one symbol.
type Artifact struct {
	Symbol      string    `json:"symbol"`
	Lookback    int       `json:"lookback"`
	TrainedAt   time.Time `json:"trained_at"`
	EpochsRun   int       `json:"epochs_run"`
	BestValLoss float64   `json:"best_val_loss"`
	Net         *Network  `json:"net"`
}

// Predict delegates one-step inference to the embedded network.
func (a *Artifact) Predict(window []float64) float64 {
	return a.Net.Predict(window)
}
