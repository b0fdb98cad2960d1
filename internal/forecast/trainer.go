package forecast

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// TrainConfig controls one training run. Zero values fall back to defaults.
type TrainConfig struct {
	Epochs       int
	BatchSize    int
	Hidden       int
	LearningRate float64
	Dropout      float64
	Patience     int
	ClipNorm     float64
	Seed         int64
}

func (c *TrainConfig) applyDefaults() {
	if c.Epochs <= 0 {
		c.Epochs = 10
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 32
	}
	if c.Hidden <= 0 {
		c.Hidden = 64
	}
	if c.LearningRate <= 0 {
		c.LearningRate = 0.02
	}
	if c.Dropout <= 0 {
		c.Dropout = 0.2
	}
	if c.Patience <= 0 {
		c.Patience = 3
	}
	if c.ClipNorm <= 0 {
		c.ClipNorm = 5.0
	}
}

// Train fits a fresh network on the training prefix, monitoring loss on the
// evaluation suffix. It stops early after Patience non-improving epochs and
// restores the weights from the best epoch rather than the last. Training
// never runs more than Epochs passes. Persistence is the caller's concern.
func Train(symbol string, split *Split, cfg TrainConfig) (*Artifact, error) {
	cfg.applyDefaults()

	if split == nil || len(split.TrainInputs) == 0 || len(split.EvalInputs) == 0 {
		return nil, fmt.Errorf("train %s: empty split: %w", symbol, ErrInsufficientData)
	}
	lookback := len(split.TrainInputs[0])

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	net := NewNetwork(cfg.Hidden, rng)

	bestValLoss := math.Inf(1)
	var bestNet *Network
	patience := 0
	epochsRun := 0

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		epochsRun = epoch + 1

		for start := 0; start < len(split.TrainInputs); start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > len(split.TrainInputs) {
				end = len(split.TrainInputs)
			}

			g := newGradients(net)
			for i := start; i < end; i++ {
				loss := net.backprop(split.TrainInputs[i], split.TrainTargets[i], cfg.Dropout, rng, g)
				if math.IsNaN(loss) || math.IsInf(loss, 0) {
					return nil, fmt.Errorf("train %s: loss diverged at epoch %d: %w", symbol, epoch, ErrTraining)
				}
			}
			g.scale(1.0 / float64(end-start))
			g.clip(cfg.ClipNorm)
			net.apply(g, cfg.LearningRate)
		}

		valLoss := validationLoss(net, split.EvalInputs, split.EvalTargets)
		if math.IsNaN(valLoss) || math.IsInf(valLoss, 0) {
			return nil, fmt.Errorf("train %s: validation loss diverged at epoch %d: %w", symbol, epoch, ErrTraining)
		}

		if valLoss < bestValLoss {
			bestValLoss = valLoss
			bestNet = net.clone()
			patience = 0
		} else {
			patience++
			if patience >= cfg.Patience {
				break
			}
		}
	}

	if bestNet == nil {
		// every epoch diverged upward from +Inf is impossible; first epoch always snapshots
		return nil, fmt.Errorf("train %s: no epoch completed: %w", symbol, ErrTraining)
	}

	return &Artifact{
		Symbol:      symbol,
		Lookback:    lookback,
		TrainedAt:   time.Now().UTC(),
		EpochsRun:   epochsRun,
		BestValLoss: bestValLoss,
		Net:         bestNet,
	}, nil
}

func validationLoss(net *Network, inputs [][]float64, targets []float64) float64 {
	sum := 0.0
	for i, w := range inputs {
		d := net.Predict(w) - targets[i]
		sum += d * d
	}
	return sum / float64(len(inputs))
}

// gradients mirrors the network's weight layout.
type gradients struct {
	w1x []float64
	w1h [][]float64
	b1  []float64
	w2x [][]float64
	w2h [][]float64
	b2  []float64
	wo  []float64
	bo  float64
}

func newGradients(n *Network) *gradients {
	return &gradients{
		w1x: make([]float64, n.Hidden1),
		w1h: zeroMat(n.Hidden1, n.Hidden1),
		b1:  make([]float64, n.Hidden1),
		w2x: zeroMat(n.Hidden2, n.Hidden1),
		w2h: zeroMat(n.Hidden2, n.Hidden2),
		b2:  make([]float64, n.Hidden2),
		wo:  make([]float64, n.Hidden2),
	}
}

func zeroMat(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func (g *gradients) each(f func(v *float64)) {
	for i := range g.w1x {
		f(&g.w1x[i])
	}
	for i := range g.w1h {
		for j := range g.w1h[i] {
			f(&g.w1h[i][j])
		}
	}
	for i := range g.b1 {
		f(&g.b1[i])
	}
	for i := range g.w2x {
		for j := range g.w2x[i] {
			f(&g.w2x[i][j])
		}
	}
	for i := range g.w2h {
		for j := range g.w2h[i] {
			f(&g.w2h[i][j])
		}
	}
	for i := range g.b2 {
		f(&g.b2[i])
	}
	for i := range g.wo {
		f(&g.wo[i])
	}
	f(&g.bo)
}

func (g *gradients) scale(s float64) {
	g.each(func(v *float64) { *v *= s })
}

// clip rescales the gradient so its global L2 norm does not exceed maxNorm.
func (g *gradients) clip(maxNorm float64) {
	sum := 0.0
	g.each(func(v *float64) { sum += *v * *v })
	norm := math.Sqrt(sum)
	if norm > maxNorm {
		g.scale(maxNorm / norm)
	}
}

// apply performs one SGD step.
func (n *Network) apply(g *gradients, lr float64) {
	for i := range n.W1x {
		n.W1x[i] -= lr * g.w1x[i]
	}
	for i := range n.W1h {
		for j := range n.W1h[i] {
			n.W1h[i][j] -= lr * g.w1h[i][j]
		}
	}
	for i := range n.B1 {
		n.B1[i] -= lr * g.b1[i]
	}
	for i := range n.W2x {
		for j := range n.W2x[i] {
			n.W2x[i][j] -= lr * g.w2x[i][j]
		}
	}
	for i := range n.W2h {
		for j := range n.W2h[i] {
			n.W2h[i][j] -= lr * g.w2h[i][j]
		}
	}
	for i := range n.B2 {
		n.B2[i] -= lr * g.b2[i]
	}
	for i := range n.Wo {
		n.Wo[i] -= lr * g.wo[i]
	}
	n.Bo -= lr * g.bo
}

// backprop runs one forward pass with inverted dropout, then full
// backpropagation through time, accumulating into g. Returns the sample loss.
func (n *Network) backprop(window []float64, target, dropout float64, rng *rand.Rand, g *gradients) float64 {
	T := len(window)
	keep := 1.0 - dropout

	// forward, keeping per-step states
	h1s := make([][]float64, T+1)
	h2s := make([][]float64, T+1)
	x2s := make([][]float64, T+1) // h1 after dropout, the input to layer 2
	mask1 := make([][]bool, T+1)
	h1s[0] = make([]float64, n.Hidden1)
	h2s[0] = make([]float64, n.Hidden2)

	for t := 1; t <= T; t++ {
		h1s[t] = n.stepLayer1(window[t-1], h1s[t-1])

		m := make([]bool, n.Hidden1)
		x2 := make([]float64, n.Hidden1)
		for j := range x2 {
			if rng.Float64() < keep {
				m[j] = true
				x2[j] = h1s[t][j] / keep
			}
		}
		mask1[t] = m
		x2s[t] = x2

		h2s[t] = n.stepLayer2(x2, h2s[t-1])
	}

	// dropout on the final state feeding the output unit
	mask2 := make([]bool, n.Hidden2)
	z := make([]float64, n.Hidden2)
	for j := range z {
		if rng.Float64() < keep {
			mask2[j] = true
			z[j] = h2s[T][j] / keep
		}
	}

	y := n.Bo
	for i, v := range z {
		y += n.Wo[i] * v
	}
	diff := y - target
	loss := diff * diff

	// backward
	dy := 2 * diff
	g.bo += dy
	dh2 := make([]float64, n.Hidden2) // carry into step t
	for i := range n.Wo {
		g.wo[i] += dy * z[i]
		if mask2[i] {
			dh2[i] = n.Wo[i] * dy / keep
		}
	}

	dh1 := make([]float64, n.Hidden1)
	for t := T; t >= 1; t-- {
		// layer 2
		da2 := make([]float64, n.Hidden2)
		for i := range da2 {
			da2[i] = dh2[i] * (1 - h2s[t][i]*h2s[t][i])
		}
		dx2 := make([]float64, n.Hidden1)
		dh2prev := make([]float64, n.Hidden2)
		for i := range da2 {
			g.b2[i] += da2[i]
			for j := 0; j < n.Hidden1; j++ {
				g.w2x[i][j] += da2[i] * x2s[t][j]
				dx2[j] += da2[i] * n.W2x[i][j]
			}
			for j := 0; j < n.Hidden2; j++ {
				g.w2h[i][j] += da2[i] * h2s[t-1][j]
				dh2prev[j] += da2[i] * n.W2h[i][j]
			}
		}
		dh2 = dh2prev

		// layer 1: gradient arrives through the (dropped) layer-2 input at
		// this step and through layer 1's own recurrence from step t+1
		da1 := make([]float64, n.Hidden1)
		for i := range da1 {
			d := dh1[i]
			if mask1[t][i] {
				d += dx2[i] / keep
			}
			da1[i] = d * (1 - h1s[t][i]*h1s[t][i])
		}
		dh1prev := make([]float64, n.Hidden1)
		for i := range da1 {
			g.b1[i] += da1[i]
			g.w1x[i] += da1[i] * window[t-1]
			for j := 0; j < n.Hidden1; j++ {
				g.w1h[i][j] += da1[i] * h1s[t-1][j]
				dh1prev[j] += da1[i] * n.W1h[i][j]
			}
		}
		dh1 = dh1prev
	}

	return loss
}
