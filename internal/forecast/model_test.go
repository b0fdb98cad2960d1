package forecast

import (
	"math"
	"math/rand"
	"testing"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestNewNetworkShapes(t *testing.T) {
	n := NewNetwork(64, newTestRand())
	if n.Hidden1 != 64 || n.Hidden2 != 32 {
		t.Fatalf("got %d/%d units, want 64/32", n.Hidden1, n.Hidden2)
	}
	if len(n.W2x) != 32 || len(n.W2x[0]) != 64 {
		t.Fatalf("layer 2 input weights shaped %dx%d", len(n.W2x), len(n.W2x[0]))
	}

	// narrow first layer still gets at least 8 second-layer units
	small := NewNetwork(10, newTestRand())
	if small.Hidden2 != 8 {
		t.Fatalf("got %d second-layer units, want floor of 8", small.Hidden2)
	}
}

func TestPredictBoundedByOutputLayer(t *testing.T) {
	n := NewNetwork(16, newTestRand())
	// tanh states are in [-1, 1], so the output is bounded by |Wo|_1 + |Bo|
	bound := math.Abs(n.Bo)
	for _, w := range n.Wo {
		bound += math.Abs(w)
	}
	for _, x := range []float64{0, 0.5, 1, 100, -100} {
		y := n.Predict([]float64{x, x, x})
		if math.Abs(y) > bound+1e-9 {
			t.Fatalf("input %v: output %v escapes bound %v", x, y, bound)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	n := NewNetwork(8, newTestRand())
	window := []float64{0.1, 0.2, 0.3}
	before := n.Predict(window)

	c := n.clone()
	n.W1x[0] += 10
	n.W2h[0][0] += 10
	n.Bo += 10

	if got := c.Predict(window); got != before {
		t.Fatalf("clone affected by mutation: %v vs %v", got, before)
	}
}
