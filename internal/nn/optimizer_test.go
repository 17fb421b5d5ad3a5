package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdamFirstStepMovesByLearningRate(t *testing.T) {
	// with a constant gradient the bias-corrected first step is a full
	// learning-rate step regardless of gradient magnitude
	optimizer := NewAdam(0.1)
	params := [][]float64{{1.0}}
	grads := [][]float64{{50.0}}

	optimizer.Step(params, grads)
	assert.InDelta(t, 0.9, params[0][0], 1e-6)
}

func TestAdamMinimizesQuadratic(t *testing.T) {
	// minimize f(w) = w^2, gradient 2w
	optimizer := NewAdam(0.1)
	params := [][]float64{{3.0}}

	for i := 0; i < 500; i++ {
		grads := [][]float64{{2 * params[0][0]}}
		optimizer.Step(params, grads)
	}

	assert.InDelta(t, 0, params[0][0], 0.01)
}

func TestAdamZeroGradientIsStable(t *testing.T) {
	optimizer := NewAdam(0.1)
	params := [][]float64{{1.0, -2.0}}
	before := []float64{params[0][0], params[0][1]}

	optimizer.Step(params, [][]float64{{0, 0}})

	assert.InDelta(t, before[0], params[0][0], 1e-9)
	assert.InDelta(t, before[1], params[0][1], 1e-9)
	assert.False(t, math.IsNaN(params[0][0]))
}
