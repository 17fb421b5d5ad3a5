package nn

import (
	"math"
	"math/rand"

	"github.com/mysticalseeker24/SuperPage/internal/model"
	"gonum.org/v1/gonum/mat"
)

// layer is one fully connected layer: weight is outSize x inSize, bias is
// outSize. Raw float64 slices back both, so the optimizer can update them
// in place.
type layer struct {
	weight *mat.Dense
	bias   []float64
}

func (l *layer) inSize() int  { _, c := l.weight.Dims(); return c }
func (l *layer) outSize() int { r, _ := l.weight.Dims(); return r }

// TabularClassifier is a feed-forward network mapping a fixed-size numeric
// feature vector to a success probability. Each hidden layer is
// Linear -> ReLU -> Dropout; the output layer is Linear -> Sigmoid.
type TabularClassifier struct {
	config   model.ModelConfig
	layers   []*layer
	training bool
	rng      *rand.Rand
}

// New constructs a classifier with Xavier-uniform weights and zero biases.
// The seed drives weight initialization and dropout masks.
func New(config model.ModelConfig, seed int64) (*TabularClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))

	sizes := make([]int, 0, len(config.HiddenSizes)+2)
	sizes = append(sizes, config.InputSize)
	sizes = append(sizes, config.HiddenSizes...)
	sizes = append(sizes, 1)

	layers := make([]*layer, 0, len(sizes)-1)
	for i := 0; i < len(sizes)-1; i++ {
		layers = append(layers, newLayer(sizes[i], sizes[i+1], rng))
	}

	return &TabularClassifier{
		config: config,
		layers: layers,
		rng:    rng,
	}, nil
}

func newLayer(inSize, outSize int, rng *rand.Rand) *layer {
	// Xavier-uniform: U(-limit, limit) with limit = sqrt(6 / (fanIn + fanOut))
	limit := math.Sqrt(6.0 / float64(inSize+outSize))
	weights := make([]float64, outSize*inSize)
	for i := range weights {
		weights[i] = (rng.Float64()*2 - 1) * limit
	}

	return &layer{
		weight: mat.NewDense(outSize, inSize, weights),
		bias:   make([]float64, outSize),
	}
}

func (c *TabularClassifier) Config() model.ModelConfig {
	return c.config
}

// SetTraining toggles training mode. Dropout is active only in training mode;
// in inference mode the forward pass is deterministic.
func (c *TabularClassifier) SetTraining(training bool) {
	c.training = training
}

func (c *TabularClassifier) Training() bool {
	return c.training
}

// Forward runs the network on a batch (one sample per row) and returns a
// probability in [0, 1] per sample.
func (c *TabularClassifier) Forward(x *mat.Dense) []float64 {
	probs, _ := c.forward(x, false)
	return probs
}

// forwardCache keeps the intermediate values of one forward pass that
// backpropagation needs.
type forwardCache struct {
	// inputs[i] is the input to linear layer i (post-dropout activation of
	// the previous layer; inputs[0] is the batch itself).
	inputs []*mat.Dense
	// preacts[i] is the pre-activation output of hidden linear layer i.
	preacts []*mat.Dense
	// masks[i] is the inverted-dropout mask applied after hidden layer i;
	// nil when dropout was inactive.
	masks []*mat.Dense
}

func (c *TabularClassifier) forward(x *mat.Dense, withCache bool) ([]float64, *forwardCache) {
	var cache *forwardCache
	if withCache {
		cache = &forwardCache{}
	}

	activation := x
	for i := 0; i < len(c.layers)-1; i++ {
		l := c.layers[i]
		if withCache {
			cache.inputs = append(cache.inputs, activation)
		}

		preact := c.linear(l, activation)
		if withCache {
			cache.preacts = append(cache.preacts, preact)
			// relu gating reads the pre-activation, so keep a copy before
			// the in-place activation below
			preact = mat.DenseCopyOf(preact)
		}

		applyReLU(preact)

		var mask *mat.Dense
		if c.training && c.config.DropoutRate > 0 {
			mask = c.dropoutMask(preact)
			mulElem(preact, mask)
		}
		if withCache {
			cache.masks = append(cache.masks, mask)
		}

		activation = preact
	}

	output := c.layers[len(c.layers)-1]
	if withCache {
		cache.inputs = append(cache.inputs, activation)
	}

	logits := c.linear(output, activation)

	rows, _ := logits.Dims()
	probs := make([]float64, rows)
	for i := 0; i < rows; i++ {
		probs[i] = sigmoid(logits.At(i, 0))
	}

	return probs, cache
}

// linear computes x * W^T + b for a batch.
func (c *TabularClassifier) linear(l *layer, x *mat.Dense) *mat.Dense {
	rows, _ := x.Dims()
	out := mat.NewDense(rows, l.outSize(), nil)
	out.Mul(x, l.weight.T())

	raw := out.RawMatrix()
	for i := 0; i < rows; i++ {
		rowStart := i * raw.Stride
		for j := 0; j < l.outSize(); j++ {
			raw.Data[rowStart+j] += l.bias[j]
		}
	}

	return out
}

// dropoutMask builds an inverted-dropout mask: kept activations are scaled by
// 1/(1-p) so inference needs no rescaling.
func (c *TabularClassifier) dropoutMask(a *mat.Dense) *mat.Dense {
	rows, cols := a.Dims()
	scale := 1.0 / (1.0 - c.config.DropoutRate)
	data := make([]float64, rows*cols)
	for i := range data {
		if c.rng.Float64() >= c.config.DropoutRate {
			data[i] = scale
		}
	}
	return mat.NewDense(rows, cols, data)
}

func applyReLU(m *mat.Dense) {
	raw := m.RawMatrix().Data
	for i, v := range raw {
		if v < 0 {
			raw[i] = 0
		}
	}
}

func mulElem(dst, other *mat.Dense) {
	dst.MulElem(dst, other)
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
