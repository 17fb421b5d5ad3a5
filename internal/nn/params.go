package nn

import (
	"github.com/mysticalseeker24/SuperPage/internal/model"
	"gonum.org/v1/gonum/mat"
)

// Parameters returns a detached snapshot of the network's learnable state:
// for each layer, a weight tensor [outSize, inSize] followed by a bias
// tensor [outSize].
func (c *TabularClassifier) Parameters() model.Parameters {
	params := make(model.Parameters, 0, len(c.layers)*2)
	for _, l := range c.layers {
		rows, cols := l.weight.Dims()
		weightData := make([]float64, rows*cols)
		copy(weightData, l.weight.RawMatrix().Data)
		params = append(params, model.ParamTensor{Shape: []int{rows, cols}, Data: weightData})

		biasData := make([]float64, len(l.bias))
		copy(biasData, l.bias)
		params = append(params, model.ParamTensor{Shape: []int{len(l.bias)}, Data: biasData})
	}

	return params
}

// SetParameters overwrites the network's weights in place with exactly the
// given tensors. Structural mismatch is a ConfigError; nothing is partially
// applied.
func (c *TabularClassifier) SetParameters(params model.Parameters) error {
	if err := model.CheckShapes(c.Parameters(), params); err != nil {
		return err
	}

	for i, l := range c.layers {
		weightTensor := params[2*i]
		rows, cols := l.weight.Dims()
		l.weight.Copy(mat.NewDense(rows, cols, weightTensor.Data))
		copy(l.bias, params[2*i+1].Data)
	}

	return nil
}

// NumParameters returns the total number of trainable scalars.
func (c *TabularClassifier) NumParameters() int {
	n := 0
	for _, l := range c.layers {
		rows, cols := l.weight.Dims()
		n += rows*cols + len(l.bias)
	}
	return n
}

// paramSlices exposes the raw backing slices in the same order as
// Parameters, for in-place optimizer updates.
func (c *TabularClassifier) paramSlices() [][]float64 {
	slices := make([][]float64, 0, len(c.layers)*2)
	for _, l := range c.layers {
		slices = append(slices, l.weight.RawMatrix().Data)
		slices = append(slices, l.bias)
	}
	return slices
}
