package nn

import (
	"gonum.org/v1/gonum/mat"
)

// TrainBatch runs one forward/backward pass over a batch and applies an
// optimizer step. The model must be in training mode so dropout is active.
// Returns the batch's BCE loss (computed before the update).
func (c *TabularClassifier) TrainBatch(x *mat.Dense, y []float64, optimizer *Adam) float64 {
	probs, cache := c.forward(x, true)
	loss := BCELoss(probs, y)

	grads := c.backward(cache, probs, y)
	optimizer.Step(c.paramSlices(), grads)

	return loss
}

// backward computes gradients of mean BCE loss with respect to every weight
// and bias, ordered like paramSlices: [w0, b0, w1, b1, ...].
func (c *TabularClassifier) backward(cache *forwardCache, probs []float64, y []float64) [][]float64 {
	n := len(y)

	// Sigmoid + BCE collapse to (p - y) / n at the output pre-activation.
	deltaData := make([]float64, n)
	for i := range deltaData {
		deltaData[i] = (clampProb(probs[i]) - y[i]) / float64(n)
	}

	grads := make([][]float64, len(c.layers)*2)
	dOut := mat.NewDense(n, 1, deltaData)

	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		input := cache.inputs[i]

		gradW := mat.NewDense(l.outSize(), l.inSize(), nil)
		gradW.Mul(dOut.T(), input)
		grads[2*i] = gradW.RawMatrix().Data
		grads[2*i+1] = colSums(dOut)

		if i == 0 {
			break
		}

		dIn := mat.NewDense(n, l.inSize(), nil)
		dIn.Mul(dOut, l.weight)

		// back through the previous hidden layer's dropout and relu
		if mask := cache.masks[i-1]; mask != nil {
			dIn.MulElem(dIn, mask)
		}
		applyReLUGrad(dIn, cache.preacts[i-1])

		dOut = dIn
	}

	return grads
}

// applyReLUGrad zeroes gradient entries where the pre-activation was not
// positive.
func applyReLUGrad(grad, preact *mat.Dense) {
	rows, cols := grad.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if preact.At(i, j) <= 0 {
				grad.Set(i, j, 0)
			}
		}
	}
}

func colSums(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	sums := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sums[j] += m.At(i, j)
		}
	}
	return sums
}
