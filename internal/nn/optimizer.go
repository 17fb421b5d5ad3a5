package nn

import "math"

// Adam optimizer with bias-corrected first and second moment estimates.
// Moment state is allocated lazily on the first step and keyed by position,
// so one Adam instance must stay bound to one model.
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	step int
	m    [][]float64
	v    [][]float64
}

func NewAdam(learningRate float64) *Adam {
	return &Adam{
		LearningRate: learningRate,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
	}
}

// Step updates the parameter slices in place using the matching gradient
// slices.
func (o *Adam) Step(params [][]float64, grads [][]float64) {
	if o.m == nil {
		o.m = make([][]float64, len(params))
		o.v = make([][]float64, len(params))
		for i, p := range params {
			o.m[i] = make([]float64, len(p))
			o.v[i] = make([]float64, len(p))
		}
	}

	o.step++
	correction1 := 1 - math.Pow(o.Beta1, float64(o.step))
	correction2 := 1 - math.Pow(o.Beta2, float64(o.step))

	for i, p := range params {
		g := grads[i]
		m := o.m[i]
		v := o.v[i]
		for j := range p {
			m[j] = o.Beta1*m[j] + (1-o.Beta1)*g[j]
			v[j] = o.Beta2*v[j] + (1-o.Beta2)*g[j]*g[j]

			mHat := m[j] / correction1
			vHat := v[j] / correction2

			p[j] -= o.LearningRate * mHat / (math.Sqrt(vHat) + o.Epsilon)
		}
	}
}
