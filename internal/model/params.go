package model

// ParamTensor is one trainable tensor in row-major layout.
type ParamTensor struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

func (t ParamTensor) NumElements() int {
	if len(t.Shape) == 0 {
		return 0
	}
	n := 1
	for _, dim := range t.Shape {
		n *= dim
	}
	return n
}

func (t ParamTensor) SameShape(other ParamTensor) bool {
	if len(t.Shape) != len(other.Shape) {
		return false
	}
	for i, dim := range t.Shape {
		if dim != other.Shape[i] {
			return false
		}
	}
	return true
}

func (t ParamTensor) Clone() ParamTensor {
	shape := make([]int, len(t.Shape))
	copy(shape, t.Shape)
	data := make([]float64, len(t.Data))
	copy(data, t.Data)
	return ParamTensor{Shape: shape, Data: data}
}

// Parameters is the complete learnable state of a classifier: one tensor per
// trainable layer component, in a fixed order. Shape and count must be
// identical across every client and the global model at every round.
type Parameters []ParamTensor

func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	for i, tensor := range p {
		out[i] = tensor.Clone()
	}
	return out
}

func (p Parameters) NumElements() int {
	n := 0
	for _, tensor := range p {
		n += tensor.NumElements()
	}
	return n
}

// CheckShapes verifies that two parameter sets are structurally identical.
// A mismatch is a ConfigError: aggregating over mismatched shapes would
// silently corrupt the model.
func CheckShapes(expected, got Parameters) error {
	if len(expected) != len(got) {
		return NewConfigError("parameter count mismatch: expected %d tensors, got %d", len(expected), len(got))
	}
	for i := range expected {
		if !expected[i].SameShape(got[i]) {
			return NewConfigError("parameter shape mismatch at tensor %d: expected %v, got %v",
				i, expected[i].Shape, got[i].Shape)
		}
	}
	return nil
}
