// Package tensor provides a minimal activation tensor for steering transforms.
//
// A Tensor is a flat float32 buffer with an explicit shape whose trailing
// axis is the model hidden dimension. The steering engine treats every
// leading-axis combination as one "position" and applies per-position edits
// along the trailing axis.
package tensor

import (
	"fmt"
	"slices"

	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/vecmath"
)

// Tensor is an activation tensor of shape [..., hidden] stored as flat
// float32 data in row-major order.
type Tensor struct {
	data  []float32
	shape []int
}

// New creates a zero-filled tensor with the given shape.
func New(shape ...int) *Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Tensor{
		data:  make([]float32, n),
		shape: slices.Clone(shape),
	}
}

// FromSlice wraps data in a tensor of the given shape.
// The data slice is used directly, not copied.
func FromSlice(data []float32, shape ...int) (*Tensor, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("negative dimension: %d", d)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, got %d", shape, n, len(data))
	}
	return &Tensor{data: data, shape: slices.Clone(shape)}, nil
}

// MustFromSlice is like FromSlice but panics on shape mismatch.
// Intended for tests and fixtures.
func MustFromSlice(data []float32, shape ...int) *Tensor {
	t, err := FromSlice(data, shape...)
	if err != nil {
		panic(err)
	}
	return t
}

// Data returns the underlying flat buffer.
func (t *Tensor) Data() []float32 {
	return t.data
}

// Shape returns a copy of the tensor shape.
func (t *Tensor) Shape() []int {
	return slices.Clone(t.shape)
}

// NumElements returns the total element count.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// LastDim returns the trailing (hidden) dimension, or 0 for a shapeless tensor.
func (t *Tensor) LastDim() int {
	if len(t.shape) == 0 {
		return 0
	}
	return t.shape[len(t.shape)-1]
}

// Rows returns the number of positions, i.e. the product of all leading
// dimensions. A tensor with a zero trailing dimension has zero rows.
func (t *Tensor) Rows() int {
	d := t.LastDim()
	if d == 0 {
		return 0
	}
	return len(t.data) / d
}

// Row returns the i-th position as a slice view of length LastDim.
// Mutating the returned slice mutates the tensor.
func (t *Tensor) Row(i int) []float32 {
	d := t.LastDim()
	return t.data[i*d : (i+1)*d]
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{
		data:  slices.Clone(t.data),
		shape: slices.Clone(t.shape),
	}
}

// RowNorms returns the per-position L2 norm along the trailing axis.
func (t *Tensor) RowNorms() []float32 {
	rows := t.Rows()
	norms := make([]float32, rows)
	for i := 0; i < rows; i++ {
		norms[i] = vecmath.Norm(t.Row(i))
	}
	return norms
}

// RestoreRowNorms rescales each position so its L2 norm matches the
// corresponding entry of norms. eps guards against division by a vanishing
// post-edit norm.
func (t *Tensor) RestoreRowNorms(norms []float32, eps float32) {
	rows := t.Rows()
	for i := 0; i < rows && i < len(norms); i++ {
		row := t.Row(i)
		newNorm := vecmath.Norm(row)
		vecmath.ScaleInPlace(row, norms[i]/(newNorm+eps))
	}
}

// Equal reports whether two tensors have identical shape and data.
func (t *Tensor) Equal(o *Tensor) bool {
	return slices.Equal(t.shape, o.shape) && slices.Equal(t.data, o.data)
}
