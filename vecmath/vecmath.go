package vecmath

import (
	"slices"

	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/internal/math32"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	return math32.Dot(a, b)
}

// SquaredNorm calculates the squared L2 norm of v.
func SquaredNorm(v []float32) float32 {
	return math32.SquaredL2(v)
}

// Norm calculates the L2 norm of v.
func Norm(v []float32) float32 {
	return math32.Sqrt(math32.SquaredL2(v))
}

// ScaleInPlace multiplies all elements of v by scalar.
func ScaleInPlace(v []float32, scalar float32) {
	math32.ScaleInPlace(v, scalar)
}

// AxpyInPlace performs dst[i] += scalar * v[i].
// Assumes len(v) >= len(dst).
func AxpyInPlace(dst []float32, scalar float32, v []float32) {
	math32.AxpyInPlace(dst, scalar, v)
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm; v is left unchanged in that case.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm2 := math32.SquaredL2(v)
	if norm2 == 0 {
		return false
	}
	inv := 1 / math32.Sqrt(norm2)
	math32.ScaleInPlace(v, inv)
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float32) ([]float32, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}
