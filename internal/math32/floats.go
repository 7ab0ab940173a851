// Package math32 provides float32 vector kernels for the steering hot path.
// This is an internal package - external users should use the vecmath package.
package math32

import "math"

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	var ret float32
	for i := range a {
		ret += a[i] * b[i]
	}

	return ret
}

// SquaredL2 calculates the squared L2 norm of a vector.
func SquaredL2(a []float32) float32 {
	var ret float32
	for i := range a {
		ret += a[i] * a[i]
	}

	return ret
}

// ScaleInPlace multiplies all elements of a by scalar.
//
// This is primarily used by norm restoration.
func ScaleInPlace(a []float32, scalar float32) {
	for i := range a {
		a[i] *= scalar
	}
}

// AxpyInPlace performs a[i] += scalar * b[i] for all elements.
// Assumes len(b) >= len(a).
func AxpyInPlace(a []float32, scalar float32, b []float32) {
	for i := range a {
		a[i] += scalar * b[i]
	}
}

// AddScalarInPlace performs a[i] += scalar for all elements.
// Used when a 1-element direction broadcasts across a full tensor.
func AddScalarInPlace(a []float32, scalar float32) {
	for i := range a {
		a[i] += scalar
	}
}

// Sum returns the sum of all elements.
func Sum(a []float32) float32 {
	var ret float32
	for i := range a {
		ret += a[i]
	}

	return ret
}

// Sqrt is a float32 square root.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
