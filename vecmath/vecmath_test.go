package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 32},
		{"Zero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Mixed", []float32{1, -1, 2}, []float32{1, 1, -2}, -4},
		{"Empty", []float32{}, []float32{}, 0},
		{"Single", []float32{2}, []float32{3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dot(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestNorm(t *testing.T) {
	tests := []struct {
		name     string
		v        []float32
		expected float32
	}{
		{"Pythagorean", []float32{3, 4}, 5},
		{"Unit", []float32{1, 0, 0}, 1},
		{"Zero", []float32{0, 0}, 0},
		{"Empty", []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Norm(tt.v), 1e-5)
			assert.InDelta(t, tt.expected*tt.expected, SquaredNorm(tt.v), 1e-5)
		})
	}
}

func TestAxpyInPlace(t *testing.T) {
	dst := []float32{1, 2, 3}
	AxpyInPlace(dst, 2, []float32{1, 0, -1})
	assert.Equal(t, []float32{3, 2, 1}, dst)
}

func TestNormalizeL2(t *testing.T) {
	t.Run("InPlace", func(t *testing.T) {
		v := []float32{3, 4}
		ok := NormalizeL2InPlace(v)
		assert.True(t, ok)
		assert.InDelta(t, float32(0.6), v[0], 1e-5)
		assert.InDelta(t, float32(0.8), v[1], 1e-5)

		// Length check of norm
		assert.InDelta(t, float32(1.0), float32(math.Sqrt(float64(v[0]*v[0]+v[1]*v[1]))), 1e-5)

		// Zero vector is left unchanged
		vZero := []float32{0, 0}
		ok = NormalizeL2InPlace(vZero)
		assert.False(t, ok)
		assert.Equal(t, []float32{0, 0}, vZero)

		// Empty vector
		ok = NormalizeL2InPlace([]float32{})
		assert.False(t, ok)
	})

	t.Run("Copy", func(t *testing.T) {
		v := []float32{1, 0}
		dst, ok := NormalizeL2Copy(v)
		assert.True(t, ok)
		assert.Equal(t, float32(1), dst[0])
		assert.NotSame(t, &v[0], &dst[0])

		vZero := []float32{0, 0}
		dst, ok = NormalizeL2Copy(vZero)
		assert.False(t, ok)
		assert.Nil(t, dst)
	})
}
