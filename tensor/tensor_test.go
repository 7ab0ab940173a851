package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	tests := []struct {
		name    string
		data    []float32
		shape   []int
		wantErr bool
	}{
		{"Vector", make([]float32, 4), []int{4}, false},
		{"Matrix", make([]float32, 6), []int{2, 3}, false},
		{"ThreeD", make([]float32, 24), []int{2, 3, 4}, false},
		{"Mismatch", make([]float32, 5), []int{2, 3}, true},
		{"Negative", make([]float32, 4), []int{-1, 4}, true},
		{"Empty", nil, []int{0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := FromSlice(tt.data, tt.shape...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.shape, ts.Shape())
			assert.Equal(t, len(tt.data), ts.NumElements())
		})
	}
}

func TestRows(t *testing.T) {
	ts := MustFromSlice(make([]float32, 24), 2, 3, 4)
	assert.Equal(t, 4, ts.LastDim())
	assert.Equal(t, 6, ts.Rows())

	// Row views alias the buffer.
	ts.Row(2)[0] = 7
	assert.Equal(t, float32(7), ts.Data()[8])

	empty := MustFromSlice(nil, 0)
	assert.Equal(t, 0, empty.Rows())
}

func TestClone(t *testing.T) {
	ts := MustFromSlice([]float32{1, 2, 3, 4}, 2, 2)
	cp := ts.Clone()
	require.True(t, ts.Equal(cp))

	cp.Row(0)[0] = 9
	assert.False(t, ts.Equal(cp))
	assert.Equal(t, float32(1), ts.Data()[0])
}

func TestRowNorms(t *testing.T) {
	ts := MustFromSlice([]float32{3, 4, 0, 0}, 2, 2)
	norms := ts.RowNorms()
	require.Len(t, norms, 2)
	assert.InDelta(t, 5.0, norms[0], 1e-5)
	assert.InDelta(t, 0.0, norms[1], 1e-5)
}

func TestRestoreRowNorms(t *testing.T) {
	ts := MustFromSlice([]float32{3, 4}, 1, 2)
	orig := ts.RowNorms()

	// Perturb and restore.
	ts.Row(0)[0] += 10
	ts.RestoreRowNorms(orig, 1e-8)
	assert.InDelta(t, 5.0, ts.RowNorms()[0], 1e-4)

	// Zero original norm collapses the row toward zero rather than dividing by it.
	zero := MustFromSlice([]float32{0, 0}, 1, 2)
	zn := zero.RowNorms()
	zero.Row(0)[0] = 2
	zero.RestoreRowNorms(zn, 1e-8)
	assert.InDelta(t, 0.0, zero.RowNorms()[0], 1e-5)
}
