package aig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/blobstore"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/concept"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/tensor"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/testutil"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/vecmath"
)

func e1(dim int) []float32 {
	v := make([]float32, dim)
	v[0] = 1
	return v
}

func TestActivationLifecycle(t *testing.T) {
	e := NewEngine()
	e.AddConcept(concept.New("a", e1(4), 1))
	e.AddConcept(concept.New("b", []float32{0, 1, 0, 0}, 1))

	// Unknown names are silently ignored.
	e.Activate("unknown")
	assert.Empty(t, e.Active())

	e.ActivateWithStrength("a", 0.5)
	e.Activate("b")
	assert.Equal(t, []string{"a", "b"}, e.Active())

	// Re-activation only updates strength, keeping the original position.
	e.ActivateWithStrength("a", -0.25)
	assert.Equal(t, []string{"a", "b"}, e.Active())
	va, _ := e.GetConcept("a")
	assert.Equal(t, float32(-0.25), va.Strength)

	e.Deactivate("a")
	e.Deactivate("a") // no-op
	assert.Equal(t, []string{"b"}, e.Active())
	assert.True(t, e.IsActive("b"))

	// RemoveConcept also deactivates.
	e.RemoveConcept("b")
	assert.Empty(t, e.Active())
	_, ok := e.GetConcept("b")
	assert.False(t, ok)

	e.ActivateWithStrength("a", 1)
	e.DeactivateAll()
	assert.Empty(t, e.Active())
	assert.Equal(t, []string{"a"}, e.Concepts())
}

func TestAddConceptNormalizes(t *testing.T) {
	e := NewEngine()
	e.AddConcept(concept.New("a", []float32{3, 0, 4, 0}, 1))

	v, ok := e.GetConcept("a")
	require.True(t, ok)
	assert.InDelta(t, 1.0, vecmath.Norm(v.Vector), 1e-6)

	// Zero-norm directions are stored unchanged.
	e.AddConcept(concept.New("zero", make([]float32, 4), 1))
	z, _ := e.GetConcept("zero")
	assert.Equal(t, make([]float32, 4), z.Vector)
}

func TestSteerIdentityWhenInactive(t *testing.T) {
	e := NewEngine()
	e.AddConcept(concept.New("a", e1(4), 1))

	tests := []struct {
		name string
		in   *tensor.Tensor
	}{
		{"Vector", tensor.MustFromSlice([]float32{1, 2, 3, 4}, 4)},
		{"Batch", tensor.MustFromSlice(make([]float32, 24), 2, 3, 4)},
		{"Empty", tensor.MustFromSlice(nil, 0)},
		{"Nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.Steer(tt.in, LayerMid, 0)
			assert.Same(t, tt.in, out)
		})
	}
}

func TestSteerAdditivePositive(t *testing.T) {
	// Catalog {"a": e1, strength 1}, additive, alpha=10, beta=2,
	// normalize off, zero input -> 10 * e1.
	e := NewEngine(WithAlpha(10), WithBeta(2), WithNormalize(false))
	e.AddConcept(concept.New("a", e1(4), 1))
	e.Activate("a")

	out := e.Steer(tensor.New(4), LayerMid, 0)
	assert.Equal(t, []float32{10, 0, 0, 0}, out.Data())
}

func TestSteerAdditiveNegative(t *testing.T) {
	// Same setup with strength -1 takes the beta path -> -2 * e1.
	e := NewEngine(WithAlpha(10), WithBeta(2), WithNormalize(false))
	e.AddConcept(concept.New("a", e1(4), -1))
	e.Activate("a")

	out := e.Steer(tensor.New(4), LayerMid, 0)
	assert.Equal(t, []float32{-2, 0, 0, 0}, out.Data())
}

func TestSteerProjectionReplacesComponent(t *testing.T) {
	// Input 5*e1 already aligned with the direction: the existing component
	// is removed entirely before alpha*strength*e1 is added -> 10*e1.
	e := NewEngine(
		WithStrategy(StrategyProjection),
		WithAlpha(10),
		WithNormalize(false),
	)
	e.AddConcept(concept.New("a", e1(4), 1))
	e.Activate("a")

	in := tensor.MustFromSlice([]float32{5, 0, 0, 0}, 4)
	out := e.Steer(in, LayerMid, 0)
	assert.InDeltaSlice(t, []float32{10, 0, 0, 0}, out.Data(), 1e-5)
}

func TestSteerHSpaceGatedToMid(t *testing.T) {
	e := NewEngine(
		WithStrategy(StrategyHSpace),
		WithAlpha(10),
		WithNormalize(false),
	)
	e.AddConcept(concept.New("a", e1(4), 1))
	e.Activate("a")

	in := tensor.MustFromSlice([]float32{1, 2, 3, 4}, 4)

	mid := e.Steer(in, LayerMid, 500)
	assert.Equal(t, []float32{11, 2, 3, 4}, mid.Data())

	for _, layer := range []string{LayerDown, LayerUp, "cross"} {
		out := e.Steer(in, layer, 500)
		assert.Equal(t, in.Data(), out.Data(), "layer %s must pass through", layer)
	}
}

func TestSteerDoesNotMutateInput(t *testing.T) {
	e := NewEngine(WithNormalize(false))
	e.AddConcept(concept.New("a", e1(4), 1))
	e.Activate("a")

	in := tensor.MustFromSlice([]float32{1, 2, 3, 4}, 4)
	snapshot := in.Clone()

	_ = e.Steer(in, LayerMid, 0)
	assert.True(t, in.Equal(snapshot))
}

func TestSteerDeterministic(t *testing.T) {
	rng := testutil.NewRNG(42)
	data := make([]float32, 2*3*8)
	rng.FillGaussian(data)

	e := NewEngine(WithStrategy(StrategyProjection))
	e.AddConcept(concept.New("a", rng.UnitVector(8), 0.7))
	e.AddConcept(concept.New("b", rng.UnitVector(8), -0.3))
	e.Activate("a")
	e.Activate("b")

	in := tensor.MustFromSlice(data, 2, 3, 8)
	first := e.Steer(in, LayerMid, 10)
	second := e.Steer(in, LayerMid, 10)
	assert.True(t, first.Equal(second))
}

func TestSteerNormPreservation(t *testing.T) {
	rng := testutil.NewRNG(7)

	strategies := []Strategy{StrategyAdditive, StrategyProjection, StrategyHSpace}
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			e := NewEngine(WithStrategy(strategy), WithAlpha(10), WithBeta(2))
			e.AddConcept(concept.New("a", rng.UnitVector(8), 1))
			e.AddConcept(concept.New("b", rng.UnitVector(8), -0.5))
			e.Activate("a")
			e.Activate("b")

			data := make([]float32, 4*8)
			rng.FillGaussian(data)
			in := tensor.MustFromSlice(data, 4, 8)

			out := e.Steer(in, LayerMid, 400)

			inNorms := in.RowNorms()
			outNorms := out.RowNorms()
			for i := range inNorms {
				assert.InDelta(t, inNorms[i], outNorms[i], 1e-4)
			}
		})
	}
}

func TestSteerSkipsShapeMismatch(t *testing.T) {
	e := NewEngine(WithNormalize(false))
	e.AddConcept(concept.New("bad", []float32{1, 1, 1}, 1)) // dim 3 vs 4
	e.AddConcept(concept.New("good", e1(4), 1))
	e.Activate("bad")
	e.Activate("good")

	out := e.Steer(tensor.New(4), LayerMid, 0)
	// "bad" contributes nothing; "good" still applies.
	assert.Equal(t, []float32{10, 0, 0, 0}, out.Data())
}

func TestSteerBroadcastsScalarDirection(t *testing.T) {
	e := NewEngine(WithAlpha(2), WithNormalize(false))
	e.AddConcept(concept.New("bias", []float32{-1}, 1)) // unit norm, sign preserved
	e.Activate("bias")

	out := e.Steer(tensor.MustFromSlice([]float32{1, 2, 3, 4}, 2, 2), LayerMid, 0)
	assert.Equal(t, []float32{-1, 0, 1, 2}, out.Data())
}

func TestSteerSkipsStaleReference(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	e := NewEngine(WithNormalize(false))
	e.AddConcept(concept.New("keep", e1(4), 1))
	e.Activate("keep")

	// Persist a catalog that lacks "keep", then load it: the active entry
	// becomes a stale reference and must be skipped, not fail.
	other := NewEngine()
	other.AddConcept(concept.New("other", []float32{0, 1, 0, 0}, 1))
	require.NoError(t, other.SaveConcepts(ctx, store, "catalog.bin"))
	require.NoError(t, e.LoadConcepts(ctx, store, "catalog.bin"))

	in := tensor.MustFromSlice([]float32{1, 2, 3, 4}, 4)
	out := e.Steer(in, LayerMid, 0)
	assert.Equal(t, in.Data(), out.Data())
}

func TestCheckDimensions(t *testing.T) {
	e := NewEngine()
	e.AddConcept(concept.New("a", e1(4), 1))
	e.AddConcept(concept.New("bias", []float32{1}, 1))

	assert.NoError(t, e.CheckDimensions(4))

	err := e.CheckDimensions(8)
	require.Error(t, err)
	var mismatch *ErrDimensionMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 8, mismatch.Expected)
	assert.Equal(t, 4, mismatch.Actual)
}

func TestCombinedVector(t *testing.T) {
	e := NewEngine()

	_, ok := e.CombinedVector()
	assert.False(t, ok)

	e.AddConcept(concept.New("a", e1(4), 2))
	e.AddConcept(concept.New("b", []float32{0, 1, 0, 0}, -1))
	e.Activate("a")
	e.Activate("b")

	combined, ok := e.CombinedVector()
	require.True(t, ok)
	assert.InDeltaSlice(t, []float32{2, -1, 0, 0}, combined, 1e-6)
}

func TestCatalogSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	e := NewEngine()
	e.AddConcept(concept.New("a", []float32{1, 2, 2, 0}, 0.8))
	require.NoError(t, e.SaveConcepts(ctx, store, "catalog.bin"))

	loaded := NewEngine()
	require.NoError(t, loaded.LoadConcepts(ctx, store, "catalog.bin"))
	v, ok := loaded.GetConcept("a")
	require.True(t, ok)
	assert.InDelta(t, 1.0, vecmath.Norm(v.Vector), 1e-6)
	assert.Equal(t, float32(0.8), v.Strength)

	// Loading a missing blob is a no-op.
	require.NoError(t, loaded.LoadConcepts(ctx, store, "missing.bin"))
	_, ok = loaded.GetConcept("a")
	assert.True(t, ok)
}

func TestMetricsCollection(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	e := NewEngine(WithMetricsCollector(metrics), WithNormalize(false))
	e.AddConcept(concept.New("a", e1(4), 1))

	e.Activate("a")
	e.Activate("ghost")
	assert.Equal(t, int64(2), metrics.ActivateCount.Load())
	assert.Equal(t, int64(1), metrics.ActivateUnknown.Load())

	_ = e.Steer(tensor.New(4), LayerMid, 0)
	assert.Equal(t, int64(1), metrics.SteerCount.Load())
	assert.Equal(t, int64(1), metrics.SteerApplied.Load())
}
