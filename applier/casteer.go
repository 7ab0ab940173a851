package applier

import (
	"sort"

	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/concept"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/tensor"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/vecmath"
)

// normEpsilon guards the renormalization divide.
const normEpsilon = 1e-8

// CrossAttentionOptions configures a CrossAttention applier.
type CrossAttentionOptions struct {
	// Alpha is the gain for positive-strength directions.
	Alpha float32

	// Beta is the gain magnitude for negative-strength directions.
	Beta float32

	// Normalize rescales steered positions back to their pre-edit L2 norm.
	Normalize bool

	// Gate restricts the layers and timesteps the applier edits.
	Gate Gate
}

// CrossAttention steers cross-attention activations with a bank of unit
// directions and a single on/off switch. Unlike the engine it has no
// per-direction activation list: once active, every stored direction
// contributes on every admitted (layer, timestep).
//
// Not safe for concurrent use.
type CrossAttention struct {
	opts       CrossAttentionOptions
	directions map[string]*concept.Vector
	active     bool
}

// NewCrossAttention creates a cross-attention applier. Defaults: alpha 10,
// beta 2, renormalization on, all of the down/mid/up layers, timestep
// window [0, 1000].
func NewCrossAttention(optFns ...func(o *CrossAttentionOptions)) *CrossAttention {
	opts := CrossAttentionOptions{
		Alpha:     10,
		Beta:      2,
		Normalize: true,
		Gate: Gate{
			Layers: []string{"down", "mid", "up"},
			TMin:   0,
			TMax:   1000,
		},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &CrossAttention{
		opts:       opts,
		directions: make(map[string]*concept.Vector),
	}
}

// AddDirection stores a steering direction, normalized to unit L2 norm.
func (c *CrossAttention) AddDirection(name string, vector []float32, strength float32) {
	v := concept.New(name, vector, strength)
	v.Normalize()
	c.directions[name] = v
}

// RemoveDirection deletes a stored direction. Unknown names are a no-op.
func (c *CrossAttention) RemoveDirection(name string) {
	delete(c.directions, name)
}

// Directions returns the stored direction names in sorted order.
func (c *CrossAttention) Directions() []string {
	names := make([]string, 0, len(c.directions))
	for name := range c.directions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Activate switches steering on for subsequent Apply calls.
func (c *CrossAttention) Activate() {
	c.active = true
}

// Deactivate switches steering off.
func (c *CrossAttention) Deactivate() {
	c.active = false
}

// IsActive reports whether the applier currently edits activations.
func (c *CrossAttention) IsActive() bool {
	return c.active
}

// Apply steers one activation tensor. Outside the gate, or when inactive,
// the input passes through untouched. Directions whose dimension does not
// match the tensor's trailing dimension are skipped. Directions apply in
// sorted name order so float accumulation is reproducible.
func (c *CrossAttention) Apply(activations *tensor.Tensor, layer string, timestep int) *tensor.Tensor {
	if !c.active || activations == nil || len(c.directions) == 0 {
		return activations
	}
	if !c.opts.Gate.Admits(layer, timestep) {
		return activations
	}

	var originalNorms []float32
	if c.opts.Normalize {
		originalNorms = activations.RowNorms()
	}

	steered := activations.Clone()
	for _, name := range c.Directions() {
		v := c.directions[name]
		if v.Dim() != steered.LastDim() {
			continue
		}
		gain := c.gain(v.Strength)
		for i := 0; i < steered.Rows(); i++ {
			vecmath.AxpyInPlace(steered.Row(i), gain, v.Vector)
		}
	}

	if c.opts.Normalize {
		steered.RestoreRowNorms(originalNorms, normEpsilon)
	}
	return steered
}

func (c *CrossAttention) gain(s float32) float32 {
	if s >= 0 {
		return c.opts.Alpha * s
	}
	return -c.opts.Beta * -s
}
