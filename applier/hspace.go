package applier

import (
	"slices"
	"sort"

	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/concept"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/tensor"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/vecmath"
)

// LatentEditorOptions configures a LatentEditor.
type LatentEditorOptions struct {
	// EditStrength is a global multiplier on every active direction's
	// contribution.
	EditStrength float32

	// Gate bounds the admitted timesteps. The layer allow-list is unused;
	// h-space edits are not layer-addressed.
	Gate Gate
}

// LatentEditor applies semantic edits to mid-block bottleneck ("h-space")
// activations. Directions are activated individually by name, like engine
// concepts, and edits do not renormalize: h-space magnitude carries signal
// the edit is meant to shift.
//
// Not safe for concurrent use.
type LatentEditor struct {
	opts       LatentEditorOptions
	directions map[string]*concept.Vector
	active     []string
}

// NewLatentEditor creates an h-space editor. Defaults: edit strength 1,
// timestep window [200, 800]. The late-denoising tail is excluded because
// bottleneck edits there distort fine detail instead of semantics.
func NewLatentEditor(optFns ...func(o *LatentEditorOptions)) *LatentEditor {
	opts := LatentEditorOptions{
		EditStrength: 1,
		Gate: Gate{
			TMin: 200,
			TMax: 800,
		},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &LatentEditor{
		opts:       opts,
		directions: make(map[string]*concept.Vector),
	}
}

// AddDirection stores an edit direction, normalized to unit L2 norm.
func (l *LatentEditor) AddDirection(name string, direction []float32, strength float32) {
	v := concept.New(name, direction, strength)
	v.Normalize()
	l.directions[name] = v
}

// RemoveDirection deletes a direction and deactivates it if active.
func (l *LatentEditor) RemoveDirection(name string) {
	delete(l.directions, name)
	l.Deactivate(name)
}

// Directions returns the stored direction names in sorted order.
func (l *LatentEditor) Directions() []string {
	names := make([]string, 0, len(l.directions))
	for name := range l.directions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Activate marks a stored direction active with its current strength.
// Unknown names are ignored.
func (l *LatentEditor) Activate(name string) {
	l.activate(name, nil)
}

// ActivateWithStrength activates a direction and overwrites its strength.
func (l *LatentEditor) ActivateWithStrength(name string, strength float32) {
	l.activate(name, &strength)
}

func (l *LatentEditor) activate(name string, strength *float32) {
	v, ok := l.directions[name]
	if !ok {
		return
	}
	if strength != nil {
		v.Strength = *strength
	}
	if !slices.Contains(l.active, name) {
		l.active = append(l.active, name)
	}
}

// Deactivate removes a direction from the active list.
func (l *LatentEditor) Deactivate(name string) {
	for i, n := range l.active {
		if n == name {
			l.active = append(l.active[:i], l.active[i+1:]...)
			return
		}
	}
}

// Active returns the active direction names in activation order.
func (l *LatentEditor) Active() []string {
	return slices.Clone(l.active)
}

// Apply edits one h-space tensor: h += editStrength * strength * direction
// for each active direction, in activation order. Outside the timestep
// window the input passes through. Dimension-mismatched directions are
// skipped. The result is never renormalized.
func (l *LatentEditor) Apply(h *tensor.Tensor, timestep int) *tensor.Tensor {
	if len(l.active) == 0 || h == nil {
		return h
	}
	if !l.opts.Gate.Admits("", timestep) {
		return h
	}

	edited := h.Clone()
	for _, name := range l.active {
		v, ok := l.directions[name]
		if !ok {
			continue
		}
		if v.Dim() != edited.LastDim() {
			continue
		}
		gain := l.opts.EditStrength * v.Strength
		for i := 0; i < edited.Rows(); i++ {
			vecmath.AxpyInPlace(edited.Row(i), gain, v.Vector)
		}
	}
	return edited
}
