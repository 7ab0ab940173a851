// Package applier provides gated steering appliers for model runtimes that
// want layer and timestep scoping around direction edits, instead of wiring
// the engine's single strategy into every forward hook.
package applier

import "slices"

// Gate scopes an applier to a set of layers and an inclusive timestep
// window. The zero value admits nothing useful (window [0,0], all layers);
// appliers install their own defaults.
type Gate struct {
	// Layers is the allow-list of layer identifiers. Empty admits all layers.
	Layers []string

	// TMin and TMax bound the admitted timesteps, both inclusive.
	TMin int
	TMax int
}

// Admits reports whether an activation at (layer, timestep) falls inside
// the gate.
func (g Gate) Admits(layer string, timestep int) bool {
	if timestep < g.TMin || timestep > g.TMax {
		return false
	}
	if len(g.Layers) == 0 {
		return true
	}
	return slices.Contains(g.Layers, layer)
}
