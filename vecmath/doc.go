// Package vecmath provides the public API for float32 vector math used by
// the steering engine: dot products, L2 norms and in-place normalization.
//
// Concept directions are stored unit-norm; the helpers here implement the
// normalize-on-insert contract shared by the registry, the engine catalog
// and the gated appliers.
package vecmath
