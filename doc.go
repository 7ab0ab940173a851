// Package aig implements inference-time activation steering for generative
// models: it biases internal activation tensors toward named semantic
// concepts without retraining.
//
// # Quick Start
//
//	engine := aig.NewEngine(
//	    aig.WithStrategy(aig.StrategyAdditive),
//	    aig.WithAlpha(10), aig.WithBeta(2),
//	)
//	engine.AddConcept(concept.New("professional", direction, 1.0))
//	engine.ActivateWithStrength("professional", 0.8)
//
//	// Once per (layer, timestep) activation produced during the forward pass:
//	steered := engine.Steer(activations, "mid", t)
//
//	engine.DeactivateAll() // between generations
//
// # Strategies
//
// Three interchangeable strategies govern how a concept direction enters
// the tensor:
//
//   - StrategyAdditive: tensor += gain * v. Linear and commutative across
//     concepts; the default for coarse, fast edits.
//   - StrategyProjection: remove the existing component along v, then add
//     alpha*strength*v. Replaces rather than nudges the concept-aligned
//     component; preferred for photographic content where a dominant
//     existing direction must be flipped.
//   - StrategyHSpace: additive, but gated to the "mid" (h-space) layer.
//     Mid-block activations are the reliable locus for disentangled
//     semantic edits in diffusion U-Nets; edits elsewhere are suppressed.
//
// Positive strengths steer toward a concept with gain alpha; negative
// strengths steer away with gain beta.
//
// # Failure model
//
// Steer never fails: stale concept names, shape-mismatched directions and
// degenerate inputs degrade to partial or no steering rather than aborting
// a generation in progress. Errors are reserved for the cold path
// (persistence, configuration).
//
// # Concurrency
//
// Engines, appliers and registries are not thread-safe. Share one across
// concurrent generation requests only with external synchronization.
//
// # Persistence
//
// Concept libraries round-trip through a self-describing binary blob
// (package persistence) on any blobstore.Store backend: local disk,
// memory, S3 or MinIO.
package aig
