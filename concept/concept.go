// Package concept defines concept vectors and the registry that owns them.
//
// A concept vector is a named direction in activation space. Registries and
// engine catalogs normalize directions to unit L2 norm on insertion, so a
// stored vector always satisfies ‖v‖ == 1 unless the inserted direction had
// exactly zero norm, in which case it is kept unchanged.
//
// Registries are not safe for concurrent use; callers sharing one across
// generation requests must synchronize externally.
package concept

import (
	"maps"
	"slices"

	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/persistence"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/vecmath"
)

// Vector is a named steering direction with a default strength and free-form
// metadata. The engine never interprets metadata; it travels with the vector
// through persistence round trips.
type Vector struct {
	Name     string
	Vector   []float32
	Strength float32
	Metadata map[string]any
}

// New creates a concept vector. The direction is used as given; it is
// normalized when inserted into a registry or engine catalog.
func New(name string, vector []float32, strength float32) *Vector {
	return &Vector{
		Name:     name,
		Vector:   vector,
		Strength: strength,
	}
}

// Normalize scales the direction to unit L2 norm in place.
// A zero-norm direction is left unchanged; division by a vanishing norm is
// never attempted.
func (v *Vector) Normalize() {
	vecmath.NormalizeL2InPlace(v.Vector)
}

// Dim returns the direction dimensionality.
func (v *Vector) Dim() int {
	return len(v.Vector)
}

// Clone returns a deep copy.
func (v *Vector) Clone() *Vector {
	return &Vector{
		Name:     v.Name,
		Vector:   slices.Clone(v.Vector),
		Strength: v.Strength,
		Metadata: maps.Clone(v.Metadata),
	}
}

// ToRecord converts the vector to its persistence form.
func (v *Vector) ToRecord() persistence.Record {
	return persistence.Record{
		Name:     v.Name,
		Vector:   v.Vector,
		Strength: v.Strength,
		Metadata: v.Metadata,
	}
}

// FromRecord converts a persisted record back to a concept vector.
func FromRecord(rec persistence.Record) *Vector {
	return &Vector{
		Name:     rec.Name,
		Vector:   rec.Vector,
		Strength: rec.Strength,
		Metadata: rec.Metadata,
	}
}
