package aig

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/blobstore"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/concept"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/internal/math32"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/persistence"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/tensor"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/vecmath"
)

// normEpsilon guards the per-position renormalization divide.
const normEpsilon = 1e-8

// Canonical U-Net layer identifiers used by the model runtime when calling
// Steer and by the gated appliers' allow-lists.
const (
	LayerDown = "down"
	LayerMid  = "mid"
	LayerUp   = "up"
)

// Engine is the steering controller. It holds its own concept catalog
// (separate from any concept.Registry), tracks which concepts are active,
// and applies the configured strategy in Steer.
//
// The active list preserves activation order; it is also the application
// order during Steer, which makes the normalization budget deterministic
// when several active concepts compete for it.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	sessionID string

	strategy  Strategy
	alpha     float32
	beta      float32
	normalize bool

	catalog map[string]*concept.Vector
	active  []string

	logger  *Logger
	metrics MetricsCollector
}

// NewEngine creates a steering engine for one generation session.
// The catalog persists across generations; the active list is cleared
// between them with DeactivateAll.
func NewEngine(optFns ...Option) *Engine {
	e := &Engine{
		sessionID: uuid.NewString(),
		strategy:  StrategyAdditive,
		alpha:     10,
		beta:      2,
		normalize: true,
		catalog:   make(map[string]*concept.Vector),
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(e)
	}
	e.logger = e.logger.WithSession(e.sessionID)
	return e
}

// SessionID returns the generation-session identifier used in logs.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Strategy returns the strategy in effect.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// AddConcept inserts or replaces a concept in the catalog, normalizing its
// direction to unit L2 norm in place (zero-norm directions are kept as-is).
func (e *Engine) AddConcept(v *concept.Vector) {
	v.Normalize()
	e.catalog[v.Name] = v
	e.logger.LogAddConcept(context.Background(), v.Name, v.Dim())
}

// RemoveConcept deletes a concept from the catalog and deactivates it if
// active. Removing an unknown name is a no-op.
func (e *Engine) RemoveConcept(name string) {
	delete(e.catalog, name)
	e.Deactivate(name)
}

// GetConcept returns a catalog entry.
func (e *Engine) GetConcept(name string) (*concept.Vector, bool) {
	v, ok := e.catalog[name]
	return v, ok
}

// Concepts returns all catalog names in sorted order.
func (e *Engine) Concepts() []string {
	names := make([]string, 0, len(e.catalog))
	for name := range e.catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Activate marks a catalog concept active with its current strength.
// Activating a name absent from the catalog is a silent no-op, not an
// error: upstream prompt analysis may emit concept names the catalog does
// not carry.
func (e *Engine) Activate(name string) {
	e.activate(name, nil)
}

// ActivateWithStrength activates a concept and overwrites its strength.
// Re-activating an already-active concept only updates the strength; the
// application order keeps the original activation position.
func (e *Engine) ActivateWithStrength(name string, strength float32) {
	e.activate(name, &strength)
}

func (e *Engine) activate(name string, strength *float32) {
	v, ok := e.catalog[name]
	e.metrics.RecordActivate(ok)
	if !ok {
		e.logger.LogActivate(context.Background(), name, 0, false)
		return
	}
	if strength != nil {
		v.Strength = *strength
	}
	if !slices.Contains(e.active, name) {
		e.active = append(e.active, name)
	}
	e.logger.LogActivate(context.Background(), name, v.Strength, true)
}

// Deactivate removes a concept from the active list.
// Deactivating an inactive name is a no-op.
func (e *Engine) Deactivate(name string) {
	for i, n := range e.active {
		if n == name {
			e.active = append(e.active[:i], e.active[i+1:]...)
			return
		}
	}
}

// DeactivateAll clears the active list. Call between generations.
func (e *Engine) DeactivateAll() {
	e.logger.LogDeactivateAll(context.Background(), len(e.active))
	e.active = e.active[:0]
}

// Active returns the active concept names in application order.
func (e *Engine) Active() []string {
	return slices.Clone(e.active)
}

// IsActive reports whether a concept is currently active.
func (e *Engine) IsActive(name string) bool {
	return slices.Contains(e.active, name)
}

// Steer applies the active concepts to an activation tensor and returns
// the steered result. It is called once per (layer, timestep) activation
// produced during the model's forward pass; the caller substitutes the
// returned tensor before continuing.
//
// Steer is a pure function of engine state and input: it never mutates the
// engine or the input tensor, and it never fails. Stale active names and
// directions that cannot be reconciled with the tensor's trailing dimension
// are skipped silently.
func (e *Engine) Steer(activations *tensor.Tensor, layer string, timestep int) *tensor.Tensor {
	if len(e.active) == 0 || activations == nil {
		return activations
	}

	start := time.Now()

	var originalNorms []float32
	if e.normalize {
		originalNorms = activations.RowNorms()
	}

	steered := activations.Clone()
	applied := 0
	for _, name := range e.active {
		v, ok := e.catalog[name]
		if !ok {
			// Stale reference: deactivated-for-removal elsewhere.
			continue
		}
		if e.applyConcept(steered, v, layer) {
			applied++
		}
	}

	if e.normalize {
		steered.RestoreRowNorms(originalNorms, normEpsilon)
	}

	e.metrics.RecordSteer(layer, applied, time.Since(start))
	return steered
}

// applyConcept folds one concept into the tensor per the engine strategy.
// Returns false when the direction was skipped (shape mismatch) or the
// strategy suppressed the edit for this layer.
func (e *Engine) applyConcept(t *tensor.Tensor, v *concept.Vector, layer string) bool {
	dim := v.Dim()
	last := t.LastDim()

	// Shape reconciliation: an exact trailing-dimension match applies per
	// position; a 1-element direction broadcasts scalar-wise across the
	// whole tensor; anything else cannot broadcast and is skipped.
	scalar := false
	switch {
	case dim == last && dim > 0:
	case dim == 1:
		scalar = true
	default:
		return false
	}

	s := v.Strength
	switch e.strategy {
	case StrategyAdditive:
		e.addDirection(t, v.Vector, s, scalar)
	case StrategyProjection:
		e.projectDirection(t, v.Vector, s, scalar)
	case StrategyHSpace:
		// Mid-block ("h-space") activations are the reliable locus for
		// disentangled semantic edits; other layers pass through.
		if layer != LayerMid {
			return false
		}
		e.addDirection(t, v.Vector, s, scalar)
	default:
		return false
	}
	return true
}

// addDirection applies the additive transform: tensor += gain * v with
// gain = alpha*s for steer-toward and -beta*|s| for steer-away.
func (e *Engine) addDirection(t *tensor.Tensor, vec []float32, s float32, scalar bool) {
	gain := e.gain(s)
	if scalar {
		math32.AddScalarInPlace(t.Data(), gain*vec[0])
		return
	}
	for i := 0; i < t.Rows(); i++ {
		vecmath.AxpyInPlace(t.Row(i), gain, vec)
	}
}

// projectDirection removes the existing component of each position along v
// before adding alpha*s*v, replacing rather than nudging the
// concept-aligned component.
func (e *Engine) projectDirection(t *tensor.Tensor, vec []float32, s float32, scalar bool) {
	add := e.alpha * s
	for i := 0; i < t.Rows(); i++ {
		row := t.Row(i)
		if scalar {
			v0 := vec[0]
			dot := v0 * math32.Sum(row)
			for j := range row {
				row[j] += -dot*v0 + add*v0
			}
			continue
		}
		dot := vecmath.Dot(row, vec)
		vecmath.AxpyInPlace(row, add-dot, vec)
	}
}

// gain maps a signed strength to the effective additive gain.
func (e *Engine) gain(s float32) float32 {
	if s >= 0 {
		return e.alpha * s
	}
	return -e.beta * -s
}

// CheckDimensions verifies that every catalog concept can apply to tensors
// with the given trailing dimension, either exactly or by scalar broadcast.
// Steer itself skips mismatched directions silently; runtimes that prefer to
// fail fast call this once after wiring the catalog.
func (e *Engine) CheckDimensions(hiddenDim int) error {
	for _, name := range e.Concepts() {
		dim := e.catalog[name].Dim()
		if dim == hiddenDim || dim == 1 {
			continue
		}
		return fmt.Errorf("concept %q: %w", name, &ErrDimensionMismatch{
			Expected: hiddenDim,
			Actual:   dim,
		})
	}
	return nil
}

// CombinedVector returns the strength-weighted sum of all active concepts'
// unit vectors, without per-concept gain logic and without normalizing the
// result. ok is false when no active concept contributes. Use it when a
// single merged direction is needed instead of a tensor transform.
func (e *Engine) CombinedVector() ([]float32, bool) {
	var combined []float32
	for _, name := range e.active {
		v, ok := e.catalog[name]
		if !ok {
			continue
		}
		if combined == nil {
			combined = make([]float32, v.Dim())
		} else if len(combined) != v.Dim() {
			// Mixed-dimension catalogs cannot merge; skip the outlier.
			continue
		}
		vecmath.AxpyInPlace(combined, v.Strength, v.Vector)
	}
	return combined, combined != nil
}

// SaveConcepts serializes the engine catalog to a blob store.
// The catalog, unlike the active list, persists across generations, so it
// round-trips through the same format as a concept.Registry.
func (e *Engine) SaveConcepts(ctx context.Context, store blobstore.Store, blobName string) error {
	start := time.Now()

	records := make([]persistence.Record, 0, len(e.catalog))
	for _, name := range e.Concepts() {
		records = append(records, e.catalog[name].ToRecord())
	}

	blob, err := persistence.Encode(records, persistence.Options{})
	if err == nil {
		err = store.Put(ctx, blobName, blob)
	}
	e.metrics.RecordCatalogSave(time.Since(start), err)
	e.logger.LogCatalogSave(ctx, blobName, len(records), err)
	if err != nil {
		return fmt.Errorf("save concepts: %w", err)
	}
	return nil
}

// LoadConcepts replaces the engine catalog with a persisted concept set.
// A missing blob is a no-op, matching registry load semantics. Active
// names that no longer resolve become stale references and are skipped by
// Steer until deactivated.
func (e *Engine) LoadConcepts(ctx context.Context, store blobstore.Store, blobName string) error {
	start := time.Now()

	blob, err := store.Get(ctx, blobName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			e.metrics.RecordCatalogLoad(time.Since(start), nil)
			e.logger.LogCatalogLoad(ctx, blobName, 0, nil)
			return nil
		}
		e.metrics.RecordCatalogLoad(time.Since(start), err)
		e.logger.LogCatalogLoad(ctx, blobName, 0, err)
		return fmt.Errorf("load concepts: %w", err)
	}

	records, err := persistence.Decode(blob)
	if err != nil {
		e.metrics.RecordCatalogLoad(time.Since(start), err)
		e.logger.LogCatalogLoad(ctx, blobName, 0, err)
		return fmt.Errorf("load concepts: %w", err)
	}

	catalog := make(map[string]*concept.Vector, len(records))
	for _, rec := range records {
		catalog[rec.Name] = concept.FromRecord(rec)
	}
	e.catalog = catalog
	e.metrics.RecordCatalogLoad(time.Since(start), nil)
	e.logger.LogCatalogLoad(ctx, blobName, len(records), nil)
	return nil
}
