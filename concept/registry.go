package concept

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/blobstore"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/codec"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/persistence"
)

// ErrNoBackingStore is returned by Save/Load on a registry constructed
// without a persistence backing.
var ErrNoBackingStore = errors.New("registry has no backing store")

// Registry is the canonical owner of a set of concept vectors.
//
// The steering engine holds its own catalog populated by explicit
// AddConcept calls; vectors handed to the engine are shared by reference,
// so removing a concept from a registry does not retroactively invalidate
// an engine that is still steering with it.
type Registry struct {
	entries map[string]*Vector

	store    blobstore.Store
	blobName string
	opts     persistence.Options
}

// RegistryOption configures a registry.
type RegistryOption func(*Registry)

// WithStore backs the registry by a blob store under the given blob name.
func WithStore(store blobstore.Store, blobName string) RegistryOption {
	return func(r *Registry) {
		r.store = store
		r.blobName = blobName
	}
}

// WithPath backs the registry by a local file path.
func WithPath(path string) RegistryOption {
	return func(r *Registry) {
		r.store = blobstore.NewLocalStore(filepath.Dir(path))
		r.blobName = filepath.Base(path)
	}
}

// WithCodec sets the metadata codec for persisted blobs.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) RegistryOption {
	return func(r *Registry) {
		r.opts.Codec = c
	}
}

// WithCompression sets the blob body compression.
func WithCompression(c persistence.Compression) RegistryOption {
	return func(r *Registry) {
		r.opts.Compression = c
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(optFns ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]*Vector),
	}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// Open creates a registry backed by path and loads any existing blob.
// A missing blob leaves the registry empty without error.
func Open(ctx context.Context, path string, optFns ...RegistryOption) (*Registry, error) {
	r := NewRegistry(append([]RegistryOption{WithPath(path)}, optFns...)...)
	if err := r.Load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Add inserts or replaces a concept by name, normalizing its direction to
// unit L2 norm in place. Zero-norm directions are stored unchanged.
func (r *Registry) Add(v *Vector) {
	v.Normalize()
	r.entries[v.Name] = v
}

// Get returns the concept with the given name. Lookup failure is not fatal:
// callers must treat ok == false as "concept unavailable".
func (r *Registry) Get(name string) (*Vector, bool) {
	v, ok := r.entries[name]
	return v, ok
}

// Remove deletes a concept. Removing an unknown name is a no-op.
func (r *Registry) Remove(name string) {
	delete(r.entries, name)
}

// List returns all concept names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of concepts.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Save serializes the full concept set to the backing store as one blob.
// The local store creates missing parent directories.
func (r *Registry) Save(ctx context.Context) error {
	if r.store == nil {
		return ErrNoBackingStore
	}

	records := make([]persistence.Record, 0, len(r.entries))
	for _, name := range r.List() {
		records = append(records, r.entries[name].ToRecord())
	}

	blob, err := persistence.Encode(records, r.opts)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	return r.store.Put(ctx, r.blobName, blob)
}

// Load replaces the registry contents with the persisted concept set.
// A missing blob silently leaves the registry empty.
func (r *Registry) Load(ctx context.Context) error {
	if r.store == nil {
		return ErrNoBackingStore
	}

	blob, err := r.store.Get(ctx, r.blobName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			r.entries = make(map[string]*Vector)
			return nil
		}
		return err
	}

	records, err := persistence.Decode(blob)
	if err != nil {
		return fmt.Errorf("decode registry: %w", err)
	}

	entries := make(map[string]*Vector, len(records))
	for _, rec := range records {
		entries[rec.Name] = FromRecord(rec)
	}
	r.entries = entries
	return nil
}
