// Package config loads declarative steering profiles from YAML. A profile
// captures an engine setup (strategy, gains), applier gates, the registry
// location and an initial set of concept activations, so runtimes can swap
// steering behavior without recompiling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	aig "github.com/noesissystemofficial-ship-it/AIG-Representational-Activation"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/applier"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/concept"
	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/persistence"
)

// Profile is a full steering profile. Zero or omitted fields keep the
// package defaults of the component they configure.
type Profile struct {
	Engine         EngineProfile         `yaml:"engine"`
	CrossAttention CrossAttentionProfile `yaml:"cross_attention"`
	Latent         LatentProfile         `yaml:"latent"`
	Registry       RegistryProfile       `yaml:"registry"`
	Concepts       []ConceptActivation   `yaml:"concepts"`
}

// EngineProfile configures an aig.Engine.
type EngineProfile struct {
	Strategy  string   `yaml:"strategy"`
	Alpha     *float32 `yaml:"alpha"`
	Beta      *float32 `yaml:"beta"`
	Normalize *bool    `yaml:"normalize"`
}

// GateProfile configures an applier.Gate.
type GateProfile struct {
	Layers []string `yaml:"layers"`
	TMin   *int     `yaml:"t_min"`
	TMax   *int     `yaml:"t_max"`
}

// CrossAttentionProfile configures an applier.CrossAttention.
type CrossAttentionProfile struct {
	Alpha     *float32    `yaml:"alpha"`
	Beta      *float32    `yaml:"beta"`
	Normalize *bool       `yaml:"normalize"`
	Gate      GateProfile `yaml:"gate"`
}

// LatentProfile configures an applier.LatentEditor.
type LatentProfile struct {
	EditStrength *float32    `yaml:"edit_strength"`
	Gate         GateProfile `yaml:"gate"`
}

// RegistryProfile configures a concept.Registry backing blob.
type RegistryProfile struct {
	Path        string `yaml:"path"`
	Compression string `yaml:"compression"`
}

// ConceptActivation names a concept to activate after the catalog is
// loaded, optionally overriding its stored strength.
type ConceptActivation struct {
	Name     string   `yaml:"name"`
	Strength *float32 `yaml:"strength"`
}

// Load reads and validates a profile from a YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a profile from YAML bytes.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the profile for values that cannot map onto component
// options. Omitted fields are always valid.
func (p *Profile) Validate() error {
	if _, err := aig.ParseStrategy(p.Engine.Strategy); err != nil {
		return fmt.Errorf("config: engine: %w", err)
	}
	if p.Registry.Compression != "" {
		if _, err := persistence.ParseCompression(p.Registry.Compression); err != nil {
			return fmt.Errorf("config: registry: %w", err)
		}
	}
	for _, g := range []struct {
		name string
		gate GateProfile
	}{
		{"cross_attention", p.CrossAttention.Gate},
		{"latent", p.Latent.Gate},
	} {
		if g.gate.TMin != nil && g.gate.TMax != nil && *g.gate.TMin > *g.gate.TMax {
			return fmt.Errorf("config: %s: timestep window [%d, %d] is empty", g.name, *g.gate.TMin, *g.gate.TMax)
		}
	}
	for i, c := range p.Concepts {
		if c.Name == "" {
			return fmt.Errorf("config: concepts[%d]: missing name", i)
		}
	}
	return nil
}

// EngineOptions translates the engine section into engine options.
func (p *Profile) EngineOptions() ([]aig.Option, error) {
	strategy, err := aig.ParseStrategy(p.Engine.Strategy)
	if err != nil {
		return nil, err
	}

	opts := []aig.Option{aig.WithStrategy(strategy)}
	if p.Engine.Alpha != nil {
		opts = append(opts, aig.WithAlpha(*p.Engine.Alpha))
	}
	if p.Engine.Beta != nil {
		opts = append(opts, aig.WithBeta(*p.Engine.Beta))
	}
	if p.Engine.Normalize != nil {
		opts = append(opts, aig.WithNormalize(*p.Engine.Normalize))
	}
	return opts, nil
}

// NewEngine builds an engine from the profile, applying extra options
// (logger, metrics) after the profile's own.
func (p *Profile) NewEngine(extra ...aig.Option) (*aig.Engine, error) {
	opts, err := p.EngineOptions()
	if err != nil {
		return nil, err
	}
	return aig.NewEngine(append(opts, extra...)...), nil
}

// CrossAttentionOptions translates the cross_attention section.
func (p *Profile) CrossAttentionOptions() func(o *applier.CrossAttentionOptions) {
	section := p.CrossAttention
	return func(o *applier.CrossAttentionOptions) {
		if section.Alpha != nil {
			o.Alpha = *section.Alpha
		}
		if section.Beta != nil {
			o.Beta = *section.Beta
		}
		if section.Normalize != nil {
			o.Normalize = *section.Normalize
		}
		applyGate(&o.Gate, section.Gate)
	}
}

// LatentEditorOptions translates the latent section.
func (p *Profile) LatentEditorOptions() func(o *applier.LatentEditorOptions) {
	section := p.Latent
	return func(o *applier.LatentEditorOptions) {
		if section.EditStrength != nil {
			o.EditStrength = *section.EditStrength
		}
		applyGate(&o.Gate, section.Gate)
	}
}

func applyGate(gate *applier.Gate, section GateProfile) {
	if section.Layers != nil {
		gate.Layers = section.Layers
	}
	if section.TMin != nil {
		gate.TMin = *section.TMin
	}
	if section.TMax != nil {
		gate.TMax = *section.TMax
	}
}

// RegistryOptions translates the registry section. The returned options
// include the backing path when one is set.
func (p *Profile) RegistryOptions() ([]concept.RegistryOption, error) {
	var opts []concept.RegistryOption
	if p.Registry.Path != "" {
		opts = append(opts, concept.WithPath(p.Registry.Path))
	}
	if p.Registry.Compression != "" {
		compression, err := persistence.ParseCompression(p.Registry.Compression)
		if err != nil {
			return nil, err
		}
		opts = append(opts, concept.WithCompression(compression))
	}
	return opts, nil
}

// ActivateConcepts replays the profile's concept activations against an
// engine. Names absent from the engine catalog are skipped, matching
// engine activation semantics.
func (p *Profile) ActivateConcepts(e *aig.Engine) {
	for _, c := range p.Concepts {
		if c.Strength != nil {
			e.ActivateWithStrength(c.Name, *c.Strength)
			continue
		}
		e.Activate(c.Name)
	}
}
