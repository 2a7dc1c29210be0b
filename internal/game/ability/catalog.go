// Package ability loads the static ability catalog consumed by the combat
// engine: one ability per (class, action) pair plus an EX move per class.
package ability

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/clash/internal/game/combat"
	"github.com/cory-johannsen/clash/internal/game/dice"
)

//go:embed default_abilities.yaml
var defaultAbilities []byte

// EffectDef is one effect or enhancement entry as written in YAML.
type EffectDef struct {
	Target string `yaml:"target"` // "self" | "target"
	Effect string `yaml:"effect"`
	Value  int    `yaml:"value"`
	Roll   string `yaml:"roll,omitempty"` // dice expression; replaces value when set
	Name   string `yaml:"name,omitempty"`
}

// AbilityDef is the YAML form of an ability.
type AbilityDef struct {
	Class        string      `yaml:"class"`
	Type         string      `yaml:"type"`
	Name         string      `yaml:"name"`
	Effects      []EffectDef `yaml:"effects"`
	Enhancements []EffectDef `yaml:"enhancements"`
}

// EXMoveDef is the YAML form of a class super move.
type EXMoveDef struct {
	Class   string      `yaml:"class"`
	Name    string      `yaml:"name"`
	Effects []EffectDef `yaml:"effects"`
}

// Document is the top-level catalog file.
type Document struct {
	Abilities []AbilityDef `yaml:"abilities"`
	EXMoves   []EXMoveDef  `yaml:"ex_moves"`
}

type key struct {
	class  combat.Class
	action combat.Action
}

// Registry holds resolved abilities and EX moves. It implements
// combat.AbilityCatalog and is read-only once loaded.
type Registry struct {
	abilities []combat.Ability
	index     map[key]int
	exMoves   map[combat.Class]combat.EXMove
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[key]int), exMoves: make(map[combat.Class]combat.EXMove)}
}

// Register adds a. When an ability for the same (class, action) is already
// registered the earlier one keeps answering Find.
func (r *Registry) Register(a combat.Ability) {
	k := key{a.Class, a.Action}
	if _, ok := r.index[k]; !ok {
		r.index[k] = len(r.abilities)
	}
	r.abilities = append(r.abilities, a)
}

// RegisterEXMove adds m unless the class already has an EX move.
func (r *Registry) RegisterEXMove(m combat.EXMove) {
	if _, ok := r.exMoves[m.Class]; !ok {
		r.exMoves[m.Class] = m
	}
}

// Find returns the first ability registered for (class, action), or the zero
// Ability when none is.
func (r *Registry) Find(class combat.Class, action combat.Action) combat.Ability {
	i, ok := r.index[key{class, action}]
	if !ok {
		return combat.Ability{}
	}
	return r.abilities[i]
}

// EXMove returns the EX move registered for class.
func (r *Registry) EXMove(class combat.Class) (combat.EXMove, bool) {
	m, ok := r.exMoves[class]
	return m, ok
}

// All returns every registered ability in registration order, duplicates included.
func (r *Registry) All() []combat.Ability {
	return append([]combat.Ability(nil), r.abilities...)
}

// EXMoves returns the EX moves ordered by class.
func (r *Registry) EXMoves() []combat.EXMove {
	out := make([]combat.EXMove, 0, len(r.exMoves))
	for _, m := range r.exMoves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}

// Default returns the catalog compiled into the binary.
//
// Postcondition: Returns a non-nil Registry, or an error if the embedded
// document is invalid.
func Default() (*Registry, error) {
	return Parse(defaultAbilities)
}

// Load reads and parses the catalog file at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a non-nil Registry, or an error naming path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ability catalog %q: %w", path, err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return reg, nil
}

// Parse decodes a catalog document, rejecting unknown fields, and resolves
// every class, action and effect name.
//
// Postcondition: Returns a non-nil Registry, or the first resolution error.
// Unknown effect names yield an error wrapping combat.ErrUnknownEffect.
func Parse(data []byte) (*Registry, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding ability catalog: %w", err)
	}

	reg := NewRegistry()
	for i, def := range doc.Abilities {
		a, err := resolveAbility(def)
		if err != nil {
			return nil, fmt.Errorf("abilities[%d]: %w", i, err)
		}
		reg.Register(a)
	}
	for i, def := range doc.EXMoves {
		class, err := combat.ParseClass(def.Class)
		if err != nil {
			return nil, fmt.Errorf("ex_moves[%d]: %w", i, err)
		}
		effects, err := resolveEffects("effects", def.Effects)
		if err != nil {
			return nil, fmt.Errorf("ex_moves[%d]: %w", i, err)
		}
		reg.RegisterEXMove(combat.EXMove{Class: class, Name: def.Name, Effects: effects})
	}
	return reg, nil
}

func resolveAbility(def AbilityDef) (combat.Ability, error) {
	class, err := combat.ParseClass(def.Class)
	if err != nil {
		return combat.Ability{}, err
	}
	action, err := combat.ParseAction(def.Type)
	if err != nil {
		return combat.Ability{}, err
	}
	effects, err := resolveEffects("effects", def.Effects)
	if err != nil {
		return combat.Ability{}, err
	}
	enhancements, err := resolveEffects("enhancements", def.Enhancements)
	if err != nil {
		return combat.Ability{}, err
	}
	return combat.Ability{
		Class:        class,
		Action:       action,
		Name:         def.Name,
		Effects:      effects,
		Enhancements: enhancements,
	}, nil
}

func resolveEffects(field string, defs []EffectDef) ([]combat.EffectSpec, error) {
	out := make([]combat.EffectSpec, 0, len(defs))
	for i, d := range defs {
		spec, err := resolveEffect(d)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, spec)
	}
	return out, nil
}

func resolveEffect(d EffectDef) (combat.EffectSpec, error) {
	target, err := combat.ParseTarget(d.Target)
	if err != nil {
		return combat.EffectSpec{}, err
	}
	in, err := combat.ParseInflict(d.Effect)
	if err != nil {
		return combat.EffectSpec{}, err
	}
	spec := combat.EffectSpec{Target: target, Inflict: in, Value: d.Value, Name: d.Name}
	// least is the smallest value the effect can fire with.
	least := d.Value
	if d.Roll != "" {
		expr, err := dice.Parse(d.Roll)
		if err != nil {
			return combat.EffectSpec{}, err
		}
		spec.Roll = &expr
		least = expr.Count + expr.Modifier
	}
	switch in.Op {
	case combat.InflictStatus, combat.InflictRandomGun:
		if least < 1 {
			return combat.EffectSpec{}, fmt.Errorf("%s duration must be >= 1, got %d", d.Effect, least)
		}
	default:
		if least < 0 {
			return combat.EffectSpec{}, fmt.Errorf("%s value must be >= 0, got %d", d.Effect, least)
		}
	}
	return spec, nil
}
