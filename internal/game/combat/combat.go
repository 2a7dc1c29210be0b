// Package combat implements the stance combat resolution engine: the rule
// matrix, the status effect pipeline, the ability resolver and the round
// orchestrator. The engine is a synchronous function of two combatants and an
// ability catalog; it holds no state between rounds.
package combat

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCombatant is returned when a combatant fails validation.
	// No round logic runs against an invalid combatant.
	ErrInvalidCombatant = errors.New("invalid combatant")
	// ErrUnknownEffect is returned for a status or inflict name with no handler.
	ErrUnknownEffect = errors.New("unknown effect")
)

// Class is one of the eight playable character classes.
// The zero value (ClassUnknown) is intentionally invalid.
type Class int

const (
	ClassUnknown Class = iota
	ClassDreamer
	ClassCloistered
	ClassChosen
	ClassChemist
	ClassCreator
	ClassHacker
	ClassArchitect
	ClassPhotonic
)

// Classes lists every playable class in canonical order.
var Classes = []Class{
	ClassDreamer, ClassCloistered, ClassChosen, ClassChemist,
	ClassCreator, ClassHacker, ClassArchitect, ClassPhotonic,
}

// String returns the wire name of the class.
func (c Class) String() string {
	switch c {
	case ClassDreamer:
		return "dreamer"
	case ClassCloistered:
		return "cloistered"
	case ClassChosen:
		return "chosen"
	case ClassChemist:
		return "chemist"
	case ClassCreator:
		return "creator"
	case ClassHacker:
		return "hacker"
	case ClassArchitect:
		return "architect"
	case ClassPhotonic:
		return "photonic"
	default:
		return "unknown"
	}
}

// Valid reports whether c is a playable class.
func (c Class) Valid() bool { return c >= ClassDreamer && c <= ClassPhotonic }

// ParseClass converts a wire name into a Class.
func ParseClass(s string) (Class, error) {
	for _, c := range Classes {
		if c.String() == strings.ToLower(s) {
			return c, nil
		}
	}
	return ClassUnknown, fmt.Errorf("unknown character class %q", s)
}

// StatusEffect is one active entry in a combatant's ordered status sequence.
// Invariant: Duration >= 1 while the entry is stored.
type StatusEffect struct {
	Kind     EffectKind
	Duration int
}

// Combatant is the mutable unit of the simulation. The engine mutates it in
// place for one round; the caller owns it before and after.
type Combatant struct {
	Name  string
	Class Class
	MaxHP int
	MaxEX int
	HP    int
	EX    int
	// StatusEffects is applied in order every round; order is significant
	// because later effects see the matrix as changed by earlier ones.
	StatusEffects []StatusEffect
	Action        Action
	// Enhanced is meaningful only for the round in which it is set.
	Enhanced bool
}

// Dead reports whether the combatant has reached the death threshold.
func (c *Combatant) Dead() bool { return c.HP <= 0 }

// Damage subtracts amount from HP. HP is allowed to go negative; Dead
// treats anything at or below zero as dead.
func (c *Combatant) Damage(amount int) { c.HP -= amount }

// Heal adds amount to HP. There is no ceiling besides display.
func (c *Combatant) Heal(amount int) { c.HP += amount }

// AddStatus appends a status entry.
//
// Precondition: duration >= 1.
func (c *Combatant) AddStatus(kind EffectKind, duration int) {
	c.StatusEffects = append(c.StatusEffects, StatusEffect{Kind: kind, Duration: duration})
}

// HasStatus reports whether any entry of kind is present.
func (c *Combatant) HasStatus(kind EffectKind) bool {
	for _, se := range c.StatusEffects {
		if se.Kind == kind {
			return true
		}
	}
	return false
}

// Clone returns a deep copy that shares no memory with c.
func (c *Combatant) Clone() *Combatant {
	cp := *c
	cp.StatusEffects = append([]StatusEffect(nil), c.StatusEffects...)
	return &cp
}

// Validate checks the combatant's record invariants.
//
// Postcondition: Returns nil, or an error wrapping ErrInvalidCombatant that
// lists every violation.
func (c *Combatant) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if !c.Class.Valid() {
		errs = append(errs, "class is not a playable class")
	}
	if c.MaxHP < 1 {
		errs = append(errs, fmt.Sprintf("max_hit_points must be >= 1, got %d", c.MaxHP))
	}
	if c.MaxEX < 1 {
		errs = append(errs, fmt.Sprintf("max_ex must be >= 1, got %d", c.MaxEX))
	}
	if c.EX < 0 {
		errs = append(errs, fmt.Sprintf("ex must be >= 0, got %d", c.EX))
	}
	if !c.Action.Valid() {
		errs = append(errs, "action is not one of area|attack|block|disrupt|dodge")
	}
	for i, se := range c.StatusEffects {
		if !se.Kind.Valid() {
			errs = append(errs, fmt.Sprintf("status_effects[%d]: %v", i, ErrUnknownEffect))
		}
		if se.Duration < 1 {
			errs = append(errs, fmt.Sprintf("status_effects[%d]: duration must be >= 1, got %d", i, se.Duration))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidCombatant, c.Name, strings.Join(errs, "; "))
	}
	return nil
}
