package combat

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/clash/internal/game/dice"
)

// Target selects which combatant an ability effect lands on.
type Target int

const (
	// TargetOpponent is the combatant the ability is used against.
	TargetOpponent Target = iota
	// TargetSelf is the ability's user.
	TargetSelf
)

// String returns "target" or "self", matching the catalog vocabulary.
func (t Target) String() string {
	if t == TargetSelf {
		return "self"
	}
	return "target"
}

// ParseTarget converts a catalog target name into a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "target":
		return TargetOpponent, nil
	case "self":
		return TargetSelf, nil
	}
	return TargetOpponent, fmt.Errorf("unknown effect target %q", s)
}

// EffectSpec is one entry of an ability's effect or enhancement list.
type EffectSpec struct {
	Target  Target
	Inflict Inflict
	// Value is the magnitude: damage, heal or status duration.
	Value int
	// Roll, when set, replaces Value with a fresh roll each time the effect fires.
	Roll *dice.Expression
	// Name is the display name used in enhancement log lines.
	Name string
}

// DisplayName returns Name, falling back to the inflict name.
func (e EffectSpec) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Inflict.String()
}

// Ability is the payload a class triggers by winning with an action.
// The zero Ability is a valid no-op.
type Ability struct {
	Class        Class
	Action       Action
	Name         string
	Effects      []EffectSpec
	Enhancements []EffectSpec
}

// Enhanceable reports whether the ability defines any enhancement effects.
func (a Ability) Enhanceable() bool { return len(a.Enhancements) > 0 }

// EXMove is the class super move fired when the EX meter caps.
type EXMove struct {
	Class   Class
	Name    string
	Effects []EffectSpec
}

// AbilityCatalog is the read-only ability data the engine consults.
type AbilityCatalog interface {
	// Find returns the first ability registered for (class, action), or the
	// zero Ability when none is.
	Find(class Class, action Action) Ability
	// EXMove returns the class super move, if one is defined.
	EXMove(class Class) (EXMove, bool)
}

// ApplyEffects inflicts every entry of effects in order, routing each to self
// or target.
//
// Precondition: self and target are distinct.
// Postcondition: Returns the first inflict error; effects before it have
// been applied.
func ApplyEffects(effects []EffectSpec, self, target *Combatant, d Dice) error {
	for _, e := range effects {
		recipient := target
		if e.Target == TargetSelf {
			recipient = self
		}
		value := e.Value
		if e.Roll != nil {
			value = d.Roll(*e.Roll).Total()
		}
		if err := inflict(e.Inflict, value, recipient, d); err != nil {
			return fmt.Errorf("applying %s: %w", e.DisplayName(), err)
		}
	}
	return nil
}

// ApplyEnhancement consumes an enhancement attempt: self always receives one
// turn of enhancement sickness, then the ability's enhancements are applied
// when it defines any.
//
// Postcondition: Returns true when the ability was enhanceable.
func ApplyEnhancement(ability Ability, self, target *Combatant, d Dice) (bool, error) {
	self.AddStatus(EffectEnhancementSickness, 1)
	if !ability.Enhanceable() {
		return false, nil
	}
	return true, ApplyEffects(ability.Enhancements, self, target, d)
}

// describeEnhancements renders "prone on Bob for 1 turn(s)" for every
// enhancement of ability, joined with ", ".
func describeEnhancements(ability Ability, self, target *Combatant) string {
	parts := make([]string, 0, len(ability.Enhancements))
	for _, e := range ability.Enhancements {
		who := target.Name
		if e.Target == TargetSelf {
			who = self.Name
		}
		parts = append(parts, fmt.Sprintf("%s on %s for %d turn(s)", e.DisplayName(), who, e.Value))
	}
	return strings.Join(parts, ", ")
}
