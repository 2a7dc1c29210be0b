package combat

import (
	"fmt"

	"github.com/cory-johannsen/clash/internal/game/dice"
)

// EffectKind enumerates every status effect the engine knows how to apply.
// The set is closed: a status that does not parse to an EffectKind is
// rejected before any round logic runs.
type EffectKind int

const (
	EffectUnknown EffectKind = iota
	EffectPoison
	EffectAbsorb
	EffectProne
	EffectDisorient
	EffectHaste
	EffectCounterAttack
	EffectCounterDisrupt
	EffectLag
	EffectConnected
	EffectPistol
	EffectRifle
	EffectShotgun
	EffectRocketLauncher
	EffectEnhancementSickness
	EffectAntiAttack
	EffectAntiArea
	EffectBuffAttack
	EffectHelloWorld
)

var effectNames = map[EffectKind]string{
	EffectPoison:              "poison",
	EffectAbsorb:              "absorb",
	EffectProne:               "prone",
	EffectDisorient:           "disorient",
	EffectHaste:               "haste",
	EffectCounterAttack:       "counter_attack",
	EffectCounterDisrupt:      "counter_disrupt",
	EffectLag:                 "lag",
	EffectConnected:           "connected",
	EffectPistol:              "pistol",
	EffectRifle:               "rifle",
	EffectShotgun:             "shotgun",
	EffectRocketLauncher:      "rocket_launcher",
	EffectEnhancementSickness: "enhancement_sickness",
	EffectAntiAttack:          "anti_attack",
	EffectAntiArea:            "anti_area",
	EffectBuffAttack:          "buff_attack",
	EffectHelloWorld:          "hello_world",
}

// String returns the wire name of the effect.
func (k EffectKind) String() string {
	if n, ok := effectNames[k]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether k names a known effect.
func (k EffectKind) Valid() bool {
	_, ok := effectNames[k]
	return ok
}

// ParseEffectKind converts a wire name into an EffectKind.
//
// Postcondition: Returns an error wrapping ErrUnknownEffect when name has no handler.
func ParseEffectKind(name string) (EffectKind, error) {
	for k, n := range effectNames {
		if n == name {
			return k, nil
		}
	}
	return EffectUnknown, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
}

// Guns lists the variants random_gun chooses from, in pick order.
var Guns = []EffectKind{EffectPistol, EffectRifle, EffectShotgun, EffectRocketLauncher}

// Side identifies which half of the round a combatant occupies. The left side
// is always the priority side for outcome resolution.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// InflictOp is the kind of immediate operation an ability effect performs.
type InflictOp int

const (
	// InflictStatus appends a status whose duration is the effect value.
	InflictStatus InflictOp = iota
	InflictDamage
	// InflictPercentDamage removes value percent of the target's max HP.
	InflictPercentDamage
	InflictHeal
	// InflictRandomGun appends one of Guns chosen uniformly at inflict time.
	InflictRandomGun
)

// Inflict is a resolved inflict operation. Status is set only when Op is
// InflictStatus.
type Inflict struct {
	Op     InflictOp
	Status EffectKind
}

// String returns the inflict name as it appears in the ability catalog.
func (in Inflict) String() string {
	switch in.Op {
	case InflictDamage:
		return "damage"
	case InflictPercentDamage:
		return "percent_damage"
	case InflictHeal:
		return "heal"
	case InflictRandomGun:
		return "random_gun"
	default:
		return in.Status.String()
	}
}

// ParseInflict resolves an inflict name from the ability catalog.
//
// Postcondition: Returns an error wrapping ErrUnknownEffect for unknown names.
func ParseInflict(name string) (Inflict, error) {
	switch name {
	case "damage":
		return Inflict{Op: InflictDamage}, nil
	case "percent_damage":
		return Inflict{Op: InflictPercentDamage}, nil
	case "heal":
		return Inflict{Op: InflictHeal}, nil
	case "random_gun":
		return Inflict{Op: InflictRandomGun}, nil
	}
	k, err := ParseEffectKind(name)
	if err != nil {
		return Inflict{}, err
	}
	return Inflict{Op: InflictStatus, Status: k}, nil
}

// Dice is the randomness the engine consumes. *dice.Roller satisfies it.
type Dice interface {
	Pick(reason string, options []string) int
	Roll(expr dice.Expression) dice.RollResult
}
