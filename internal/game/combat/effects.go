package combat

import (
	"fmt"
	"math"
)

const (
	poisonPercent    = 10
	absorbHeal       = 50
	rifleDamage      = 50
	antiActionDamage = 100
	buffAttackDamage = 100
)

// percentOf returns pct percent of n rounded to the nearest integer.
func percentOf(n, pct int) int {
	return int(math.Round(float64(n) * float64(pct) / 100))
}

// applyEffect runs one round of kind for self, held on side, against other.
//
// Precondition: self and other are distinct.
// Postcondition: Returns the rewritten matrix and any log lines the effect
// produced; err wraps ErrUnknownEffect only for a kind outside the closed set.
func applyEffect(kind EffectKind, side Side, self, other *Combatant, rules Rules) (Rules, []string, error) {
	switch kind {
	case EffectProne, EffectDisorient, EffectHaste, EffectCounterAttack, EffectCounterDisrupt,
		EffectLag, EffectConnected, EffectPistol, EffectShotgun, EffectRocketLauncher:
		rules, _ = Transform(rules, kind, side)
	case EffectPoison:
		self.Damage(percentOf(self.MaxHP, poisonPercent))
	case EffectAbsorb:
		self.Heal(absorbHeal)
	case EffectRifle:
		other.Damage(rifleDamage)
	case EffectEnhancementSickness:
		if self.Enhanced {
			self.Enhanced = false
			return rules, []string{fmt.Sprintf("%s's enhancement failed due to enhancement sickness.", self.Name)}, nil
		}
	case EffectAntiAttack:
		if self.Action == ActionAttack {
			self.Damage(antiActionDamage)
		}
	case EffectAntiArea:
		if self.Action == ActionArea {
			self.Damage(antiActionDamage)
		}
	case EffectBuffAttack:
		if self.Action == ActionAttack {
			other.Damage(buffAttackDamage)
		}
	case EffectHelloWorld:
		return applyHelloWorld(self, other, rules)
	default:
		return rules, nil, fmt.Errorf("%w: %v", ErrUnknownEffect, kind)
	}
	return rules, nil, nil
}

// applyHelloWorld breaks a mirror match in self's favour by rewriting other's
// action to the first action self's row beats.
func applyHelloWorld(self, other *Combatant, rules Rules) (Rules, []string, error) {
	if self.Action != other.Action {
		return rules, nil, nil
	}
	a, ok := rules[self.Action].Beats.First()
	if !ok {
		return rules, nil, nil
	}
	other.Action = a
	return rules, []string{fmt.Sprintf("%s rewrote %s's action to %s!", self.Name, other.Name, a)}, nil
}

// inflict performs one inflict operation against target.
//
// Precondition: value >= 1 when in adds a status.
func inflict(in Inflict, value int, target *Combatant, d Dice) error {
	switch in.Op {
	case InflictDamage:
		target.Damage(value)
	case InflictPercentDamage:
		target.Damage(percentOf(target.MaxHP, value))
	case InflictHeal:
		target.Heal(value)
	case InflictRandomGun:
		names := make([]string, len(Guns))
		for i, g := range Guns {
			names[i] = g.String()
		}
		target.AddStatus(Guns[d.Pick("random_gun", names)], value)
	case InflictStatus:
		if !in.Status.Valid() {
			return fmt.Errorf("%w: %v", ErrUnknownEffect, in.Status)
		}
		target.AddStatus(in.Status, value)
	default:
		return fmt.Errorf("%w: inflict op %d", ErrUnknownEffect, in.Op)
	}
	return nil
}
