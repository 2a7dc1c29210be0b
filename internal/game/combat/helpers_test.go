package combat_test

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/clash/internal/game/combat"
	"github.com/cory-johannsen/clash/internal/game/dice"
)

// stubCatalog is an in-memory AbilityCatalog; the first matching entry wins.
type stubCatalog struct {
	abilities []combat.Ability
	ex        map[combat.Class]combat.EXMove
}

func (c stubCatalog) Find(class combat.Class, action combat.Action) combat.Ability {
	for _, a := range c.abilities {
		if a.Class == class && a.Action == action {
			return a
		}
	}
	return combat.Ability{}
}

func (c stubCatalog) EXMove(class combat.Class) (combat.EXMove, bool) {
	m, ok := c.ex[class]
	return m, ok
}

func damage(n int) combat.EffectSpec {
	return combat.EffectSpec{Target: combat.TargetOpponent, Inflict: combat.Inflict{Op: combat.InflictDamage}, Value: n}
}

func status(target combat.Target, kind combat.EffectKind, turns int) combat.EffectSpec {
	return combat.EffectSpec{Target: target, Inflict: combat.Inflict{Op: combat.InflictStatus, Status: kind}, Value: turns}
}

// baseCatalog gives every class a 100 damage ability for every action. The
// dreamer's disrupt is additionally enhanceable with prone on the target.
func baseCatalog() stubCatalog {
	var c stubCatalog
	c.abilities = append(c.abilities, combat.Ability{
		Class:        combat.ClassDreamer,
		Action:       combat.ActionDisrupt,
		Name:         "Moving Sidewalk",
		Effects:      []combat.EffectSpec{damage(100)},
		Enhancements: []combat.EffectSpec{status(combat.TargetOpponent, combat.EffectProne, 1)},
	})
	for _, cl := range combat.Classes {
		for _, a := range combat.Actions {
			c.abilities = append(c.abilities, combat.Ability{Class: cl, Action: a, Effects: []combat.EffectSpec{damage(100)}})
		}
	}
	c.ex = map[combat.Class]combat.EXMove{
		combat.ClassDreamer: {Class: combat.ClassDreamer, Name: "Waking Nightmare", Effects: []combat.EffectSpec{damage(200)}},
	}
	return c
}

func seededRoller(seed uint64) *dice.Roller {
	return dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
}

func newEngine(opts ...combat.Option) *combat.Engine {
	return combat.NewEngine(baseCatalog(), seededRoller(1), opts...)
}

func fighter(name string, class combat.Class, action combat.Action) *combat.Combatant {
	return &combat.Combatant{
		Name:   name,
		Class:  class,
		MaxHP:  500,
		HP:     500,
		MaxEX:  1000,
		Action: action,
	}
}
