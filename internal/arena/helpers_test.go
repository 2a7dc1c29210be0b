package arena_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/clash/internal/arena"
	"github.com/cory-johannsen/clash/internal/game/ability"
	"github.com/cory-johannsen/clash/internal/game/combat"
	"github.com/cory-johannsen/clash/internal/game/dice"
)

func newEngine(t *testing.T) *combat.Engine {
	t.Helper()
	reg, err := ability.Default()
	require.NoError(t, err)
	return combat.NewEngine(reg, dice.NewLoggedRoller(dice.NewSeededSource(9), zap.NewNop()))
}

// fixedPicker always picks the option at index i.
type fixedPicker struct{ i int }

func (p fixedPicker) Pick(string, []string) int { return p.i }

func truckthunders() arena.Record {
	return arena.Record{
		Name:           "Truckthunders",
		CharacterClass: "dreamer",
		MaxHitPoints:   500,
		MaxEX:          1000,
		HitPoints:      500,
		StatusEffects:  []arena.StatusEntry{},
		Action:         "attack",
	}
}

func crunchbucket() arena.Record {
	return arena.Record{
		Name:           "Crunchbucket",
		CharacterClass: "cloistered",
		MaxHitPoints:   500,
		MaxEX:          1000,
		HitPoints:      500,
		StatusEffects:  []arena.StatusEntry{},
		Action:         "area",
	}
}
