package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/clash/internal/game/dice"
)

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3 = [4 5] +3 = 12", r.String())
}

func TestParse_Forms(t *testing.T) {
	cases := []struct {
		in                    string
		count, sides, modifer int
	}{
		{"d20", 1, 20, 0},
		{"2d6", 2, 6, 0},
		{"2d100+50", 2, 100, 50},
		{"3D8-2", 3, 8, -2},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			e, err := dice.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.count, e.Count)
			assert.Equal(t, tc.sides, e.Sides)
			assert.Equal(t, tc.modifer, e.Modifier)
			assert.Equal(t, tc.in, e.String())
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "20", "0d6", "xd6", "2d1", "2d", "2d6+x"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expected %q to be rejected", in)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestProperty_RollWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 100).Draw(rt, "sides")
		mod := rapid.IntRange(-50, 50).Draw(rt, "mod")
		seed := rapid.Uint64().Draw(rt, "seed")
		expr := dice.Expression{Raw: "test", Count: count, Sides: sides, Modifier: mod}
		r := dice.Roll(expr, dice.NewSeededSource(seed))
		require.Len(rt, r.Dice, count)
		assert.GreaterOrEqual(rt, r.Total(), count+mod)
		assert.LessOrEqual(rt, r.Total(), count*sides+mod)
	})
}

func TestRoller_PickAndRoll(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewSeededSource(7), zap.NewNop())
	options := []string{"a", "b", "c"}
	for i := 0; i < 50; i++ {
		idx := roller.Pick("test", options)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(options))
	}
	r := roller.Roll(dice.MustParse("2d10+5"))
	assert.Len(t, r.Dice, 2)
	assert.GreaterOrEqual(t, r.Total(), 7)
	assert.LessOrEqual(t, r.Total(), 25)
}
