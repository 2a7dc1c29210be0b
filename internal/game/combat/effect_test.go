package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/clash/internal/game/combat"
)

func TestParseEffectKind_RoundTrips(t *testing.T) {
	for k := combat.EffectPoison; k <= combat.EffectHelloWorld; k++ {
		got, err := combat.ParseEffectKind(k.String())
		require.NoError(t, err, k.String())
		assert.Equal(t, k, got)
		assert.True(t, k.Valid())
	}
}

func TestParseEffectKind_UnknownName(t *testing.T) {
	_, err := combat.ParseEffectKind("frostbite")
	assert.ErrorIs(t, err, combat.ErrUnknownEffect)
	assert.False(t, combat.EffectUnknown.Valid())
}

func TestParseInflict(t *testing.T) {
	cases := map[string]combat.Inflict{
		"damage":         {Op: combat.InflictDamage},
		"percent_damage": {Op: combat.InflictPercentDamage},
		"heal":           {Op: combat.InflictHeal},
		"random_gun":     {Op: combat.InflictRandomGun},
		"lag":            {Op: combat.InflictStatus, Status: combat.EffectLag},
	}
	for name, want := range cases {
		got, err := combat.ParseInflict(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}
	_, err := combat.ParseInflict("teleport")
	assert.ErrorIs(t, err, combat.ErrUnknownEffect)
}
