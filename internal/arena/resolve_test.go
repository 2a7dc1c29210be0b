package arena_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/clash/internal/arena"
	"github.com/cory-johannsen/clash/internal/game/combat"
)

func TestResolve_PlayerOneWins(t *testing.T) {
	resp, err := arena.Resolve(newEngine(t), arena.Request{Player1: truckthunders(), Player2: crunchbucket()})
	require.NoError(t, err)
	assert.Equal(t, []string{"Truckthunders uses attack!", "Crunchbucket uses area!", "Truckthunders wins."}, resp.Message)
	assert.Equal(t, 400, resp.Player2.HitPoints)
	assert.Equal(t, 500, resp.Player1.HitPoints)
	assert.Equal(t, 50, resp.Player1.EX)
	assert.Equal(t, 100, resp.Player2.EX)
	assert.Equal(t, "priority_wins", resp.Outcome)
	assert.NotEmpty(t, resp.RoundID)
}

func TestResolve_MatchupDamageTable(t *testing.T) {
	actions := []string{"area", "attack", "block", "disrupt", "dodge"}
	// Rows are Player1's action, columns Player2's; values are Player1's HP lost.
	expected := [][]int{
		{100, 100, 100, 0, 0},
		{0, 100, 100, 0, 100},
		{0, 0, 100, 100, 100},
		{100, 100, 0, 100, 0},
		{100, 0, 0, 100, 100},
	}
	for i, a1 := range actions {
		for j, a2 := range actions {
			p1, p2 := truckthunders(), crunchbucket()
			p1.Action, p2.Action = a1, a2
			resp, err := arena.Resolve(newEngine(t), arena.Request{Player1: p1, Player2: p2})
			require.NoError(t, err)
			assert.Equal(t, expected[i][j], 500-resp.Player1.HitPoints, "%s vs %s", a1, a2)
		}
	}
}

func TestResolve_DecodesRequestJSON(t *testing.T) {
	body := `{"Player1": {"name": "A", "character_class": "chosen", "max_hit_points": 500, "max_ex": 1000,
		"hit_points": 500, "ex": 0, "status_effects": [["haste", 1]], "action": "attack", "enhanced": false},
		"Player2": {"name": "B", "character_class": "chemist", "max_hit_points": 500, "max_ex": 1000,
		"hit_points": 500, "ex": 0, "status_effects": [], "action": "attack", "enhanced": "True"}}`
	var req arena.Request
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	resp, err := arena.Resolve(newEngine(t), req)
	require.NoError(t, err)
	assert.Equal(t, "A wins.", resp.Message[2])
	assert.Empty(t, resp.Player1.StatusEffects)
	assert.False(t, bool(resp.Player2.Enhanced))
}

func TestResolve_RejectsMalformedPlayer(t *testing.T) {
	p2 := crunchbucket()
	p2.Action = ""
	_, err := arena.Resolve(newEngine(t), arena.Request{Player1: truckthunders(), Player2: p2})
	assert.ErrorIs(t, err, combat.ErrInvalidCombatant)
}
