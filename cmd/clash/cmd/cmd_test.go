package cmd_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/clash/cmd/clash/cmd"
)

const roundJSON = `{
  "Player1": {"name": "Truckthunders", "character_class": "dreamer", "max_hit_points": 500, "max_ex": 1000,
    "hit_points": 500, "ex": 0, "status_effects": [], "action": "attack", "enhanced": false},
  "Player2": {"name": "Crunchbucket", "character_class": "cloistered", "max_hit_points": 500, "max_ex": 1000,
    "hit_points": 500, "ex": 0, "status_effects": [], "action": "area", "enhanced": false}
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "clash v0.1.0\n", out)
}

func TestResolve_LogFromStdin(t *testing.T) {
	out, err := run(t, roundJSON, "resolve", "--seed", "7", "--log", "--hp-summary")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Truckthunders uses attack!",
		"Crunchbucket uses area!",
		"Truckthunders wins.",
		"Truckthunders: 500/500 HP, Crunchbucket: 400/500 HP.",
	}, "\n")+"\n", out)
}

func TestResolve_JSONOutput(t *testing.T) {
	out, err := run(t, roundJSON, "resolve", "--seed", "7")
	require.NoError(t, err)

	var resp struct {
		Player2 struct {
			HitPoints int `json:"hit_points"`
			EX        int `json:"ex"`
		} `json:"Player2"`
		Outcome string `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 400, resp.Player2.HitPoints)
	assert.Equal(t, 100, resp.Player2.EX)
	assert.Equal(t, "priority_wins", resp.Outcome)
}

func TestResolve_RejectsUnknownFields(t *testing.T) {
	_, err := run(t, `{"Player3": {}}`, "resolve")
	assert.ErrorContains(t, err, "reading request")
}

func TestResolve_RejectsInvalidCombatant(t *testing.T) {
	bad := strings.Replace(roundJSON, `"max_hit_points": 500`, `"max_hit_points": 0`, 1)
	_, err := run(t, bad, "resolve")
	assert.ErrorContains(t, err, "player1")
}

func TestAbilities_JSONFilteredByClass(t *testing.T) {
	out, err := run(t, "", "abilities", "--class", "hacker", "--format", "json")
	require.NoError(t, err)

	var views []struct {
		Class        string   `json:"class"`
		Action       string   `json:"action"`
		Name         string   `json:"name"`
		Enhancements []string `json:"enhancements"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.NotEmpty(t, views)
	var flicker bool
	for _, v := range views {
		assert.Equal(t, "hacker", v.Class)
		if v.Name == "Flicker" {
			flicker = true
			assert.Equal(t, "dodge", v.Action)
			assert.Equal(t, []string{"target anti_attack 1", "target anti_area 1"}, v.Enhancements)
		}
	}
	assert.True(t, flicker)
}

func TestAbilities_TableTitleCases(t *testing.T) {
	out, err := run(t, "", "abilities", "--class", "dreamer")
	require.NoError(t, err)
	assert.Contains(t, out, "CLASS")
	assert.Contains(t, out, "Dreamer")
	assert.Contains(t, out, "Moving Sidewalk")
	assert.Contains(t, out, "Waking Nightmare")
	assert.NotContains(t, out, "Hacker")
}

func TestAbilities_Errors(t *testing.T) {
	_, err := run(t, "", "abilities", "--class", "bard")
	assert.Error(t, err)

	_, err = run(t, "", "abilities", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}
