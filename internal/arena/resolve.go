package arena

import (
	"fmt"

	"github.com/cory-johannsen/clash/internal/game/combat"
)

// Resolver plays one round. *combat.Engine satisfies it.
type Resolver interface {
	ResolveRound(left, right *combat.Combatant) (combat.RoundResult, error)
}

// Request is the two-player invocation payload. Player1 has priority.
type Request struct {
	Player1 Record `json:"Player1"`
	Player2 Record `json:"Player2"`
}

// Response carries both updated records and the ordered round log.
type Response struct {
	Player1    Record   `json:"Player1"`
	Player2    Record   `json:"Player2"`
	Message    []string `json:"message"`
	RoundID    string   `json:"round_id"`
	Outcome    string   `json:"outcome"`
	Terminated bool     `json:"terminated"`
}

// Resolve decodes both records, plays the round and encodes the result.
//
// Postcondition: Malformed records yield an error wrapping
// combat.ErrInvalidCombatant before any round logic runs.
func Resolve(r Resolver, req Request) (Response, error) {
	left, err := req.Player1.ToCombatant()
	if err != nil {
		return Response{}, fmt.Errorf("player1: %w", err)
	}
	right, err := req.Player2.ToCombatant()
	if err != nil {
		return Response{}, fmt.Errorf("player2: %w", err)
	}
	res, err := r.ResolveRound(left, right)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Player1:    FromCombatant(left),
		Player2:    FromCombatant(right),
		Message:    res.Log,
		RoundID:    res.ID.String(),
		Outcome:    res.Outcome.String(),
		Terminated: res.Terminated,
	}, nil
}
