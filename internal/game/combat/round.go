package combat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	winnerEX = 50
	loserEX  = 100
	drawEX   = 150
)

// RoundResult describes one resolved round.
type RoundResult struct {
	ID uuid.UUID
	// Outcome is meaningful only when Terminated is false.
	Outcome Outcome
	// Terminated is true when a combatant died to status effects and no
	// outcome was scored.
	Terminated bool
	Log        []string
}

// ResolveRound plays one round between left and right. Left is the priority
// side.
//
// Precondition: left and right are distinct non-nil combatants.
// Postcondition: On success both combatants hold their end-of-round state
// with Enhanced cleared. On error neither combatant is modified; invalid
// input yields an error wrapping ErrInvalidCombatant.
func (e *Engine) ResolveRound(left, right *Combatant) (RoundResult, error) {
	start := time.Now()
	if left == nil || right == nil {
		return RoundResult{}, fmt.Errorf("%w: nil combatant", ErrInvalidCombatant)
	}
	if left == right {
		return RoundResult{}, fmt.Errorf("%w: a combatant cannot fight itself", ErrInvalidCombatant)
	}
	if err := left.Validate(); err != nil {
		return RoundResult{}, err
	}
	if err := right.Validate(); err != nil {
		return RoundResult{}, err
	}

	l, r := left.Clone(), right.Clone()
	res := RoundResult{ID: uuid.New()}
	if err := e.play(l, r, &res); err != nil {
		return RoundResult{}, fmt.Errorf("round %s: %w", res.ID, err)
	}
	*left, *right = *l, *r

	e.logger.Debug("round resolved",
		zap.String("round_id", res.ID.String()),
		zap.String("left", left.Name),
		zap.String("right", right.Name),
		zap.String("outcome", res.Outcome.String()),
		zap.Bool("terminated", res.Terminated),
		zap.Int("left_hp", left.HP),
		zap.Int("right_hp", right.HP),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// play runs the round state machine against l and r, accumulating into res.
func (e *Engine) play(l, r *Combatant, res *RoundResult) error {
	rules, log, err := ApplyStatus(l, r, DefaultRules())
	if err != nil {
		return err
	}
	res.Log = log

	if l.Dead() || r.Dead() {
		for _, c := range []*Combatant{l, r} {
			if c.Dead() {
				res.Log = append(res.Log, fmt.Sprintf("%s died to their status effects.", c.Name))
			}
		}
		res.Terminated = true
		l.Enhanced, r.Enhanced = false, false
		return nil
	}

	res.Log = append(res.Log,
		fmt.Sprintf("%s uses %s!", l.Name, l.Action),
		fmt.Sprintf("%s uses %s!", r.Name, r.Action),
	)
	res.Outcome = DetermineOutcome(rules, l.Action, r.Action)

	switch res.Outcome {
	case PriorityWins:
		err = e.decisive(l, r, res)
	case OtherWins:
		err = e.decisive(r, l, res)
	default:
		err = e.draw(l, r, res)
	}
	if err != nil {
		return err
	}

	if err := e.exPayoff(l, r, res); err != nil {
		return err
	}
	if err := e.exPayoff(r, l, res); err != nil {
		return err
	}

	l.Enhanced, r.Enhanced = false, false
	if e.hpSummary {
		res.Log = append(res.Log, fmt.Sprintf("%s: %d/%d HP, %s: %d/%d HP.",
			l.Name, l.HP, l.MaxHP, r.Name, r.HP, r.MaxHP))
	}
	return nil
}

func (e *Engine) decisive(winner, loser *Combatant, res *RoundResult) error {
	res.Log = append(res.Log, fmt.Sprintf("%s wins.", winner.Name))
	winner.EX += winnerEX
	loser.EX += loserEX

	ability := e.catalog.Find(winner.Class, winner.Action)
	if err := ApplyEffects(ability.Effects, winner, loser, e.dice); err != nil {
		return err
	}
	if !winner.Enhanced {
		return nil
	}
	ok, err := e.enhance(ability, winner, loser, res)
	if err != nil {
		return err
	}
	if !ok {
		res.Log = append(res.Log, fmt.Sprintf("%ss cannot enhance %s!", winner.Class, winner.Action))
	}
	return nil
}

func (e *Engine) draw(l, r *Combatant, res *RoundResult) error {
	res.Log = append(res.Log, fmt.Sprintf("%s and %s tie.", l.Name, r.Name))
	l.EX += drawEX
	r.EX += drawEX

	la := e.catalog.Find(l.Class, l.Action)
	ra := e.catalog.Find(r.Class, r.Action)
	if err := ApplyEffects(la.Effects, l, r, e.dice); err != nil {
		return err
	}
	if err := ApplyEffects(ra.Effects, r, l, e.dice); err != nil {
		return err
	}

	for _, p := range []struct {
		self, other *Combatant
		ability     Ability
	}{{l, r, la}, {r, l, ra}} {
		if !p.self.Enhanced {
			continue
		}
		ok, err := e.enhance(p.ability, p.self, p.other, res)
		if err != nil {
			return err
		}
		if !ok {
			res.Log = append(res.Log, fmt.Sprintf("%s tried to enhance %s, but it can't be enhanced. Nothing happened!",
				p.self.Name, p.self.Action))
		}
	}
	return nil
}

// enhance logs and applies a successful enhancement, or only consumes the
// attempt when the ability has no enhancements.
func (e *Engine) enhance(ability Ability, self, target *Combatant, res *RoundResult) (bool, error) {
	if ability.Enhanceable() {
		res.Log = append(res.Log, fmt.Sprintf("%s enhanced %s! Inflicting %s.",
			self.Name, self.Action, describeEnhancements(ability, self, target)))
	}
	return ApplyEnhancement(ability, self, target, e.dice)
}

// exPayoff fires self's EX move against other when the meter is full.
//
// Postcondition: self.EX < self.MaxEX.
func (e *Engine) exPayoff(self, other *Combatant, res *RoundResult) error {
	if self.EX < self.MaxEX {
		return nil
	}
	self.EX = 0
	move, ok := e.catalog.EXMove(self.Class)
	if !ok {
		return nil
	}
	res.Log = append(res.Log, fmt.Sprintf("%s unleashes %s!", self.Name, move.Name))
	return ApplyEffects(move.Effects, self, other, e.dice)
}
