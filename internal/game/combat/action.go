package combat

import (
	"fmt"
	"strings"
)

// Action is one of the five stances a combatant declares each round.
// The zero value (ActionUnknown) is intentionally invalid.
type Action int

const (
	ActionUnknown Action = iota // zero value; intentionally invalid
	ActionArea
	ActionAttack
	ActionBlock
	ActionDisrupt
	ActionDodge
)

// Actions lists every valid action in canonical order.
var Actions = []Action{ActionArea, ActionAttack, ActionBlock, ActionDisrupt, ActionDodge}

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionArea:
		return "area"
	case ActionAttack:
		return "attack"
	case ActionBlock:
		return "block"
	case ActionDisrupt:
		return "disrupt"
	case ActionDodge:
		return "dodge"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the five declared stances.
func (a Action) Valid() bool { return a >= ActionArea && a <= ActionDodge }

// ParseAction converts a wire name into an Action.
//
// Postcondition: Returns a valid Action or an error naming the bad input.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if a.String() == strings.ToLower(s) {
			return a, nil
		}
	}
	return ActionUnknown, fmt.Errorf("unknown action %q", s)
}

// ActionSet is a set of actions stored as a bitmask.
// Iteration order is always the canonical Actions order.
type ActionSet uint8

// NewActionSet builds a set from the given actions.
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.Add(a)
	}
	return s
}

func (s ActionSet) Has(a Action) bool { return s&(1<<uint(a)) != 0 }
func (s ActionSet) Add(a Action) ActionSet { return s | 1<<uint(a) }
func (s ActionSet) Remove(a Action) ActionSet { return s &^ (1 << uint(a)) }
func (s ActionSet) Empty() bool { return s == 0 }

// Len returns the number of actions in the set.
func (s ActionSet) Len() int {
	n := 0
	for _, a := range Actions {
		if s.Has(a) {
			n++
		}
	}
	return n
}

// Actions returns the members in canonical order.
func (s ActionSet) Actions() []Action {
	out := make([]Action, 0, len(Actions))
	for _, a := range Actions {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// First returns the lowest-ordinal member, or (ActionUnknown, false) when empty.
func (s ActionSet) First() (Action, bool) {
	for _, a := range Actions {
		if s.Has(a) {
			return a, true
		}
	}
	return ActionUnknown, false
}

// String renders the set as "{a, b}".
func (s ActionSet) String() string {
	names := make([]string, 0, len(Actions))
	for _, a := range s.Actions() {
		names = append(names, a.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
