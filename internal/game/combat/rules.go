package combat

// Row is one action's entry in the rule matrix: the actions it beats and the
// actions it loses to when consulted from the priority (left) side.
type Row struct {
	Beats ActionSet
	Loses ActionSet
}

// Rules is the per-round rule matrix indexed by Action.
// It is a value type: every transform returns a new matrix and never mutates
// a matrix held elsewhere.
type Rules [ActionDodge + 1]Row

// DefaultRules returns the fixed starting matrix. Each action beats exactly two
// actions, loses to exactly two, and draws against itself.
//
// Postcondition: for every a in Actions, Row(a).Beats.Len() == Row(a).Loses.Len() == 2.
func DefaultRules() Rules {
	var r Rules
	r[ActionArea] = Row{Beats: NewActionSet(ActionDisrupt, ActionDodge), Loses: NewActionSet(ActionAttack, ActionBlock)}
	r[ActionAttack] = Row{Beats: NewActionSet(ActionDisrupt, ActionArea), Loses: NewActionSet(ActionBlock, ActionDodge)}
	r[ActionBlock] = Row{Beats: NewActionSet(ActionArea, ActionAttack), Loses: NewActionSet(ActionDisrupt, ActionDodge)}
	r[ActionDisrupt] = Row{Beats: NewActionSet(ActionBlock, ActionDodge), Loses: NewActionSet(ActionAttack, ActionArea)}
	r[ActionDodge] = Row{Beats: NewActionSet(ActionAttack, ActionBlock), Loses: NewActionSet(ActionArea, ActionDisrupt)}
	return r
}

// Row returns the matrix entry for a.
func (r Rules) Row(a Action) Row { return r[a] }

// Outcome is the result of comparing two declared actions.
type Outcome int

const (
	Draw Outcome = iota
	PriorityWins
	OtherWins
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case PriorityWins:
		return "priority_wins"
	case OtherWins:
		return "other_wins"
	default:
		return "draw"
	}
}

// DetermineOutcome resolves priority's action against other's action by
// consulting only the priority side's row.
//
// Precondition: both actions are valid.
// Postcondition: PriorityWins iff other is in Beats; OtherWins iff other is in
// Loses (and not in Beats); Draw otherwise.
func DetermineOutcome(rules Rules, priority, other Action) Outcome {
	row := rules[priority]
	switch {
	case row.Beats.Has(other):
		return PriorityWins
	case row.Loses.Has(other):
		return OtherWins
	default:
		return Draw
	}
}

// promote makes row beat a: a leaves Loses and joins Beats.
func (r Rules) promote(row, a Action) Rules {
	r[row].Loses = r[row].Loses.Remove(a)
	r[row].Beats = r[row].Beats.Add(a)
	return r
}

// demote makes row lose to a: a leaves Beats and joins Loses.
func (r Rules) demote(row, a Action) Rules {
	r[row].Beats = r[row].Beats.Remove(a)
	r[row].Loses = r[row].Loses.Add(a)
	return r
}

// alias replaces row's entry with a copy of src's entry.
func (r Rules) alias(row, src Action) Rules {
	r[row] = r[src]
	return r
}

// clear empties row so that it draws against everything.
func (r Rules) clear(row Action) Rules {
	r[row] = Row{}
	return r
}

// substitute makes actor behave like as when it appears as the opponent: actor
// is removed from every set and re-added wherever as is present.
func (r Rules) substitute(actor, as Action) Rules {
	for _, a := range Actions {
		r[a].Beats = swapMember(r[a].Beats, actor, as)
		r[a].Loses = swapMember(r[a].Loses, actor, as)
	}
	return r
}

// strike removes actor from every set so that every row draws against it.
func (r Rules) strike(actor Action) Rules {
	for _, a := range Actions {
		r[a].Beats = r[a].Beats.Remove(actor)
		r[a].Loses = r[a].Loses.Remove(actor)
	}
	return r
}

func swapMember(s ActionSet, actor, as Action) ActionSet {
	s = s.Remove(actor)
	if s.Has(as) {
		s = s.Add(actor)
	}
	return s
}
