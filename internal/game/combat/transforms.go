package combat

// transform is a pure rule-matrix rewrite.
type transform func(Rules) Rules

// matrixEffects maps each matrix-altering status to its rewrite when held by
// the left combatant and when held by the right combatant. Both entries must
// produce the same result from the holder's point of view: the left entry
// edits the holder's own row, the right entry edits the rows the holder's
// action is looked up in.
var matrixEffects = map[EffectKind][2]transform{
	// The holder's block loses to area.
	EffectProne: {
		SideLeft:  func(r Rules) Rules { return r.demote(ActionBlock, ActionArea) },
		SideRight: func(r Rules) Rules { return r.promote(ActionArea, ActionBlock) },
	},
	// The holder's dodge loses to block.
	EffectDisorient: {
		SideLeft:  func(r Rules) Rules { return r.demote(ActionDodge, ActionBlock) },
		SideRight: func(r Rules) Rules { return r.promote(ActionBlock, ActionDodge) },
	},
	// The holder's attack wins the attack mirror match.
	EffectHaste: {
		SideLeft:  func(r Rules) Rules { return r.promote(ActionAttack, ActionAttack) },
		SideRight: func(r Rules) Rules { return r.demote(ActionAttack, ActionAttack) },
	},
	// The holder's area beats attack.
	EffectCounterAttack: {
		SideLeft:  func(r Rules) Rules { return r.promote(ActionArea, ActionAttack) },
		SideRight: func(r Rules) Rules { return r.demote(ActionAttack, ActionArea) },
	},
	// The holder's block beats disrupt.
	EffectCounterDisrupt: {
		SideLeft:  func(r Rules) Rules { return r.promote(ActionBlock, ActionDisrupt) },
		SideRight: func(r Rules) Rules { return r.demote(ActionDisrupt, ActionBlock) },
	},
	// The holder's dodge loses to attack.
	EffectLag: {
		SideLeft:  func(r Rules) Rules { return r.demote(ActionDodge, ActionAttack) },
		SideRight: func(r Rules) Rules { return r.promote(ActionAttack, ActionDodge) },
	},
	// The holder's disrupt draws against everything.
	EffectConnected: {
		SideLeft:  func(r Rules) Rules { return r.clear(ActionDisrupt) },
		SideRight: func(r Rules) Rules { return r.strike(ActionDisrupt) },
	},
	// The holder's attack resolves as dodge.
	EffectPistol: {
		SideLeft:  func(r Rules) Rules { return r.alias(ActionAttack, ActionDodge) },
		SideRight: func(r Rules) Rules { return r.substitute(ActionAttack, ActionDodge) },
	},
	// The holder's attack draws against everything.
	EffectShotgun: {
		SideLeft:  func(r Rules) Rules { return r.clear(ActionAttack) },
		SideRight: func(r Rules) Rules { return r.strike(ActionAttack) },
	},
	// The holder's attack resolves as area.
	EffectRocketLauncher: {
		SideLeft:  func(r Rules) Rules { return r.alias(ActionAttack, ActionArea) },
		SideRight: func(r Rules) Rules { return r.substitute(ActionAttack, ActionArea) },
	},
}

// Transform applies kind's matrix rewrite for a holder on side.
//
// Postcondition: ok is false and rules is returned unchanged when kind does
// not alter the matrix.
func Transform(rules Rules, kind EffectKind, side Side) (out Rules, ok bool) {
	t, ok := matrixEffects[kind]
	if !ok {
		return rules, false
	}
	return t[side](rules), true
}
