package combat

// ApplyStatus runs both combatants' status sequences against rules: every
// left entry in storage order, then every right entry. Each entry fires once,
// loses one turn of duration and is dropped when it reaches zero.
//
// Precondition: left and right are distinct and valid.
// Postcondition: Returns the rewritten matrix and the ordered lines logged by
// effects. Every surviving entry has Duration >= 1. On error left and right
// may be partially updated and must be discarded.
func ApplyStatus(left, right *Combatant, rules Rules) (Rules, []string, error) {
	rules, log, err := applySide(SideLeft, left, right, rules)
	if err != nil {
		return rules, nil, err
	}
	rules, rlog, err := applySide(SideRight, right, left, rules)
	if err != nil {
		return rules, nil, err
	}
	return rules, append(log, rlog...), nil
}

func applySide(side Side, self, other *Combatant, rules Rules) (Rules, []string, error) {
	var log []string
	held := self.StatusEffects
	survivors := make([]StatusEffect, 0, len(held))
	for _, se := range held {
		var lines []string
		var err error
		rules, lines, err = applyEffect(se.Kind, side, self, other, rules)
		if err != nil {
			return rules, nil, err
		}
		log = append(log, lines...)
		if se.Duration > 1 {
			survivors = append(survivors, StatusEffect{Kind: se.Kind, Duration: se.Duration - 1})
		}
	}
	self.StatusEffects = survivors
	return rules, log, nil
}
