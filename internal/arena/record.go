// Package arena adapts the combat engine to its invocation contract: JSON
// combatant records, the two-player request/response pair, the player store
// and the service that plays one persisted round.
package arena

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cory-johannsen/clash/internal/game/combat"
)

var validate = validator.New()

// StatusEntry is one (name, remaining duration) pair. On the wire it is the
// two-element array ["poison", 2].
type StatusEntry struct {
	Name     string `validate:"required"`
	Duration int    `validate:"gte=1"`
}

// MarshalJSON encodes the entry as [name, duration].
func (s StatusEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.Name, s.Duration})
}

// UnmarshalJSON decodes [name, duration].
func (s *StatusEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status effect must be [name, duration]: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("status effect must be [name, duration], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &s.Name); err != nil {
		return fmt.Errorf("status effect name: %w", err)
	}
	if err := json.Unmarshal(raw[1], &s.Duration); err != nil {
		return fmt.Errorf("status effect duration: %w", err)
	}
	return nil
}

// Flag is a boolean that also accepts the strings "true" and "false" in any
// case, as sent by older clients.
type Flag bool

// UnmarshalJSON accepts true, false, "true", "False" and so on.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		b, err := strconv.ParseBool(strings.ToLower(s))
		if err != nil {
			return fmt.Errorf("enhanced must be a boolean, got %q", s)
		}
		*f = Flag(b)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("enhanced must be a boolean: %w", err)
	}
	*f = Flag(b)
	return nil
}

// Record is the wire and storage form of a combatant.
type Record struct {
	Name           string        `json:"name" validate:"required"`
	CharacterClass string        `json:"character_class" validate:"required,oneof=dreamer cloistered chosen chemist creator hacker architect photonic"`
	MaxHitPoints   int           `json:"max_hit_points" validate:"gte=1"`
	MaxEX          int           `json:"max_ex" validate:"gte=1"`
	HitPoints      int           `json:"hit_points"`
	EX             int           `json:"ex" validate:"gte=0"`
	StatusEffects  []StatusEntry `json:"status_effects" validate:"dive"`
	Action         string        `json:"action" validate:"omitempty,oneof=area attack block disrupt dodge"`
	Enhanced       Flag          `json:"enhanced"`
}

// Validate checks the record's field constraints.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w %q: %w", combat.ErrInvalidCombatant, r.Name, err)
	}
	return nil
}

// ToCombatant validates r and converts it into an engine combatant.
//
// Postcondition: Returns an error wrapping combat.ErrInvalidCombatant, and
// combat.ErrUnknownEffect where a status name has no handler.
func (r Record) ToCombatant() (*combat.Combatant, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	class, err := combat.ParseClass(r.CharacterClass)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", combat.ErrInvalidCombatant, err)
	}
	c := &combat.Combatant{
		Name:     r.Name,
		Class:    class,
		MaxHP:    r.MaxHitPoints,
		MaxEX:    r.MaxEX,
		HP:       r.HitPoints,
		EX:       r.EX,
		Enhanced: bool(r.Enhanced),
	}
	if r.Action != "" {
		if c.Action, err = combat.ParseAction(r.Action); err != nil {
			return nil, fmt.Errorf("%w: %w", combat.ErrInvalidCombatant, err)
		}
	}
	for i, se := range r.StatusEffects {
		kind, err := combat.ParseEffectKind(se.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: status_effects[%d]: %w", combat.ErrInvalidCombatant, i, err)
		}
		c.AddStatus(kind, se.Duration)
	}
	return c, nil
}

// FromCombatant converts an engine combatant back into its record form.
func FromCombatant(c *combat.Combatant) Record {
	r := Record{
		Name:           c.Name,
		CharacterClass: c.Class.String(),
		MaxHitPoints:   c.MaxHP,
		MaxEX:          c.MaxEX,
		HitPoints:      c.HP,
		EX:             c.EX,
		StatusEffects:  make([]StatusEntry, 0, len(c.StatusEffects)),
		Enhanced:       Flag(c.Enhanced),
	}
	if c.Action.Valid() {
		r.Action = c.Action.String()
	}
	for _, se := range c.StatusEffects {
		r.StatusEffects = append(r.StatusEffects, StatusEntry{Name: se.Kind.String(), Duration: se.Duration})
	}
	return r
}

// Clone returns a copy of r that shares no status slice with it.
func (r Record) Clone() Record {
	out := make([]StatusEntry, len(r.StatusEffects))
	copy(out, r.StatusEffects)
	r.StatusEffects = out
	return r
}
