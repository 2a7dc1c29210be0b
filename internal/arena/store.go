package arena

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
)

// ErrNotFound is returned by a Store when no combatant has the requested id.
var ErrNotFound = errors.New("combatant not found")

// FieldDiff lists the mutable record fields that changed. A nil field is
// left untouched by Update.
type FieldDiff struct {
	HitPoints     *int           `json:"hit_points,omitempty"`
	EX            *int           `json:"ex,omitempty"`
	StatusEffects *[]StatusEntry `json:"status_effects,omitempty"`
	Action        *string        `json:"action,omitempty"`
	Enhanced      *bool          `json:"enhanced,omitempty"`
}

// Empty reports whether the diff changes nothing.
func (d FieldDiff) Empty() bool {
	return d.HitPoints == nil && d.EX == nil && d.StatusEffects == nil && d.Action == nil && d.Enhanced == nil
}

// Apply returns r with every set field of d written over it.
func (d FieldDiff) Apply(r Record) Record {
	r = r.Clone()
	if d.HitPoints != nil {
		r.HitPoints = *d.HitPoints
	}
	if d.EX != nil {
		r.EX = *d.EX
	}
	if d.StatusEffects != nil {
		r.StatusEffects = append(make([]StatusEntry, 0, len(*d.StatusEffects)), *d.StatusEffects...)
	}
	if d.Action != nil {
		r.Action = *d.Action
	}
	if d.Enhanced != nil {
		r.Enhanced = Flag(*d.Enhanced)
	}
	return r
}

// Diff returns the fields of after that differ from before.
func Diff(before, after Record) FieldDiff {
	var d FieldDiff
	if before.HitPoints != after.HitPoints {
		d.HitPoints = &after.HitPoints
	}
	if before.EX != after.EX {
		d.EX = &after.EX
	}
	if !slices.Equal(before.StatusEffects, after.StatusEffects) {
		s := append([]StatusEntry{}, after.StatusEffects...)
		d.StatusEffects = &s
	}
	if before.Action != after.Action {
		d.Action = &after.Action
	}
	if before.Enhanced != after.Enhanced {
		b := bool(after.Enhanced)
		d.Enhanced = &b
	}
	return d
}

// Store persists combatant records.
type Store interface {
	// Create stores rec under a new id.
	Create(ctx context.Context, rec Record) (uuid.UUID, error)
	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	// Update writes diff to the record for id, or returns ErrNotFound.
	Update(ctx context.Context, id uuid.UUID, diff FieldDiff) error
}
