package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/clash/internal/arena"
)

// CombatantRepository persists combatant records in the combatants table.
// It implements arena.Store.
type CombatantRepository struct {
	db *pgxpool.Pool
}

// NewCombatantRepository creates a CombatantRepository backed by db.
//
// Precondition: db must be a valid, open connection pool.
func NewCombatantRepository(db *pgxpool.Pool) *CombatantRepository {
	return &CombatantRepository{db: db}
}

var _ arena.Store = (*CombatantRepository)(nil)

// Create validates rec and inserts it under a new id.
//
// Precondition: rec must pass arena.Record.Validate.
// Postcondition: Returns the new id, or an error wrapping combat.ErrInvalidCombatant
// when rec is invalid.
func (r *CombatantRepository) Create(ctx context.Context, rec arena.Record) (uuid.UUID, error) {
	if err := rec.Validate(); err != nil {
		return uuid.Nil, err
	}
	statuses, err := encodeStatuses(rec.StatusEffects)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	_, err = r.db.Exec(ctx, `
		INSERT INTO combatants
			(id, name, character_class, max_hit_points, max_ex, hit_points, ex, status_effects, action, enhanced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, rec.Name, rec.CharacterClass, rec.MaxHitPoints, rec.MaxEX,
		rec.HitPoints, rec.EX, statuses, rec.Action, bool(rec.Enhanced),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting combatant: %w", err)
	}
	return id, nil
}

// Get returns the combatant stored under id.
//
// Postcondition: Returns arena.ErrNotFound when no row matches.
func (r *CombatantRepository) Get(ctx context.Context, id uuid.UUID) (arena.Record, error) {
	var (
		rec      arena.Record
		statuses []byte
		enhanced bool
	)
	err := r.db.QueryRow(ctx, `
		SELECT name, character_class, max_hit_points, max_ex, hit_points, ex, status_effects, action, enhanced
		FROM combatants
		WHERE id = $1`, id,
	).Scan(
		&rec.Name, &rec.CharacterClass, &rec.MaxHitPoints, &rec.MaxEX,
		&rec.HitPoints, &rec.EX, &statuses, &rec.Action, &enhanced,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return arena.Record{}, arena.ErrNotFound
	}
	if err != nil {
		return arena.Record{}, fmt.Errorf("querying combatant %s: %w", id, err)
	}
	rec.Enhanced = arena.Flag(enhanced)
	if err := json.Unmarshal(statuses, &rec.StatusEffects); err != nil {
		return arena.Record{}, fmt.Errorf("decoding status effects of %s: %w", id, err)
	}
	if rec.StatusEffects == nil {
		rec.StatusEffects = []arena.StatusEntry{}
	}
	return rec, nil
}

// Update writes the set fields of diff to the row for id. Unset fields keep
// their stored values.
//
// Postcondition: Returns arena.ErrNotFound when no row matches.
func (r *CombatantRepository) Update(ctx context.Context, id uuid.UUID, diff arena.FieldDiff) error {
	var statuses []byte
	if diff.StatusEffects != nil {
		var err error
		if statuses, err = encodeStatuses(*diff.StatusEffects); err != nil {
			return err
		}
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE combatants SET
			hit_points     = COALESCE($2, hit_points),
			ex             = COALESCE($3, ex),
			status_effects = COALESCE($4::jsonb, status_effects),
			action         = COALESCE($5, action),
			enhanced       = COALESCE($6, enhanced),
			updated_at     = NOW()
		WHERE id = $1`,
		id, diff.HitPoints, diff.EX, statuses, diff.Action, diff.Enhanced,
	)
	if err != nil {
		return fmt.Errorf("updating combatant %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return arena.ErrNotFound
	}
	return nil
}

func encodeStatuses(entries []arena.StatusEntry) ([]byte, error) {
	if entries == nil {
		entries = []arena.StatusEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding status effects: %w", err)
	}
	return data, nil
}
