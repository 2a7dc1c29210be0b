package arena

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/clash/internal/game/combat"
)

// ErrSameCombatant is returned when a round names one combatant on both sides.
var ErrSameCombatant = errors.New("a combatant cannot fight itself")

// Picker chooses uniformly among options. *dice.Roller satisfies it.
type Picker interface {
	Pick(reason string, options []string) int
}

// RoundRequest asks the service to play one round between two stored
// combatants. When OpponentAction is empty the opponent's stance is picked at
// random.
type RoundRequest struct {
	PlayerID         uuid.UUID `json:"player_id" validate:"required"`
	OpponentID       uuid.UUID `json:"opponent_id" validate:"required"`
	Action           string    `json:"action" validate:"required,oneof=area attack block disrupt dodge"`
	Enhanced         Flag      `json:"enhanced"`
	OpponentAction   string    `json:"opponent_action" validate:"omitempty,oneof=area attack block disrupt dodge"`
	OpponentEnhanced Flag      `json:"opponent_enhanced"`
}

// RoundResponse is the outcome of a persisted round. The records reflect what
// was written back, including any respawn.
type RoundResponse struct {
	Player   Record   `json:"player"`
	Opponent Record   `json:"opponent"`
	Message  []string `json:"message"`
	RoundID  string   `json:"round_id"`
}

// Service loads two stored combatants, plays a round and persists the
// changes. Rounds touching the same combatant are serialised.
type Service struct {
	engine Resolver
	store  Store
	picker Picker
	logger *zap.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewService creates a Service.
//
// Precondition: engine, store, picker and logger must be non-nil.
func NewService(engine Resolver, store Store, picker Picker, logger *zap.Logger) *Service {
	return &Service{
		engine: engine,
		store:  store,
		picker: picker,
		logger: logger,
		locks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Service) lockFor(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// lockPair locks both ids in byte order so that two rounds over the same pair
// cannot deadlock, and returns the matching unlock.
func (s *Service) lockPair(a, b uuid.UUID) func() {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	la, lb := s.lockFor(a), s.lockFor(b)
	la.Lock()
	lb.Lock()
	return func() {
		lb.Unlock()
		la.Unlock()
	}
}

// PlayRound plays one round for req.PlayerID (priority side) against
// req.OpponentID. When either side ends the round at or below zero HP both
// are respawned at full HP with no EX and no status effects.
//
// Postcondition: Both records are updated with only the fields that changed.
// Returns ErrNotFound for an unknown id and ErrSameCombatant when the ids match.
func (s *Service) PlayRound(ctx context.Context, req RoundRequest) (RoundResponse, error) {
	if err := validate.Struct(req); err != nil {
		return RoundResponse{}, fmt.Errorf("%w: %w", combat.ErrInvalidCombatant, err)
	}
	if req.PlayerID == req.OpponentID {
		return RoundResponse{}, ErrSameCombatant
	}
	unlock := s.lockPair(req.PlayerID, req.OpponentID)
	defer unlock()

	player, err := s.store.Get(ctx, req.PlayerID)
	if err != nil {
		return RoundResponse{}, fmt.Errorf("loading player %s: %w", req.PlayerID, err)
	}
	opponent, err := s.store.Get(ctx, req.OpponentID)
	if err != nil {
		return RoundResponse{}, fmt.Errorf("loading opponent %s: %w", req.OpponentID, err)
	}

	storedPlayer, storedOpponent := player.Clone(), opponent.Clone()
	player.Action, player.Enhanced = req.Action, req.Enhanced
	opponent.Action, opponent.Enhanced = req.OpponentAction, req.OpponentEnhanced
	if opponent.Action == "" {
		names := make([]string, len(combat.Actions))
		for i, a := range combat.Actions {
			names[i] = a.String()
		}
		opponent.Action = names[s.picker.Pick("opponent_action", names)]
	}

	resp, err := Resolve(s.engine, Request{Player1: player, Player2: opponent})
	if err != nil {
		return RoundResponse{}, err
	}
	after := RoundResponse{Player: resp.Player1, Opponent: resp.Player2, Message: resp.Message, RoundID: resp.RoundID}

	switch {
	case after.Player.HitPoints <= 0:
		after.Message = append(after.Message, fmt.Sprintf("%s died! Rezzing. Die less you scrub.", after.Player.Name))
		after.Player, after.Opponent = respawn(after.Player), respawn(after.Opponent)
	case after.Opponent.HitPoints <= 0:
		after.Message = append(after.Message, fmt.Sprintf("%s died! Rezzing. Great job winning.", after.Opponent.Name))
		after.Player, after.Opponent = respawn(after.Player), respawn(after.Opponent)
	default:
		after.Message = append(after.Message, fmt.Sprintf("%s has %d HP left.", after.Opponent.Name, after.Opponent.HitPoints))
	}

	if err := s.persist(ctx, req.PlayerID, storedPlayer, after.Player); err != nil {
		return RoundResponse{}, err
	}
	if err := s.persist(ctx, req.OpponentID, storedOpponent, after.Opponent); err != nil {
		return RoundResponse{}, err
	}

	s.logger.Info("round played",
		zap.String("round_id", after.RoundID),
		zap.String("player_id", req.PlayerID.String()),
		zap.String("opponent_id", req.OpponentID.String()),
		zap.String("outcome", resp.Outcome),
	)
	return after, nil
}

func (s *Service) persist(ctx context.Context, id uuid.UUID, before, after Record) error {
	diff := Diff(before, after)
	if diff.Empty() {
		return nil
	}
	if err := s.store.Update(ctx, id, diff); err != nil {
		return fmt.Errorf("updating %s: %w", id, err)
	}
	return nil
}

// respawn restores r to full health with an empty EX meter and no statuses.
func respawn(r Record) Record {
	r.HitPoints = r.MaxHitPoints
	r.EX = 0
	r.StatusEffects = []StatusEntry{}
	return r
}
