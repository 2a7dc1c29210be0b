package combat

import (
	"go.uber.org/zap"
)

// Engine resolves rounds between two combatants. It holds only read-only
// collaborators and is safe for concurrent use when its Dice is.
type Engine struct {
	catalog   AbilityCatalog
	dice      Dice
	logger    *zap.Logger
	hpSummary bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-round debug records.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithHPSummary appends "<l>: <hp>/<max> HP, <r>: <hp>/<max> HP." to the log
// of every round that reaches scoring.
func WithHPSummary(on bool) Option {
	return func(e *Engine) { e.hpSummary = on }
}

// NewEngine creates an Engine that looks abilities up in catalog and draws
// randomness from d.
//
// Precondition: catalog and d must be non-nil.
// Postcondition: Returns a non-nil Engine; the logger defaults to a no-op.
func NewEngine(catalog AbilityCatalog, d Dice, opts ...Option) *Engine {
	e := &Engine{catalog: catalog, dice: d, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
