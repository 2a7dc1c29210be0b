package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger. Every roll and pick is logged at debug
// level so that a round's random decisions can be reconstructed.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn draws a uniform int in [0, n) without logging.
func (r *Roller) Intn(n int) int { return r.src.Intn(n) }

// Roll evaluates expr and logs the result.
//
// Postcondition: result.Total() == sum(result.Dice) + expr.Modifier.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// Pick selects one of options uniformly and logs the choice under reason.
//
// Precondition: len(options) > 0.
func (r *Roller) Pick(reason string, options []string) int {
	i := r.src.Intn(len(options))
	r.logger.Debug("random pick",
		zap.String("reason", reason),
		zap.Strings("options", options),
		zap.String("picked", options[i]),
	)
	return i
}
