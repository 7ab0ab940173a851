package aig

import "fmt"

// Strategy selects the algorithmic policy for combining concept vectors
// into an activation tensor. One strategy is in effect for the whole
// engine at any instant; it is not a per-concept setting.
type Strategy int

const (
	// StrategyAdditive adds gain * direction to the tensor.
	StrategyAdditive Strategy = iota
	// StrategyProjection removes the existing component along the direction
	// before adding alpha * strength * direction.
	StrategyProjection
	// StrategyHSpace behaves like StrategyAdditive but only on the "mid"
	// (h-space) layer; other layers pass through unchanged.
	StrategyHSpace
)

func (s Strategy) String() string {
	switch s {
	case StrategyAdditive:
		return "additive"
	case StrategyProjection:
		return "projection"
	case StrategyHSpace:
		return "hspace"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseStrategy parses a strategy name as used in config files.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "additive":
		return StrategyAdditive, nil
	case "projection":
		return StrategyProjection, nil
	case "hspace":
		return StrategyHSpace, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}
