package config

// Rules selects between strict chess rules and a looser legacy mode.
type Rules struct {
	// StrictCastling forbids castling out of, through, or into an attacked
	// square. When false only the king's destination is tested.
	StrictCastling bool

	// ResolveChecks restricts non-king moves in single check to those that
	// capture the checker or block its ray. When false a pinned-axis filter
	// is the only restriction on non-king moves.
	ResolveChecks bool
}

// DefaultRules returns the strict rule set.
func DefaultRules() Rules {
	return Rules{
		StrictCastling: true,
		ResolveChecks:  true,
	}
}

// LegacyRules returns the looser rule set with every strict toggle off.
func LegacyRules() Rules {
	return Rules{}
}

// Strict reports whether every strict rule is enabled.
func (r Rules) Strict() bool {
	return r.StrictCastling && r.ResolveChecks
}
