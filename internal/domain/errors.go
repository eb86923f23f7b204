package domain

import "errors"

var (
	// ErrRuleNotFound means no active rule exists for the tenant and region.
	// There is no fallback rule.
	ErrRuleNotFound = errors.New("delivery rule not found")

	// ErrBusinessDaysUnreachable means the walk examined more candidate days
	// than MaxBusinessDayWalk without collecting enough business days.
	ErrBusinessDaysUnreachable = errors.New("business days unreachable")

	// ErrInvalidRule means a stored rule breaks a structural invariant.
	ErrInvalidRule = errors.New("invalid delivery rule")
)

// MaxBusinessDayWalk bounds the number of candidate civil days examined by a
// single business-day walk.
const MaxBusinessDayWalk = 365
