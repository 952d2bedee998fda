package core

import "errors"

var (
	// ErrInvalidSize reports a non-positive grid side.
	ErrInvalidSize = errors.New("invalid grid size")
	// ErrOutOfRange reports a coordinate outside [0, side).
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidRuleConfig reports empty rule sets or out-of-range parameters.
	ErrInvalidRuleConfig = errors.New("invalid rule config")
)
