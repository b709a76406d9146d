package core

import "errors"

var (
	// ErrInvalidParameter reports an out-of-range numeric input. The caller
	// should keep its previous result and wait for the next valid input.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnstable reports a numerically ill-conditioned computation, such as
	// a filter designed at an extreme cutoff ratio.
	ErrUnstable = errors.New("numerically unstable")
)
