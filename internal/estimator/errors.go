package estimator

import "errors"

var (
	// ErrInsufficientData means fewer than two usable records survived
	// normalization, so no trend can be fitted.
	ErrInsufficientData = errors.New("not enough transactions to estimate")

	// ErrInvalidArea means the requested surface area is not positive.
	ErrInvalidArea = errors.New("surface area must be positive")

	// ErrInvalidStanding means the requested standing is not one of the
	// known property conditions.
	ErrInvalidStanding = errors.New("unknown property standing")
)
