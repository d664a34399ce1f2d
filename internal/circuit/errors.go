package circuit

import "errors"

// Domain errors for model evaluation.
var (
	// ErrInvalidParams indicates a non-positive or non-finite R or C, or a non-finite V.
	ErrInvalidParams = errors.New("circuit: invalid circuit parameters")

	// ErrInvalidPoints indicates a sample count below one.
	ErrInvalidPoints = errors.New("circuit: number of points must be at least 1")

	// ErrInvalidWindow indicates a negative or non-finite simulation window.
	ErrInvalidWindow = errors.New("circuit: invalid simulation window")

	// ErrUnknownMode indicates a mode outside charging, discharging and both.
	ErrUnknownMode = errors.New("circuit: unknown simulation mode")
)
