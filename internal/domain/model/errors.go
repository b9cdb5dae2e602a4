package model

import "errors"

// Error kinds shared by the computation packages. Callers match them with errors.Is.
var (
	// ErrIncompleteInput means a required compensation figure is missing, zero
	// or not a number, including reference data that has no value for a role.
	ErrIncompleteInput = errors.New("incomplete input")

	// ErrNonPositiveGain means expected compensation does not exceed current
	// compensation for a transition that requires growth.
	ErrNonPositiveGain = errors.New("non-positive gain")

	// ErrInvalidSimulation rejects simulator parameters before iteration.
	ErrInvalidSimulation = errors.New("invalid simulation parameters")

	// ErrInvalidDataset is returned when the compensation dataset fails validation.
	ErrInvalidDataset = errors.New("invalid compensation dataset")
)
