package display

import "codeberg.org/mutker/displayctl/internal/errors"

const (
	// Lookup Errors
	ErrMonitorNotFound = errors.ErrMonitorNotFound
	ErrCrtcNotFound    = errors.ErrCrtcNotFound

	// Snapshot Errors
	ErrNoCurrentMode     = errors.ErrNoCurrentMode
	ErrInconsistentState = errors.ErrInconsistentState

	// Request Errors
	ErrInvalidArgument  = errors.ErrInvalidArgument
	ErrNoActions        = errors.ErrNoActions
	ErrAmbiguousActions = errors.ErrAmbiguousActions
	ErrUnknownMode      = errors.ErrUnknownMode
)
