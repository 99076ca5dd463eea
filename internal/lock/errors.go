package lock

import "codeberg.org/mutker/displayctl/internal/errors"

const (
	ErrAlreadyRunning = errors.ErrAlreadyRunning
)
