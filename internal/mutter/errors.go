package mutter

import "codeberg.org/mutker/displayctl/internal/errors"

const (
	ErrConflict    = errors.ErrConflict
	ErrTransport   = errors.ErrTransport
	ErrUnavailable = errors.ErrUnavailable
)
