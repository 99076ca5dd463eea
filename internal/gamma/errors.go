package gamma

import "codeberg.org/mutker/displayctl/internal/errors"

const (
	ErrInvalidRamp = errors.ErrInvalidRamp
)
