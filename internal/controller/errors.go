package controller

import "codeberg.org/mutker/displayctl/internal/errors"

const (
	ErrInvalidArgument = errors.ErrInvalidArgument
)
