// Package controller runs displayctl operations against a display backend:
// it reads a snapshot, derives the change and writes it back.
package controller

import (
	"context"

	"codeberg.org/mutker/displayctl/internal/display"
	"codeberg.org/mutker/displayctl/internal/gamma"
)

// Backend reads and writes the compositor's display state.
type Backend interface {
	FetchDisplayConfig(ctx context.Context) (*display.Config, error)
	FetchResources(ctx context.Context) (*display.Resources, error)
	FetchGammaRamp(ctx context.Context, serial, crtcID uint32) (gamma.Ramp, error)
	ApplyConfigs(ctx context.Context, serial uint32, method display.ApplyMethod, configs []display.ApplyConfig) error
	WriteGammaRamp(ctx context.Context, serial, crtcID uint32, ramp gamma.Ramp) error
}

// Options control how a change is written.
type Options struct {
	// Persistent asks the compositor to store the layout.
	Persistent bool
	// DryRun computes the change without applying it.
	DryRun bool
	// Verify has a dry run submit the layout for validation only.
	Verify bool
}
