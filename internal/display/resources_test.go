package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/displayctl/internal/display"
	"codeberg.org/mutker/displayctl/internal/errors"
)

func resources() *display.Resources {
	return &display.Resources{
		Serial: 5,
		Crtcs: []display.Crtc{
			{ID: 40, Width: 1920, Height: 1080, CurrentMode: 0},
			{ID: 41, Width: 1920, Height: 1200, CurrentMode: 1},
			{ID: 42, CurrentMode: -1},
		},
		Outputs: []display.Output{
			{ID: 50, Name: "HDMI-1", CurrentCrtc: 40},
			{ID: 51, Name: "eDP-1", CurrentCrtc: 41},
			{ID: 52, Name: "DP-1", CurrentCrtc: -1},
			{ID: 53, Name: "DP-2", CurrentCrtc: 99},
		},
	}
}

func TestCrtcFor(t *testing.T) {
	crtc, err := resources().CrtcFor("eDP-1")
	require.NoError(t, err)
	assert.Equal(t, uint32(41), crtc.ID)

	tests := []struct {
		connector string
		code      errors.ErrorCode
	}{
		{"VGA-1", errors.ErrMonitorNotFound},
		{"DP-1", errors.ErrCrtcNotFound},
		{"DP-2", errors.ErrCrtcNotFound},
	}

	for _, tt := range tests {
		_, err := resources().CrtcFor(tt.connector)
		assert.True(t, errors.HasCode(err, tt.code), tt.connector)
		assert.True(t, errors.IsNotFound(err), tt.connector)
	}
}
