package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/displayctl/internal/display"
	"codeberg.org/mutker/displayctl/internal/errors"
)

func TestOrientationBits(t *testing.T) {
	for bits := uint32(0); bits < 8; bits++ {
		assert.Equal(t, bits, display.OrientationFromBits(bits).Bits())
	}

	o := display.OrientationFromBits(0x7 | 0x10)
	assert.Equal(t, display.Orientation{Rotation: display.RotationLeft, Flipped: true}, o)
	assert.Equal(t, uint32(7), o.Bits())
}

func TestOrientationString(t *testing.T) {
	tests := []struct {
		bits uint32
		want string
	}{
		{0, "Normal"},
		{1, "Right"},
		{2, "Inverted"},
		{3, "Left"},
		{4, "Flipped Normal"},
		{7, "Flipped Left"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, display.OrientationFromBits(tt.bits).String())
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		input   string
		want    display.Orientation
		wantErr bool
	}{
		{input: "normal", want: display.Orientation{}},
		{input: "Left", want: display.Orientation{Rotation: display.RotationLeft}},
		{input: "left,flipped", want: display.Orientation{Rotation: display.RotationLeft, Flipped: true}},
		{input: "FLIPPED", want: display.Orientation{Flipped: true}},
		{input: "flipped, inverted", want: display.Orientation{Rotation: display.RotationInverted, Flipped: true}},
		{input: "right", want: display.Orientation{Rotation: display.RotationRight}},
		{input: "left,right", wantErr: true},
		{input: "sideways", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := display.ParseOrientation(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDisplacement(t *testing.T) {
	d, err := display.ParseDisplacement("1920, -10,1.5")
	require.NoError(t, err)
	assert.Equal(t, display.Displacement{X: 1920, Y: -10, Scale: 1.5}, d)
	assert.Equal(t, "x: 1920, y: -10, scale: 1.5", d.String())

	d, err = display.ParseDisplacement("2147483647,-2147483648,1")
	require.NoError(t, err)
	assert.Equal(t, display.Displacement{X: 2147483647, Y: -2147483648, Scale: 1}, d)

	inputs := []string{
		"", "1,2", "1,2,3,4", "a,2,1", "1,b,1", "1,2,c", "1,2,0",
		"2147483648,0,1", "0,-2147483649,1", "4294967296,0,1",
	}
	for _, input := range inputs {
		_, err := display.ParseDisplacement(input)
		assert.True(t, errors.IsInvalidArgument(err), input)
	}
}

func TestParseScale(t *testing.T) {
	s, err := display.ParseScale("2")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, s, 1e-9)

	for _, input := range []string{"-1", "0", "NaN", "Inf", "-Inf", "x"} {
		_, err = display.ParseScale(input)
		assert.True(t, errors.IsInvalidArgument(err), input)
	}
}
