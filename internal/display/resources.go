package display

import (
	"fmt"

	"codeberg.org/mutker/displayctl/internal/errors"
)

// Crtc is a scanout engine. CurrentMode is -1 when the CRTC is off.
type Crtc struct {
	ID               uint32   `yaml:"id"`
	WinsysID         int64    `yaml:"winsys_id"`
	X                int      `yaml:"x"`
	Y                int      `yaml:"y"`
	Width            int      `yaml:"width"`
	Height           int      `yaml:"height"`
	CurrentMode      int      `yaml:"current_mode"`
	CurrentTransform uint32   `yaml:"current_transform"`
	Transforms       []uint32 `yaml:"transforms"`
}

// Output is a connector as seen by the hardware. CurrentCrtc is -1 when the
// output is disabled.
type Output struct {
	ID            uint32   `yaml:"id"`
	WinsysID      int64    `yaml:"winsys_id"`
	CurrentCrtc   int      `yaml:"current_crtc"`
	PossibleCrtcs []uint32 `yaml:"possible_crtcs"`
	Name          string   `yaml:"name"`
	Modes         []uint32 `yaml:"modes"`
	Clones        []uint32 `yaml:"clones"`
}

// ResourceMode is a hardware mode.
type ResourceMode struct {
	ID        uint32  `yaml:"id"`
	WinsysID  int64   `yaml:"winsys_id"`
	Width     uint32  `yaml:"width"`
	Height    uint32  `yaml:"height"`
	Frequency float64 `yaml:"frequency"`
	Flags     uint32  `yaml:"flags"`
}

// Resources is the low level view of the display hardware, used for gamma
// control. Serial is shared with Config snapshots.
type Resources struct {
	Serial          uint32         `yaml:"serial"`
	Crtcs           []Crtc         `yaml:"crtcs"`
	Outputs         []Output       `yaml:"outputs"`
	Modes           []ResourceMode `yaml:"modes"`
	MaxScreenWidth  int            `yaml:"max_screen_width"`
	MaxScreenHeight int            `yaml:"max_screen_height"`
}

// CrtcFor resolves the CRTC currently driving the output named connector.
func (r *Resources) CrtcFor(connector string) (Crtc, error) {
	errFactory := errors.New()

	var output *Output
	for i := range r.Outputs {
		if r.Outputs[i].Name == connector {
			output = &r.Outputs[i]
			break
		}
	}
	if output == nil {
		return Crtc{}, errFactory.WithData(ErrMonitorNotFound, connector)
	}

	if output.CurrentCrtc < 0 {
		return Crtc{}, errFactory.WithData(ErrCrtcNotFound, connector+" is disabled")
	}

	for _, crtc := range r.Crtcs {
		if int(crtc.ID) == output.CurrentCrtc {
			return crtc, nil
		}
	}

	return Crtc{}, errFactory.WithData(ErrCrtcNotFound, fmt.Sprintf("crtc %d of %s", output.CurrentCrtc, connector))
}
