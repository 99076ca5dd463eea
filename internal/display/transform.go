package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"codeberg.org/mutker/displayctl/internal/errors"
)

// Rotation is a clockwise rotation in quarter turns.
type Rotation uint8

const (
	RotationNormal Rotation = iota
	RotationRight
	RotationInverted
	RotationLeft
)

func (r Rotation) String() string {
	switch r {
	case RotationRight:
		return "Right"
	case RotationInverted:
		return "Inverted"
	case RotationLeft:
		return "Left"
	default:
		return "Normal"
	}
}

const (
	rotationMask = 0x3
	flippedBit   = 0x4
)

// Orientation is a rotation combined with an optional horizontal flip.
type Orientation struct {
	Rotation Rotation
	Flipped  bool
}

// OrientationFromBits decodes the compositor's transform value. Bits above
// the flip bit are ignored.
func OrientationFromBits(bits uint32) Orientation {
	return Orientation{
		Rotation: Rotation(bits & rotationMask),
		Flipped:  bits&flippedBit != 0,
	}
}

// Bits encodes the orientation as the compositor's transform value.
func (o Orientation) Bits() uint32 {
	bits := uint32(o.Rotation) & rotationMask
	if o.Flipped {
		bits |= flippedBit
	}
	return bits
}

func (o Orientation) String() string {
	if o.Flipped {
		return "Flipped " + o.Rotation.String()
	}
	return o.Rotation.String()
}

// MarshalYAML renders the orientation as its description.
func (o Orientation) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

// ParseOrientation parses comma separated tokens such as "left,flipped".
// At most one rotation token may be given; none means normal.
func ParseOrientation(s string) (Orientation, error) {
	errFactory := errors.New()

	var (
		o           Orientation
		hasRotation bool
	)

	for _, token := range strings.Split(s, ",") {
		token = strings.ToLower(strings.TrimSpace(token))

		var r Rotation
		switch token {
		case "flipped":
			o.Flipped = true
			continue
		case "normal":
			r = RotationNormal
		case "right":
			r = RotationRight
		case "inverted":
			r = RotationInverted
		case "left":
			r = RotationLeft
		default:
			return Orientation{}, errFactory.WithData(ErrInvalidArgument, fmt.Sprintf("unknown orientation %q", token))
		}

		if hasRotation {
			return Orientation{}, errFactory.WithData(ErrInvalidArgument, "more than one rotation in "+s)
		}
		o.Rotation = r
		hasRotation = true
	}

	return o, nil
}

// Displacement is the position of a logical monitor and its scale.
type Displacement struct {
	X     int     `yaml:"x"`
	Y     int     `yaml:"y"`
	Scale float64 `yaml:"scale"`
}

func (d Displacement) String() string {
	return fmt.Sprintf("x: %d, y: %d, scale: %s", d.X, d.Y, strconv.FormatFloat(d.Scale, 'f', -1, 64))
}

// ParseDisplacement parses "x,y,scale".
func ParseDisplacement(s string) (Displacement, error) {
	errFactory := errors.New()

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Displacement{}, errFactory.WithData(ErrInvalidArgument, fmt.Sprintf("expected x,y,scale, got %q", s))
	}

	// The compositor takes positions as int32.
	x, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return Displacement{}, errFactory.Wrap(ErrInvalidArgument, err)
	}
	y, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return Displacement{}, errFactory.Wrap(ErrInvalidArgument, err)
	}
	scale, err := ParseScale(parts[2])
	if err != nil {
		return Displacement{}, err
	}

	return Displacement{X: int(x), Y: int(y), Scale: scale}, nil
}

// ParseScale parses a positive scale factor.
func ParseScale(s string) (float64, error) {
	errFactory := errors.New()

	scale, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errFactory.Wrap(ErrInvalidArgument, err)
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return 0, errFactory.WithData(ErrInvalidArgument, fmt.Sprintf("scale must be a finite positive number, got %v", scale))
	}

	return scale, nil
}

// Transform is where a logical monitor sits and how it is turned.
type Transform struct {
	Orientation  Orientation `yaml:"orientation"`
	Displacement `yaml:",inline"`
}

func (t Transform) String() string {
	return t.Displacement.String() + ", " + t.Orientation.String()
}
