package display

import (
	"fmt"
	"strconv"

	"codeberg.org/mutker/displayctl/internal/errors"
)

// Action is a single change to the target monitor of a modify request.
type Action interface {
	fmt.Stringer
	action()
}

// SetOrientation sets the rotation and flip of the target.
type SetOrientation struct {
	Orientation Orientation
}

// SetDisplacement sets the position and scale of the target.
type SetDisplacement struct {
	Displacement Displacement
}

// SetScale sets only the scale of the target.
type SetScale struct {
	Scale float64
}

// SetMode switches the target's physical monitor to another mode.
type SetMode struct {
	ModeID string
}

// SetPrimary makes the target the primary monitor.
type SetPrimary struct{}

func (SetOrientation) action()  {}
func (SetDisplacement) action() {}
func (SetScale) action()        {}
func (SetMode) action()         {}
func (SetPrimary) action()      {}

func (a SetOrientation) String() string {
	return "setting rotation to " + a.Orientation.String()
}

func (a SetDisplacement) String() string {
	return "setting position to " + a.Displacement.String()
}

func (a SetScale) String() string {
	return "setting scale to " + strconv.FormatFloat(a.Scale, 'f', -1, 64)
}

func (a SetMode) String() string {
	return "setting mode to " + a.ModeID
}

func (SetPrimary) String() string {
	return "setting monitor as primary"
}

type field uint8

const (
	fieldOrientation field = iota
	fieldPosition
	fieldScale
	fieldMode
	fieldPrimary
)

// writes returns the value each field is set to by a.
func writes(a Action) map[field]any {
	switch a := a.(type) {
	case SetOrientation:
		return map[field]any{fieldOrientation: a.Orientation}
	case SetDisplacement:
		return map[field]any{
			fieldPosition: [2]int{a.Displacement.X, a.Displacement.Y},
			fieldScale:    a.Displacement.Scale,
		}
	case SetScale:
		return map[field]any{fieldScale: a.Scale}
	case SetMode:
		return map[field]any{fieldMode: a.ModeID}
	case SetPrimary:
		return map[field]any{fieldPrimary: true}
	default:
		return nil
	}
}

// CheckActions rejects requests where two actions write the same field with
// different values. Repeating an identical write is allowed.
func CheckActions(actions []Action) error {
	written := make(map[field]any)
	owner := make(map[field]Action)

	for _, a := range actions {
		for f, v := range writes(a) {
			if prev, ok := written[f]; ok && prev != v {
				return errors.New().WithData(ErrAmbiguousActions, fmt.Sprintf("%q conflicts with %q", owner[f], a))
			}
			written[f] = v
			owner[f] = a
		}
	}

	return nil
}
