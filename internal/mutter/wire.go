package mutter

import "github.com/godbus/dbus/v5"

// Wire layouts of the DisplayConfig interface. Field order follows the
// D-Bus signatures.

// (ssss)
type wireMonitorSpec struct {
	Connector string
	Vendor    string
	Product   string
	Serial    string
}

// (siiddada{sv})
type wireMode struct {
	ID              string
	Width           int32
	Height          int32
	RefreshRate     float64
	PreferredScale  float64
	SupportedScales []float64
	Properties      map[string]dbus.Variant
}

// ((ssss)a(siiddada{sv})a{sv})
type wireMonitor struct {
	Spec       wireMonitorSpec
	Modes      []wireMode
	Properties map[string]dbus.Variant
}

// (iiduba(ssss)a{sv})
type wireLogicalMonitor struct {
	X          int32
	Y          int32
	Scale      float64
	Transform  uint32
	Primary    bool
	Monitors   []wireMonitorSpec
	Properties map[string]dbus.Variant
}

// (ssa{sv})
type wireApplyMonitor struct {
	Connector  string
	ModeID     string
	Properties map[string]dbus.Variant
}

// (iiduba(ssa{sv}))
type wireApplyLogicalMonitor struct {
	X         int32
	Y         int32
	Scale     float64
	Transform uint32
	Primary   bool
	Monitors  []wireApplyMonitor
}

// (uxiiiiiuaua{sv})
type wireCrtc struct {
	ID               uint32
	WinsysID         int64
	X                int32
	Y                int32
	Width            int32
	Height           int32
	CurrentMode      int32
	CurrentTransform uint32
	Transforms       []uint32
	Properties       map[string]dbus.Variant
}

// (uxiausauaua{sv})
type wireOutput struct {
	ID            uint32
	WinsysID      int64
	CurrentCrtc   int32
	PossibleCrtcs []uint32
	Name          string
	Modes         []uint32
	Clones        []uint32
	Properties    map[string]dbus.Variant
}

// (uxuudu)
type wireResourceMode struct {
	ID        uint32
	WinsysID  int64
	Width     uint32
	Height    uint32
	Frequency float64
	Flags     uint32
}
