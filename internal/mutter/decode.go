package mutter

import (
	"github.com/godbus/dbus/v5"

	"codeberg.org/mutker/displayctl/internal/display"
)

const (
	propSupportsMirroring          = "supports-mirroring"
	propLayoutMode                 = "layout-mode"
	propSupportsChangingLayoutMode = "supports-changing-layout-mode"
	propGlobalScaleRequired        = "global-scale-required"

	propIsCurrent   = "is-current"
	propIsPreferred = "is-preferred"
)

// properties unpacks variants, dropping the keys in known.
func properties(in map[string]dbus.Variant, known ...string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v.Value()
	}
	for _, k := range known {
		delete(out, k)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func asBool(v dbus.Variant, ok bool) (bool, bool) {
	if !ok {
		return false, false
	}
	switch b := v.Value().(type) {
	case bool:
		return b, true
	case uint32:
		return b != 0, true
	case int32:
		return b != 0, true
	case byte:
		return b != 0, true
	default:
		return false, false
	}
}

func asUint(v dbus.Variant, ok bool) (uint32, bool) {
	if !ok {
		return 0, false
	}
	switch n := v.Value().(type) {
	case uint32:
		return n, true
	case int32:
		return uint32(n), true
	case byte:
		return uint32(n), true
	default:
		return 0, false
	}
}

func knownProperties(props map[string]dbus.Variant) display.KnownProperties {
	known := display.DefaultKnownProperties()

	if b, ok := asBool(lookup(props, propSupportsMirroring)); ok {
		known.SupportsMirroring = b
	}
	if n, ok := asUint(lookup(props, propLayoutMode)); ok && display.LayoutMode(n) == display.LayoutPhysical {
		known.LayoutMode = display.LayoutPhysical
	}
	if b, ok := asBool(lookup(props, propSupportsChangingLayoutMode)); ok {
		known.SupportsChangingLayoutMode = b
	}
	if b, ok := asBool(lookup(props, propGlobalScaleRequired)); ok {
		known.GlobalScaleRequired = b
	}

	return known
}

func lookup(props map[string]dbus.Variant, key string) (dbus.Variant, bool) {
	v, ok := props[key]
	return v, ok
}

func decodeMode(w wireMode) display.Mode {
	current, _ := asBool(lookup(w.Properties, propIsCurrent))
	preferred, _ := asBool(lookup(w.Properties, propIsPreferred))

	return display.Mode{
		ID:              w.ID,
		Width:           int(w.Width),
		Height:          int(w.Height),
		RefreshRate:     w.RefreshRate,
		PreferredScale:  w.PreferredScale,
		SupportedScales: w.SupportedScales,
		IsCurrent:       current,
		IsPreferred:     preferred,
		Properties:      properties(w.Properties, propIsCurrent, propIsPreferred),
	}
}

func decodeDescription(w wireMonitorSpec) display.MonitorDescription {
	return display.MonitorDescription{
		Connector: w.Connector,
		Vendor:    w.Vendor,
		Product:   w.Product,
		Serial:    w.Serial,
	}
}

func decodeState(serial uint32, monitors []wireMonitor, logical []wireLogicalMonitor, props map[string]dbus.Variant) *display.Config {
	cfg := &display.Config{
		Serial:          serial,
		Monitors:        make([]display.PhysicalMonitor, 0, len(monitors)),
		LogicalMonitors: make([]display.LogicalMonitor, 0, len(logical)),
		Known:           knownProperties(props),
		Properties: properties(props,
			propSupportsMirroring, propLayoutMode, propSupportsChangingLayoutMode, propGlobalScaleRequired),
	}

	for _, m := range monitors {
		pm := display.PhysicalMonitor{
			MonitorDescription: decodeDescription(m.Spec),
			Modes:              make([]display.Mode, 0, len(m.Modes)),
			Properties:         properties(m.Properties),
		}
		for _, mode := range m.Modes {
			pm.Modes = append(pm.Modes, decodeMode(mode))
		}
		cfg.Monitors = append(cfg.Monitors, pm)
	}

	for _, l := range logical {
		lm := display.LogicalMonitor{
			Transform: display.Transform{
				Orientation: display.OrientationFromBits(l.Transform),
				Displacement: display.Displacement{
					X:     int(l.X),
					Y:     int(l.Y),
					Scale: l.Scale,
				},
			},
			Primary:    l.Primary,
			Monitors:   make([]display.MonitorDescription, 0, len(l.Monitors)),
			Properties: properties(l.Properties),
		}
		for _, desc := range l.Monitors {
			lm.Monitors = append(lm.Monitors, decodeDescription(desc))
		}
		cfg.LogicalMonitors = append(cfg.LogicalMonitors, lm)
	}

	return cfg
}

func decodeResources(serial uint32, crtcs []wireCrtc, outputs []wireOutput, modes []wireResourceMode, maxWidth, maxHeight int32) *display.Resources {
	res := &display.Resources{
		Serial:          serial,
		Crtcs:           make([]display.Crtc, 0, len(crtcs)),
		Outputs:         make([]display.Output, 0, len(outputs)),
		Modes:           make([]display.ResourceMode, 0, len(modes)),
		MaxScreenWidth:  int(maxWidth),
		MaxScreenHeight: int(maxHeight),
	}

	for _, c := range crtcs {
		res.Crtcs = append(res.Crtcs, display.Crtc{
			ID:               c.ID,
			WinsysID:         c.WinsysID,
			X:                int(c.X),
			Y:                int(c.Y),
			Width:            int(c.Width),
			Height:           int(c.Height),
			CurrentMode:      int(c.CurrentMode),
			CurrentTransform: c.CurrentTransform,
			Transforms:       c.Transforms,
		})
	}

	for _, o := range outputs {
		res.Outputs = append(res.Outputs, display.Output{
			ID:            o.ID,
			WinsysID:      o.WinsysID,
			CurrentCrtc:   int(o.CurrentCrtc),
			PossibleCrtcs: o.PossibleCrtcs,
			Name:          o.Name,
			Modes:         o.Modes,
			Clones:        o.Clones,
		})
	}

	for _, m := range modes {
		res.Modes = append(res.Modes, display.ResourceMode(m))
	}

	return res
}

func encodeApplyConfigs(configs []display.ApplyConfig) []wireApplyLogicalMonitor {
	out := make([]wireApplyLogicalMonitor, 0, len(configs))
	for _, c := range configs {
		lm := wireApplyLogicalMonitor{
			X:         int32(c.X),
			Y:         int32(c.Y),
			Scale:     c.Scale,
			Transform: c.Orientation.Bits(),
			Primary:   c.Primary,
			Monitors:  make([]wireApplyMonitor, 0, len(c.Monitors)),
		}
		for _, m := range c.Monitors {
			lm.Monitors = append(lm.Monitors, wireApplyMonitor{
				Connector:  m.Connector,
				ModeID:     m.ModeID,
				Properties: map[string]dbus.Variant{},
			})
		}
		out = append(out, lm)
	}
	return out
}
