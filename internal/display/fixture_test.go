package display_test

import "codeberg.org/mutker/displayctl/internal/display"

func monitor(connector string, modes ...display.Mode) display.PhysicalMonitor {
	return display.PhysicalMonitor{
		MonitorDescription: display.MonitorDescription{
			Connector: connector,
			Vendor:    "DEL",
			Product:   "U2720Q",
			Serial:    connector + "-0001",
		},
		Modes: modes,
	}
}

func mode(id string, current bool) display.Mode {
	return display.Mode{
		ID:              id,
		Width:           1920,
		Height:          1080,
		RefreshRate:     60,
		PreferredScale:  1,
		SupportedScales: []float64{1, 2},
		IsCurrent:       current,
	}
}

func logical(x, y int, primary bool, connectors ...string) display.LogicalMonitor {
	lm := display.LogicalMonitor{
		Transform: display.Transform{Displacement: display.Displacement{X: x, Y: y, Scale: 1}},
		Primary:   primary,
	}
	for _, c := range connectors {
		lm.Monitors = append(lm.Monitors, display.MonitorDescription{Connector: c})
	}
	return lm
}

// dualHead is an external HDMI-1 monitor as primary with the laptop panel
// eDP-1 to its right.
func dualHead() *display.Config {
	return &display.Config{
		Serial: 5,
		Monitors: []display.PhysicalMonitor{
			monitor("HDMI-1", mode("1920x1080@60", true), mode("1280x720@60", false)),
			monitor("eDP-1", mode("1920x1200@60", true), mode("1920x1200@48", false)),
		},
		LogicalMonitors: []display.LogicalMonitor{
			logical(0, 0, true, "HDMI-1"),
			logical(1920, 0, false, "eDP-1"),
		},
		Known: display.DefaultKnownProperties(),
	}
}
