// Package display models the compositor's monitor configuration and derives
// the complete apply payload for a single-monitor change.
package display

import "codeberg.org/mutker/displayctl/internal/errors"

// Mode is one video mode supported by a physical monitor.
type Mode struct {
	ID              string         `yaml:"id"`
	Width           int            `yaml:"width"`
	Height          int            `yaml:"height"`
	RefreshRate     float64        `yaml:"refresh_rate"`
	PreferredScale  float64        `yaml:"preferred_scale"`
	SupportedScales []float64      `yaml:"supported_scales"`
	IsCurrent       bool           `yaml:"is_current"`
	IsPreferred     bool           `yaml:"is_preferred"`
	Properties      map[string]any `yaml:"properties,omitempty"`
}

// MonitorDescription identifies a monitor. Connector is the stable key.
type MonitorDescription struct {
	Connector string `yaml:"connector"`
	Vendor    string `yaml:"vendor"`
	Product   string `yaml:"product"`
	Serial    string `yaml:"serial"`
}

// PhysicalMonitor is a connected monitor and the modes it supports.
type PhysicalMonitor struct {
	MonitorDescription `yaml:",inline"`
	Modes              []Mode         `yaml:"modes"`
	Properties         map[string]any `yaml:"properties,omitempty"`
}

// CurrentMode returns the active mode, if any.
func (p *PhysicalMonitor) CurrentMode() (Mode, bool) {
	for _, m := range p.Modes {
		if m.IsCurrent {
			return m, true
		}
	}
	return Mode{}, false
}

// PreferredMode returns the mode the monitor reports as preferred, if any.
func (p *PhysicalMonitor) PreferredMode() (Mode, bool) {
	for _, m := range p.Modes {
		if m.IsPreferred {
			return m, true
		}
	}
	return Mode{}, false
}

// Mode looks up a mode by id.
func (p *PhysicalMonitor) Mode(id string) (Mode, bool) {
	for _, m := range p.Modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// DisplayName returns the human readable name reported by the compositor,
// falling back to the connector.
func (p *PhysicalMonitor) DisplayName() string {
	if name, ok := p.Properties["display-name"].(string); ok && name != "" {
		return name
	}
	return p.Connector
}

// IsBuiltin reports whether the monitor is built in, e.g. a laptop panel.
func (p *PhysicalMonitor) IsBuiltin() bool {
	builtin, _ := p.Properties["is-builtin"].(bool)
	return builtin
}

// LogicalMonitor is a region of the compositor's coordinate space, driven
// by one or more (cloned) physical monitors. Monitors refer to physical
// monitors by connector only.
type LogicalMonitor struct {
	Transform  `yaml:",inline"`
	Primary    bool                 `yaml:"primary"`
	Monitors   []MonitorDescription `yaml:"monitors"`
	Properties map[string]any       `yaml:"properties,omitempty"`
}

// HasConnector reports whether connector drives this logical monitor.
func (l *LogicalMonitor) HasConnector(connector string) bool {
	for _, m := range l.Monitors {
		if m.Connector == connector {
			return true
		}
	}
	return false
}

// LayoutMode is the way logical monitors are laid out on the screen.
type LayoutMode uint32

const (
	// LayoutLogical sizes a logical monitor by its mode divided by its scale.
	LayoutLogical LayoutMode = 1
	// LayoutPhysical sizes a logical monitor by its mode, whatever the scale.
	LayoutPhysical LayoutMode = 2
)

func (m LayoutMode) String() string {
	if m == LayoutPhysical {
		return "physical"
	}
	return "logical"
}

// MarshalYAML renders the layout mode by name.
func (m LayoutMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// KnownProperties are the global properties the compositor documents.
type KnownProperties struct {
	SupportsMirroring          bool       `yaml:"supports_mirroring"`
	LayoutMode                 LayoutMode `yaml:"layout_mode"`
	SupportsChangingLayoutMode bool       `yaml:"supports_changing_layout_mode"`
	GlobalScaleRequired        bool       `yaml:"global_scale_required"`
}

// DefaultKnownProperties returns the values implied when the compositor
// omits a property.
func DefaultKnownProperties() KnownProperties {
	return KnownProperties{
		SupportsMirroring: true,
		LayoutMode:        LayoutLogical,
	}
}

// Config is one snapshot of the display configuration. Serial must be
// passed back when applying a configuration derived from it.
type Config struct {
	Serial          uint32            `yaml:"serial"`
	Monitors        []PhysicalMonitor `yaml:"monitors"`
	LogicalMonitors []LogicalMonitor  `yaml:"logical_monitors"`
	Known           KnownProperties   `yaml:"known_properties"`
	Properties      map[string]any    `yaml:"properties,omitempty"`
}

// PhysicalMonitor finds the physical monitor attached to connector.
func (c *Config) PhysicalMonitor(connector string) (*PhysicalMonitor, bool) {
	for i := range c.Monitors {
		if c.Monitors[i].Connector == connector {
			return &c.Monitors[i], true
		}
	}
	return nil, false
}

// Validate checks the snapshot invariants: every connector referenced by a
// logical monitor names exactly one physical monitor, at most one logical
// monitor is primary, and no physical monitor has two current modes.
func (c *Config) Validate() error {
	errFactory := errors.New()

	seen := make(map[string]int, len(c.Monitors))
	for _, m := range c.Monitors {
		seen[m.Connector]++

		current := 0
		for _, mode := range m.Modes {
			if mode.IsCurrent {
				current++
			}
		}
		if current > 1 {
			return errFactory.WithData(ErrInconsistentState, "multiple current modes on "+m.Connector)
		}
	}

	primaries := 0
	for _, lm := range c.LogicalMonitors {
		if lm.Primary {
			primaries++
		}
		for _, desc := range lm.Monitors {
			if seen[desc.Connector] != 1 {
				return errFactory.WithData(ErrInconsistentState, "unmatched connector "+desc.Connector)
			}
		}
	}

	if primaries > 1 {
		return errFactory.WithData(ErrInconsistentState, "multiple primary logical monitors")
	}

	return nil
}
