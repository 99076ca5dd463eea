package display

import "codeberg.org/mutker/displayctl/internal/errors"

// ApplyMethod tells the compositor what to do with a submitted layout.
type ApplyMethod uint32

const (
	// MethodVerify validates the layout without applying it.
	MethodVerify ApplyMethod = iota
	// MethodTemporary applies the layout until the compositor reverts it.
	MethodTemporary
	// MethodPersistent applies the layout and stores it.
	MethodPersistent
)

// MethodFor picks the apply method for a real, non dry-run change.
func MethodFor(persistent bool) ApplyMethod {
	if persistent {
		return MethodPersistent
	}
	return MethodTemporary
}

func (m ApplyMethod) String() string {
	switch m {
	case MethodVerify:
		return "verify"
	case MethodPersistent:
		return "persistent"
	default:
		return "temporary"
	}
}

// ApplyMonitor assigns a mode to one physical monitor of a logical monitor.
type ApplyMonitor struct {
	Connector string `yaml:"connector"`
	ModeID    string `yaml:"mode_id"`
}

// ApplyConfig is the desired state of one logical monitor.
type ApplyConfig struct {
	Transform `yaml:",inline"`
	Primary   bool           `yaml:"primary"`
	Monitors  []ApplyMonitor `yaml:"monitors"`
}

// BuildApplyConfigs derives the full layout to submit when the monitor on
// connector is changed by actions. The compositor replaces the whole layout
// on apply, so every other logical monitor is carried over with its current
// transform and mode. Entries keep the snapshot's order.
func BuildApplyConfigs(cfg *Config, connector string, actions []Action) ([]ApplyConfig, error) {
	errFactory := errors.New()

	if len(actions) == 0 {
		return nil, errFactory.New(ErrNoActions)
	}

	target, physical, err := cfg.Search(connector)
	if err != nil {
		return nil, err
	}

	current, ok := physical.CurrentMode()
	if !ok {
		return nil, errFactory.WithData(ErrNoCurrentMode, connector)
	}

	seed := ApplyConfig{
		Transform: target.Transform,
		Primary:   target.Primary,
		Monitors:  []ApplyMonitor{{Connector: connector, ModeID: current.ID}},
	}

	primaryIsChanging := false
	for _, a := range actions {
		switch a := a.(type) {
		case SetOrientation:
			seed.Orientation = a.Orientation
		case SetDisplacement:
			seed.Displacement = a.Displacement
		case SetScale:
			seed.Scale = a.Scale
		case SetMode:
			if _, ok := physical.Mode(a.ModeID); !ok {
				return nil, errFactory.WithData(ErrUnknownMode, a.ModeID+" on "+connector)
			}
			seed.Monitors[0].ModeID = a.ModeID
		case SetPrimary:
			seed.Primary = true
			primaryIsChanging = true
		}
	}

	configs := make([]ApplyConfig, 0, len(cfg.LogicalMonitors))
	for _, lm := range cfg.LogicalMonitors {
		if lm.HasConnector(connector) {
			configs = append(configs, seed)
			continue
		}

		if len(lm.Monitors) == 0 {
			continue
		}

		other := lm.Monitors[0].Connector
		pm, ok := cfg.PhysicalMonitor(other)
		if !ok {
			continue
		}

		mode, ok := pm.CurrentMode()
		if !ok {
			return nil, errFactory.WithData(ErrNoCurrentMode, other)
		}

		configs = append(configs, ApplyConfig{
			Transform: lm.Transform,
			Primary:   lm.Primary && !primaryIsChanging,
			Monitors:  []ApplyMonitor{{Connector: other, ModeID: mode.ID}},
		})
	}

	return configs, nil
}

// SkippedLogicalMonitors lists the first connectors of logical monitors that
// BuildApplyConfigs drops because no physical monitor matches them.
func SkippedLogicalMonitors(cfg *Config) []string {
	var skipped []string
	for _, lm := range cfg.LogicalMonitors {
		if len(lm.Monitors) == 0 {
			continue
		}
		if _, ok := cfg.PhysicalMonitor(lm.Monitors[0].Connector); !ok {
			skipped = append(skipped, lm.Monitors[0].Connector)
		}
	}
	return skipped
}
