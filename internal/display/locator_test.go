package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/displayctl/internal/display"
	"codeberg.org/mutker/displayctl/internal/errors"
)

func TestSearch(t *testing.T) {
	cfg := dualHead()

	lm, pm, err := cfg.Search("eDP-1")
	require.NoError(t, err)
	assert.Equal(t, "eDP-1", pm.Connector)
	assert.Equal(t, 1920, lm.X)
	assert.False(t, lm.Primary)
}

func TestSearchOrderIndependent(t *testing.T) {
	cfg := dualHead()
	cfg.Monitors[0], cfg.Monitors[1] = cfg.Monitors[1], cfg.Monitors[0]
	cfg.LogicalMonitors[0], cfg.LogicalMonitors[1] = cfg.LogicalMonitors[1], cfg.LogicalMonitors[0]

	lm, pm, err := cfg.Search("HDMI-1")
	require.NoError(t, err)
	assert.Equal(t, "HDMI-1", pm.Connector)
	assert.True(t, lm.Primary)
}

func TestSearchNotFound(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() *display.Config
	}{
		{
			name: "unknown connector",
			cfg:  dualHead,
		},
		{
			name: "physical monitor without logical monitor",
			cfg: func() *display.Config {
				cfg := dualHead()
				cfg.LogicalMonitors = cfg.LogicalMonitors[:1]
				return cfg
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connector := "DP-3"
			if tt.name != "unknown connector" {
				connector = "eDP-1"
			}

			_, _, err := tt.cfg().Search(connector)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrMonitorNotFound))
			assert.True(t, errors.IsNotFound(err))
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, dualHead().Validate())

	twoPrimaries := dualHead()
	twoPrimaries.LogicalMonitors[1].Primary = true
	err := twoPrimaries.Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInconsistentState))
	assert.True(t, errors.IsInvalidArgument(err))

	dangling := dualHead()
	dangling.LogicalMonitors[1].Monitors[0].Connector = "DP-9"
	assert.Error(t, dangling.Validate())

	twoCurrent := dualHead()
	twoCurrent.Monitors[1].Modes[1].IsCurrent = true
	assert.Error(t, twoCurrent.Validate())
}

func TestPhysicalMonitorAccessors(t *testing.T) {
	pm := monitor("eDP-1", mode("a", false), mode("b", true))
	pm.Modes[0].IsPreferred = true
	pm.Properties = map[string]any{"display-name": "Built-in display", "is-builtin": true}

	current, ok := pm.CurrentMode()
	require.True(t, ok)
	assert.Equal(t, "b", current.ID)

	preferred, ok := pm.PreferredMode()
	require.True(t, ok)
	assert.Equal(t, "a", preferred.ID)

	_, ok = pm.Mode("c")
	assert.False(t, ok)

	assert.Equal(t, "Built-in display", pm.DisplayName())
	assert.True(t, pm.IsBuiltin())

	bare := monitor("DP-1")
	assert.Equal(t, "DP-1", bare.DisplayName())
	assert.False(t, bare.IsBuiltin())
	_, ok = bare.CurrentMode()
	assert.False(t, ok)
}
