package mutter

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/displayctl/internal/display"
	"codeberg.org/mutker/displayctl/internal/errors"
	"codeberg.org/mutker/displayctl/internal/gamma"
)

type recordedCall struct {
	method string
	args   []interface{}
}

type fakeCaller struct {
	replies map[string]*dbus.Call
	calls   []recordedCall
}

func (f *fakeCaller) CallWithContext(ctx context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, recordedCall{method: method, args: args})

	if _, ok := ctx.Deadline(); !ok {
		return &dbus.Call{Err: stderrors.New("missing deadline")}
	}
	if reply, ok := f.replies[method]; ok {
		return reply
	}
	return &dbus.Call{}
}

func newFake(method string, body ...interface{}) *fakeCaller {
	return &fakeCaller{replies: map[string]*dbus.Call{Interface + "." + method: {Body: body}}}
}

func currentState() []interface{} {
	return []interface{}{
		uint32(7),
		[]wireMonitor{
			{
				Spec: wireMonitorSpec{Connector: "eDP-1", Vendor: "BOE", Product: "0x095f", Serial: "0x00000000"},
				Modes: []wireMode{
					{
						ID: "2256x1504@60", Width: 2256, Height: 1504, RefreshRate: 59.999,
						PreferredScale: 1.5, SupportedScales: []float64{1, 1.5, 2},
						Properties: map[string]dbus.Variant{
							"is-current":   dbus.MakeVariant(true),
							"is-preferred": dbus.MakeVariant(true),
						},
					},
					{ID: "1920x1200@60", Width: 1920, Height: 1200, RefreshRate: 59.95, PreferredScale: 1, SupportedScales: []float64{1}},
				},
				Properties: map[string]dbus.Variant{
					"is-builtin":   dbus.MakeVariant(true),
					"display-name": dbus.MakeVariant("Built-in display"),
				},
			},
		},
		[]wireLogicalMonitor{
			{
				X: 0, Y: 0, Scale: 1.5, Transform: 5, Primary: true,
				Monitors: []wireMonitorSpec{{Connector: "eDP-1", Vendor: "BOE", Product: "0x095f", Serial: "0x00000000"}},
			},
		},
		map[string]dbus.Variant{
			"layout-mode":                   dbus.MakeVariant(uint32(2)),
			"supports-changing-layout-mode": dbus.MakeVariant(true),
			"renderer":                      dbus.MakeVariant("native"),
		},
	}
}

func TestFetchDisplayConfig(t *testing.T) {
	fake := newFake("GetCurrentState", currentState()...)
	client := NewClient(fake, time.Second, nil)

	cfg, err := client.FetchDisplayConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint32(7), cfg.Serial)
	require.Len(t, cfg.Monitors, 1)
	pm := cfg.Monitors[0]
	assert.Equal(t, "eDP-1", pm.Connector)
	assert.Equal(t, "Built-in display", pm.DisplayName())
	assert.True(t, pm.IsBuiltin())

	current, ok := pm.CurrentMode()
	require.True(t, ok)
	assert.Equal(t, "2256x1504@60", current.ID)
	assert.True(t, current.IsPreferred)
	assert.Nil(t, current.Properties)

	require.Len(t, cfg.LogicalMonitors, 1)
	lm := cfg.LogicalMonitors[0]
	assert.Equal(t, display.Orientation{Rotation: display.RotationRight, Flipped: true}, lm.Orientation)
	assert.InDelta(t, 1.5, lm.Scale, 1e-9)
	assert.True(t, lm.Primary)

	assert.Equal(t, display.LayoutPhysical, cfg.Known.LayoutMode)
	assert.True(t, cfg.Known.SupportsMirroring)
	assert.True(t, cfg.Known.SupportsChangingLayoutMode)
	assert.Equal(t, map[string]any{"renderer": "native"}, cfg.Properties)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "org.gnome.Mutter.DisplayConfig.GetCurrentState", fake.calls[0].method)
}

func TestFetchResources(t *testing.T) {
	fake := newFake("GetResources",
		uint32(7),
		[]wireCrtc{{ID: 40, WinsysID: 87, Width: 2256, Height: 1504, CurrentMode: 0, Transforms: []uint32{0, 1, 2, 3}}},
		[]wireOutput{{ID: 50, WinsysID: 90, CurrentCrtc: 40, PossibleCrtcs: []uint32{40}, Name: "eDP-1", Modes: []uint32{60}}},
		[]wireResourceMode{{ID: 60, WinsysID: 100, Width: 2256, Height: 1504, Frequency: 59.999}},
		int32(8192), int32(8192),
	)

	res, err := NewClient(fake, 0, nil).FetchResources(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint32(7), res.Serial)
	assert.Equal(t, 8192, res.MaxScreenWidth)
	require.Len(t, res.Modes, 1)
	assert.Equal(t, uint32(2256), res.Modes[0].Width)

	crtc, err := res.CrtcFor("eDP-1")
	require.NoError(t, err)
	assert.Equal(t, uint32(40), crtc.ID)
}

func TestGammaRamp(t *testing.T) {
	ramp := gamma.Generate(gamma.Info{Brightness: 1, Red: 1, Green: 1, Blue: 1}, 4)
	fake := newFake("GetCrtcGamma", ramp.Red, ramp.Green, ramp.Blue)
	client := NewClient(fake, time.Second, nil)

	got, err := client.FetchGammaRamp(context.Background(), 7, 40)
	require.NoError(t, err)
	assert.Equal(t, ramp, got)
	assert.Equal(t, []interface{}{uint32(7), uint32(40)}, fake.calls[0].args)

	require.NoError(t, client.WriteGammaRamp(context.Background(), 7, 40, ramp))
	last := fake.calls[len(fake.calls)-1]
	assert.Equal(t, Interface+".SetCrtcGamma", last.method)
	assert.Equal(t, []interface{}{uint32(7), uint32(40), ramp.Red, ramp.Green, ramp.Blue}, last.args)

	err = client.WriteGammaRamp(context.Background(), 7, 40, gamma.Ramp{Red: []uint16{1}})
	assert.True(t, errors.HasCode(err, errors.ErrInvalidRamp))
	assert.Len(t, fake.calls, 2)
}

func TestApplyConfigs(t *testing.T) {
	fake := &fakeCaller{}
	client := NewClient(fake, time.Second, nil)

	configs := []display.ApplyConfig{
		{
			Transform: display.Transform{
				Orientation:  display.Orientation{Rotation: display.RotationLeft},
				Displacement: display.Displacement{X: 1920, Y: 0, Scale: 2},
			},
			Primary:  true,
			Monitors: []display.ApplyMonitor{{Connector: "eDP-1", ModeID: "2256x1504@60"}},
		},
	}

	require.NoError(t, client.ApplyConfigs(context.Background(), 7, display.MethodPersistent, configs))
	require.Len(t, fake.calls, 1)

	args := fake.calls[0].args
	require.Len(t, args, 4)
	assert.Equal(t, uint32(7), args[0])
	assert.Equal(t, uint32(2), args[1])

	wire := args[2].([]wireApplyLogicalMonitor)
	require.Len(t, wire, 1)
	assert.Equal(t, int32(1920), wire[0].X)
	assert.Equal(t, uint32(3), wire[0].Transform)
	assert.True(t, wire[0].Primary)
	assert.Equal(t, "2256x1504@60", wire[0].Monitors[0].ModeID)
}

func TestMapError(t *testing.T) {
	stale := dbus.Error{
		Name: "org.freedesktop.DBus.Error.AccessDenied",
		Body: []interface{}{"The requested configuration is based on stale information"},
	}
	denied := dbus.Error{
		Name: "org.freedesktop.DBus.Error.AccessDenied",
		Body: []interface{}{"Not allowed"},
	}

	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
	}{
		{"stale serial", stale, errors.ErrConflict},
		{"stale serial pointer", &stale, errors.ErrConflict},
		{"other access denied", denied, errors.ErrTransport},
		{"timeout", context.DeadlineExceeded, errors.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCaller{replies: map[string]*dbus.Call{
				Interface + ".ApplyMonitorsConfig": {Err: tt.err},
			}}

			err := NewClient(fake, time.Second, nil).ApplyConfigs(context.Background(), 5, display.MethodTemporary, nil)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code))
			assert.Equal(t, tt.code == errors.ErrConflict, errors.IsConflict(err))
		})
	}
}
