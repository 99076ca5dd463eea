// Package mutter talks to GNOME Mutter's org.gnome.Mutter.DisplayConfig
// interface on the session bus.
package mutter

import (
	"context"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"codeberg.org/mutker/displayctl/internal/display"
	"codeberg.org/mutker/displayctl/internal/errors"
	"codeberg.org/mutker/displayctl/internal/gamma"
	"codeberg.org/mutker/displayctl/internal/logger"
)

const (
	BusName    = "org.gnome.Mutter.DisplayConfig"
	ObjectPath = dbus.ObjectPath("/org/gnome/Mutter/DisplayConfig")
	Interface  = "org.gnome.Mutter.DisplayConfig"

	DefaultTimeout = 5 * time.Second

	errAccessDenied = "org.freedesktop.DBus.Error.AccessDenied"
)

// Caller issues method calls on a D-Bus object. *dbus.Object satisfies it.
type Caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Client is a display backend backed by Mutter.
type Client struct {
	obj     Caller
	conn    *dbus.Conn
	timeout time.Duration
	logger  logger.Logger
}

// Connect opens a private session bus connection to Mutter.
func Connect(timeout time.Duration, log logger.Logger) (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, errors.New().Wrap(ErrUnavailable, err)
	}

	c := NewClient(conn.Object(BusName, ObjectPath), timeout, log)
	c.conn = conn

	return c, nil
}

// NewClient wraps an existing object. A non-positive timeout uses
// DefaultTimeout.
func NewClient(obj Caller, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		obj:     obj,
		timeout: timeout,
		logger:  log.With("component", "mutter"),
	}
}

// Close releases the bus connection, if the client owns one.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Close(); err != nil {
		return errors.New().Wrap(ErrTransport, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) *dbus.Call {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug().Str("method", method).Msg("Calling display config")

	return c.obj.CallWithContext(ctx, Interface+"."+method, 0, args...)
}

// FetchDisplayConfig reads the current monitor configuration.
func (c *Client) FetchDisplayConfig(ctx context.Context) (*display.Config, error) {
	var (
		serial   uint32
		monitors []wireMonitor
		logical  []wireLogicalMonitor
		props    map[string]dbus.Variant
	)

	call := c.call(ctx, "GetCurrentState")
	if call.Err != nil {
		return nil, mapError(call.Err)
	}
	if err := call.Store(&serial, &monitors, &logical, &props); err != nil {
		return nil, errors.New().Wrap(ErrTransport, err)
	}

	return decodeState(serial, monitors, logical, props), nil
}

// FetchResources reads the CRTC level view of the hardware.
func (c *Client) FetchResources(ctx context.Context) (*display.Resources, error) {
	var (
		serial    uint32
		crtcs     []wireCrtc
		outputs   []wireOutput
		modes     []wireResourceMode
		maxWidth  int32
		maxHeight int32
	)

	call := c.call(ctx, "GetResources")
	if call.Err != nil {
		return nil, mapError(call.Err)
	}
	if err := call.Store(&serial, &crtcs, &outputs, &modes, &maxWidth, &maxHeight); err != nil {
		return nil, errors.New().Wrap(ErrTransport, err)
	}

	return decodeResources(serial, crtcs, outputs, modes, maxWidth, maxHeight), nil
}

// FetchGammaRamp reads the gamma ramp of a CRTC.
func (c *Client) FetchGammaRamp(ctx context.Context, serial, crtcID uint32) (gamma.Ramp, error) {
	var ramp gamma.Ramp

	call := c.call(ctx, "GetCrtcGamma", serial, crtcID)
	if call.Err != nil {
		return gamma.Ramp{}, mapError(call.Err)
	}
	if err := call.Store(&ramp.Red, &ramp.Green, &ramp.Blue); err != nil {
		return gamma.Ramp{}, errors.New().Wrap(ErrTransport, err)
	}

	return ramp, nil
}

// ApplyConfigs submits a complete logical monitor layout.
func (c *Client) ApplyConfigs(ctx context.Context, serial uint32, method display.ApplyMethod, configs []display.ApplyConfig) error {
	call := c.call(ctx, "ApplyMonitorsConfig",
		serial, uint32(method), encodeApplyConfigs(configs), map[string]dbus.Variant{})
	if call.Err != nil {
		return mapError(call.Err)
	}

	return nil
}

// WriteGammaRamp replaces the gamma ramp of a CRTC.
func (c *Client) WriteGammaRamp(ctx context.Context, serial, crtcID uint32, ramp gamma.Ramp) error {
	if err := ramp.Validate(); err != nil {
		return err
	}

	call := c.call(ctx, "SetCrtcGamma", serial, crtcID, ramp.Red, ramp.Green, ramp.Blue)
	if call.Err != nil {
		return mapError(call.Err)
	}

	return nil
}

// mapError classifies a failed call. Mutter rejects a request built from
// an outdated serial with AccessDenied.
func mapError(err error) error {
	errFactory := errors.New()

	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) && isStale(dbusErr) {
		return errFactory.Wrap(ErrConflict, err)
	}
	var dbusErrPtr *dbus.Error
	if errors.As(err, &dbusErrPtr) && isStale(*dbusErrPtr) {
		return errFactory.Wrap(ErrConflict, err)
	}

	return errFactory.Wrap(ErrTransport, err)
}

func isStale(err dbus.Error) bool {
	return err.Name == errAccessDenied && strings.Contains(strings.ToLower(err.Error()), "stale")
}
