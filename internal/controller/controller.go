package controller

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeberg.org/mutker/displayctl/internal/display"
	"codeberg.org/mutker/displayctl/internal/errors"
	"codeberg.org/mutker/displayctl/internal/gamma"
	"codeberg.org/mutker/displayctl/internal/journal"
	"codeberg.org/mutker/displayctl/internal/logger"
)

type Controller struct {
	backend Backend
	journal journal.Recorder
	logger  logger.Logger
	now     func() time.Time
}

// New returns a controller. A nil recorder disables the journal.
func New(backend Backend, rec journal.Recorder, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = journal.Disabled()
	}

	return &Controller{
		backend: backend,
		journal: rec,
		logger:  log,
		now:     time.Now,
	}
}

// Query returns the current configuration.
func (c *Controller) Query(ctx context.Context) (*display.Config, error) {
	return c.backend.FetchDisplayConfig(ctx)
}

// Describe returns the logical and physical monitor behind connector.
func (c *Controller) Describe(ctx context.Context, connector string) (display.LogicalMonitor, display.PhysicalMonitor, error) {
	cfg, err := c.backend.FetchDisplayConfig(ctx)
	if err != nil {
		return display.LogicalMonitor{}, display.PhysicalMonitor{}, err
	}

	return cfg.Search(connector)
}

// ModifyResult describes a modify operation.
type ModifyResult struct {
	ID        string
	Connector string
	Serial    uint32
	Actions   []display.Action
	Configs   []display.ApplyConfig
	Method    display.ApplyMethod
	Outcome   journal.Outcome
}

// Applied reports whether the compositor changed the layout.
func (r *ModifyResult) Applied() bool {
	return r.Outcome == journal.OutcomeApplied
}

// Modify applies actions to the monitor on connector. An empty action list
// is not an error: nothing is read or written and the outcome is
// OutcomeNoChanges.
func (c *Controller) Modify(ctx context.Context, connector string, actions []display.Action, opts Options) (*ModifyResult, error) {
	res := &ModifyResult{
		ID:        uuid.NewString(),
		Connector: connector,
		Actions:   actions,
	}
	log := c.logger.With("operation_id", res.ID)

	if len(actions) == 0 {
		res.Outcome = journal.OutcomeNoChanges
		log.Info().Str("connector", connector).Msg("No changes requested")
		c.record(ctx, log, c.modifyEntry(res, opts, nil))
		return res, nil
	}

	if err := display.CheckActions(actions); err != nil {
		return nil, err
	}

	cfg, err := c.backend.FetchDisplayConfig(ctx)
	if err != nil {
		return nil, err
	}
	res.Serial = cfg.Serial

	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Uint32("serial", cfg.Serial).Msg("Display configuration snapshot is inconsistent")
	}
	for _, skipped := range display.SkippedLogicalMonitors(cfg) {
		log.Debug().Str("connector", skipped).Msg("Skipping logical monitor without physical monitor")
	}

	configs, err := display.BuildApplyConfigs(cfg, connector, actions)
	if err != nil {
		return nil, err
	}
	res.Configs = configs

	for _, a := range actions {
		log.Debug().Str("connector", connector).Msg(a.String())
	}

	switch {
	case opts.DryRun && !opts.Verify:
		res.Outcome = journal.OutcomeDryRun
		c.record(ctx, log, c.modifyEntry(res, opts, nil))
		return res, nil
	case opts.DryRun:
		res.Method = display.MethodVerify
		res.Outcome = journal.OutcomeVerified
	default:
		res.Method = display.MethodFor(opts.Persistent)
		res.Outcome = journal.OutcomeApplied
	}

	if err := c.backend.ApplyConfigs(ctx, cfg.Serial, res.Method, configs); err != nil {
		res.Outcome = journal.OutcomeFailed
		c.record(ctx, log, c.modifyEntry(res, opts, err))
		if errors.IsConflict(err) {
			log.Warn().Uint32("serial", cfg.Serial).Msg("Display configuration changed while modifying")
		}
		return res, err
	}

	log.Info().
		Str("connector", connector).
		Uint32("serial", cfg.Serial).
		Str("method", res.Method.String()).
		Msg("Display configuration submitted")

	c.record(ctx, log, c.modifyEntry(res, opts, nil))

	return res, nil
}

func (c *Controller) modifyEntry(res *ModifyResult, opts Options, err error) *journal.Entry {
	descriptions := make([]string, 0, len(res.Actions))
	for _, a := range res.Actions {
		descriptions = append(descriptions, a.String())
	}

	entry := &journal.Entry{
		ID:         res.ID,
		Timestamp:  c.now(),
		Operation:  "modify",
		Connector:  res.Connector,
		Serial:     res.Serial,
		Persistent: opts.Persistent,
		Detail:     strings.Join(descriptions, "; "),
		Outcome:    res.Outcome,
	}
	if res.Outcome != journal.OutcomeNoChanges && res.Outcome != journal.OutcomeDryRun {
		entry.Method = res.Method.String()
	}
	if err != nil {
		entry.Error = err.Error()
	}

	return entry
}

// BrightnessResult describes a gamma adjustment.
type BrightnessResult struct {
	ID        string
	Connector string
	Serial    uint32
	CrtcID    uint32
	Before    gamma.Info
	After     gamma.Info
	Outcome   journal.Outcome
}

// Brightness rescales the gamma ramp of the CRTC driving connector, keeping
// its per channel exponents.
func (c *Controller) Brightness(ctx context.Context, connector string, brightness float64, opts Options) (*BrightnessResult, error) {
	if math.IsNaN(brightness) || math.IsInf(brightness, 0) || brightness < 0 {
		return nil, errors.New().WithData(ErrInvalidArgument, fmt.Sprintf("brightness must be a finite non-negative number, got %v", brightness))
	}

	res := &BrightnessResult{
		ID:        uuid.NewString(),
		Connector: connector,
	}
	log := c.logger.With("operation_id", res.ID)

	serial, crtc, ramp, err := c.readRamp(ctx, connector)
	if err != nil {
		return nil, err
	}
	res.Serial = serial
	res.CrtcID = crtc.ID

	info, err := gamma.Fit(ramp)
	if err != nil {
		return nil, err
	}
	res.Before = info
	res.After = info.WithBrightness(brightness)

	log.Debug().
		Uint32("crtc", crtc.ID).
		Str("before", res.Before.String()).
		Str("after", res.After.String()).
		Msg("Fitted gamma ramp")

	if opts.DryRun {
		res.Outcome = journal.OutcomeDryRun
		c.record(ctx, log, c.brightnessEntry(res, nil))
		return res, nil
	}

	if err := c.backend.WriteGammaRamp(ctx, serial, crtc.ID, gamma.Generate(res.After, ramp.Size())); err != nil {
		res.Outcome = journal.OutcomeFailed
		c.record(ctx, log, c.brightnessEntry(res, err))
		return res, err
	}

	res.Outcome = journal.OutcomeApplied
	c.record(ctx, log, c.brightnessEntry(res, nil))

	log.Info().
		Str("connector", connector).
		Uint32("crtc", crtc.ID).
		Float64("brightness", brightness).
		Msg("Gamma ramp written")

	return res, nil
}

// GammaInfo fits the current gamma ramp of the CRTC driving connector.
func (c *Controller) GammaInfo(ctx context.Context, connector string) (gamma.Info, error) {
	_, _, ramp, err := c.readRamp(ctx, connector)
	if err != nil {
		return gamma.Info{}, err
	}

	return gamma.Fit(ramp)
}

func (c *Controller) readRamp(ctx context.Context, connector string) (uint32, display.Crtc, gamma.Ramp, error) {
	resources, err := c.backend.FetchResources(ctx)
	if err != nil {
		return 0, display.Crtc{}, gamma.Ramp{}, err
	}

	crtc, err := resources.CrtcFor(connector)
	if err != nil {
		return 0, display.Crtc{}, gamma.Ramp{}, err
	}

	ramp, err := c.backend.FetchGammaRamp(ctx, resources.Serial, crtc.ID)
	if err != nil {
		return 0, display.Crtc{}, gamma.Ramp{}, err
	}

	return resources.Serial, crtc, ramp, nil
}

func (c *Controller) brightnessEntry(res *BrightnessResult, err error) *journal.Entry {
	entry := &journal.Entry{
		ID:        res.ID,
		Timestamp: c.now(),
		Operation: "brightness",
		Connector: res.Connector,
		Serial:    res.Serial,
		Detail:    fmt.Sprintf("crtc %d: %s -> %s", res.CrtcID, res.Before, res.After),
		Outcome:   res.Outcome,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	return entry
}

// History lists the most recent journal entries.
func (c *Controller) History(ctx context.Context, limit int) ([]journal.Entry, error) {
	return c.journal.Recent(ctx, limit)
}

// record writes entry to the journal. A journal failure never fails the
// operation it describes.
func (c *Controller) record(ctx context.Context, log logger.Logger, entry *journal.Entry) {
	if err := c.journal.Record(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("Failed to record journal entry")
	}
}
