package main

import (
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/displayctl/internal/config"
	"codeberg.org/mutker/displayctl/internal/controller"
	"codeberg.org/mutker/displayctl/internal/journal"
	"codeberg.org/mutker/displayctl/internal/lock"
	"codeberg.org/mutker/displayctl/internal/logger"
	"codeberg.org/mutker/displayctl/internal/mutter"
)

// backendFactory connects to the display server. The returned func releases
// the connection.
type backendFactory func(cfg *config.Config, log logger.Logger) (controller.Backend, func() error, error)

func connectMutter(cfg *config.Config, log logger.Logger) (controller.Backend, func() error, error) {
	client, err := mutter.Connect(cfg.Timeout, log)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

// app carries the state shared by all commands of one invocation.
type app struct {
	configFile string
	newBackend backendFactory

	cfg     *config.Config
	log     logger.Logger
	closers []func() error
}

// load reads the configuration and sets up logging.
func (a *app) load(cmd *cobra.Command) error {
	var opts []config.Option
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}

	cfg, err := config.Load(cmd.Flags(), opts...)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(level, logger.IsService())

	a.cfg = cfg
	a.log = logger.Get().With("command", cmd.Name())
	a.log.Debug().Dur("timeout", cfg.Timeout).Bool("journal", cfg.Journal).Msg("Config loaded")

	return nil
}

// controller connects the backend and journal. Writers also take the
// instance lock. Callers must defer close once this succeeds.
func (a *app) controller(write bool) (*controller.Controller, error) {
	if write {
		l := lock.New(a.cfg.LockDir)
		if err := l.Acquire(); err != nil {
			return nil, err
		}
		a.closers = append(a.closers, l.Release)
	}

	rec, err := a.journal()
	if err != nil {
		a.close()
		return nil, err
	}

	backend, closeBackend, err := a.newBackend(a.cfg, a.log)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, closeBackend)

	return controller.New(backend, rec, a.log), nil
}

func (a *app) journal() (journal.Recorder, error) {
	rec, err := journal.NewService(journal.Config{
		DBPath:  a.cfg.JournalDB,
		Enabled: a.cfg.Journal,
	}, a.log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, rec.Close)

	return rec, nil
}

// close releases everything in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn().Err(err).Msg("Failed to release resource")
		}
	}
	a.closers = nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
