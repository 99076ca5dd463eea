package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/displayctl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel  = string(LogLevelWarning)
	DefaultTimeout   = 5 * time.Second
	defaultEnvPrefix = "DISPLAYCTL"
	configName       = "displayctl"
)

type Config struct {
	LogLevel   string        `mapstructure:"log_level"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Persistent bool          `mapstructure:"persistent"`
	Verify     bool          `mapstructure:"verify"`
	Journal    bool          `mapstructure:"journal"`
	JournalDB  string        `mapstructure:"journal_db"`
	LockDir    string        `mapstructure:"lock_dir"`
}

// flagKeys maps configuration keys to the command line flags that override them.
var flagKeys = map[string]string{
	"log_level":  "log-level",
	"timeout":    "timeout",
	"persistent": "persistent",
	"verify":     "verify",
	"journal":    "journal",
	"journal_db": "journal-db",
	"lock_dir":   "lock-dir",
}

// RegisterFlags defines the flags Load knows how to bind.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.Duration("timeout", DefaultTimeout, "Timeout for calls to the display server")
	fs.Bool("persistent", false, "Ask the compositor to remember the new layout")
	fs.Bool("verify", true, "Let the compositor validate layouts on dry runs")
	fs.Bool("journal", false, "Record applied changes in the journal database")
	fs.String("journal-db", defaultJournalPath(), "Path to the journal database")
	fs.String("lock-dir", os.TempDir(), "Directory holding the instance lock file")
}

// Load reads defaults, the configuration file, the environment and finally
// the flags in fs (which may be nil), later sources overriding earlier ones.
func Load(fs *pflag.FlagSet, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := options{}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(defaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, o); err != nil {
		return nil, err
	}

	if fs != nil {
		for key, name := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(strings.ToLower(c.LogLevel)).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Timeout <= 0 {
		return errFactory.WithData(errors.ErrInvalidTimeout, c.Timeout.String())
	}

	if c.Journal && c.JournalDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "journal enabled without journal_db")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("persistent", false)
	v.SetDefault("verify", true)
	v.SetDefault("journal", false)
	v.SetDefault("journal_db", defaultJournalPath())
	v.SetDefault("lock_dir", os.TempDir())
}

func readConfigFile(v *viper.Viper, o options) error {
	errFactory := errors.New()

	path := o.configPath
	if path == "" {
		path = os.Getenv(defaultEnvPrefix + "_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("/etc")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, configName))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	return nil
}

func defaultJournalPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, configName, "journal.db")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".local", "state", configName, "journal.db")
}
