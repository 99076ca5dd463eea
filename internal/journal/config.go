package journal

import "codeberg.org/mutker/displayctl/internal/errors"

const (
	defaultDirPerm = 0o755
	backupDirName  = "backups"
)

type Config struct {
	DBPath  string
	Enabled bool
}

func (c Config) Validate() error {
	// Only validate DBPath if the journal is enabled
	if c.Enabled && c.DBPath == "" {
		return errors.New().New(ErrInvalidDBPath)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
