package journal_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/displayctl/internal/errors"
	"codeberg.org/mutker/displayctl/internal/journal"
	"codeberg.org/mutker/displayctl/internal/logger"
)

func open(t *testing.T, path string) journal.Recorder {
	t.Helper()

	rec, err := journal.NewService(journal.Config{DBPath: path, Enabled: true}, logger.Nop())
	require.NoError(t, err)
	return rec
}

func TestRecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "journal.db")
	rec := open(t, path)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []journal.Entry{
		{ID: "a", Timestamp: base, Operation: "modify", Connector: "eDP-1", Serial: 5, Method: "temporary", Detail: "setting monitor as primary", Outcome: journal.OutcomeApplied},
		{ID: "b", Timestamp: base.Add(time.Minute), Operation: "brightness", Connector: "eDP-1", Serial: 6, Detail: "brightness 0.5", Outcome: journal.OutcomeDryRun},
		{ID: "c", Timestamp: base.Add(2 * time.Minute), Operation: "modify", Connector: "HDMI-1", Serial: 6, Method: "persistent", Persistent: true, Detail: "setting rotation to Left", Outcome: journal.OutcomeFailed, Error: "Display configuration changed since it was read"},
	}
	for i := range entries {
		require.NoError(t, rec.Record(context.Background(), &entries[i]))
	}

	got, err := rec.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entries[2], got[0])
	assert.Equal(t, entries[1], got[1])

	require.NoError(t, rec.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	reopened := open(t, path)
	defer reopened.Close()

	all, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecordRejectsInvalidEntries(t *testing.T) {
	rec := open(t, filepath.Join(t.TempDir(), "journal.db"))
	defer rec.Close()

	err := rec.Record(context.Background(), nil)
	assert.True(t, errors.HasCode(err, journal.ErrInvalidEntry))

	err = rec.Record(context.Background(), &journal.Entry{Operation: "modify"})
	assert.True(t, errors.HasCode(err, journal.ErrInvalidEntry))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = rec.Record(ctx, &journal.Entry{ID: "x"})
	assert.True(t, errors.HasCode(err, errors.ErrTimeout))

	_, err = rec.Recent(context.Background(), 0)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestDuplicateID(t *testing.T) {
	rec := open(t, filepath.Join(t.TempDir(), "journal.db"))
	defer rec.Close()

	entry := &journal.Entry{ID: "dup", Operation: "modify", Outcome: journal.OutcomeApplied}
	require.NoError(t, rec.Record(context.Background(), entry))

	err := rec.Record(context.Background(), entry)
	assert.True(t, errors.HasCode(err, journal.ErrStorageWrite))
}

func TestDisabledJournal(t *testing.T) {
	fromConfig, err := journal.NewService(journal.Config{}, logger.Nop())
	require.NoError(t, err)

	for _, rec := range []journal.Recorder{fromConfig, journal.Disabled()} {
		require.NoError(t, rec.Record(context.Background(), &journal.Entry{ID: "a"}))
		entries, err := rec.Recent(context.Background(), 5)
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, rec.Close())
	}
}

func TestInvalidConfig(t *testing.T) {
	_, err := journal.NewService(journal.Config{Enabled: true}, logger.Nop())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidConfig))
	assert.True(t, errors.HasCode(err, journal.ErrInvalidDBPath))
}

func TestSchemaMismatchBacksUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	rec := open(t, path)
	require.NoError(t, rec.Record(context.Background(), &journal.Entry{ID: "old", Operation: "modify"}))
	require.NoError(t, rec.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO schema_versions (version, applied_at) VALUES (99, datetime('now'))`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	rec = open(t, path)
	defer rec.Close()

	entries, err := rec.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	backups, err := filepath.Glob(filepath.Join(dir, "backups", "journal_v99_*.db"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
