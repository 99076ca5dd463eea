package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/mutker/displayctl/internal/errors"
	"codeberg.org/mutker/displayctl/internal/logger"
)

type repository struct {
	db     *sql.DB
	logger logger.Logger
	cfg    Config
}

func newRepository(cfg Config, log logger.Logger) (*repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	// WAL mode, wait up to 5s on a locked database
	dsn := "file:" + cfg.DBPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := validateAndUpdateSchema(db, cfg.DBPath, log); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	log.Debug().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Journal repository initialized")

	return &repository{
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

func (r *repository) insert(ctx context.Context, e *Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertEntrySQL,
		e.ID,
		ts.UTC().UnixNano(),
		e.Operation,
		e.Connector,
		int64(e.Serial),
		e.Method,
		boolToInt(e.Persistent),
		e.Detail,
		string(e.Outcome),
		e.Error,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to insert journal entry")
		return errors.New().Wrap(ErrStorageWrite, err)
	}

	r.logger.Debug().
		Str("id", e.ID).
		Str("outcome", string(e.Outcome)).
		Msg("Recorded journal entry")

	return nil
}

func (r *repository) recent(ctx context.Context, limit int) ([]Entry, error) {
	errFactory := errors.New()

	rows, err := r.db.QueryContext(ctx, selectRecentSQL, limit)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageRead, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			ts         int64
			serial     int64
			persistent int
			outcome    string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Operation, &e.Connector, &serial,
			&e.Method, &persistent, &e.Detail, &outcome, &e.Error); err != nil {
			return nil, errFactory.Wrap(ErrStorageRead, err)
		}

		e.Timestamp = time.Unix(0, ts).UTC()
		e.Serial = uint32(serial)
		e.Persistent = persistent == 1
		e.Outcome = Outcome(outcome)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrStorageRead, err)
	}

	return entries, nil
}

func (r *repository) close() error {
	errFactory := errors.New()

	var firstErr error
	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		firstErr = errFactory.WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "checkpoint_wal",
			Error: err.Error(),
		})
	}

	if err := r.db.Close(); err != nil && firstErr == nil {
		firstErr = errFactory.WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_database",
			Error: err.Error(),
		})
	}

	return firstErr
}
