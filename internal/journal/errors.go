package journal

import "codeberg.org/mutker/displayctl/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("journal_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("journal_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("journal_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("journal_schema_migration_failed")

	// Storage Errors
	ErrStorageInit   = errors.ErrInitFailed
	ErrStorageClose  = errors.ErrShutdownFailed
	ErrStorageWrite  = errors.ErrorCode("journal_write_failed")
	ErrStorageRead   = errors.ErrorCode("journal_read_failed")
	ErrInvalidEntry  = errors.ErrorCode("journal_invalid_entry")
	ErrOperationTime = errors.ErrTimeout
)
