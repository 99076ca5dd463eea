package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig  ErrorCode = "invalid_configuration"
	ErrBindFlags      ErrorCode = "bind_flags_failed"
	ErrReadConfig     ErrorCode = "read_config_failed"
	ErrInvalidTimeout ErrorCode = "invalid_timeout"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
	ErrAlreadyRunning ErrorCode = "already_running"

	// Display errors
	ErrMonitorNotFound   ErrorCode = "display_monitor_not_found"
	ErrCrtcNotFound      ErrorCode = "display_crtc_not_found"
	ErrNoCurrentMode     ErrorCode = "display_no_current_mode"
	ErrNoActions         ErrorCode = "display_no_actions"
	ErrAmbiguousActions  ErrorCode = "display_ambiguous_actions"
	ErrUnknownMode       ErrorCode = "display_unknown_mode"
	ErrInconsistentState ErrorCode = "display_inconsistent_state"
	ErrConflict          ErrorCode = "display_conflict"
	ErrTransport         ErrorCode = "display_transport_failed"

	// Gamma errors
	ErrInvalidRamp ErrorCode = "gamma_invalid_ramp"

	// Operation errors
	ErrOperationFailed ErrorCode = "operation_failed"
	ErrTimeout         ErrorCode = "operation_timeout"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:          "Internal error occurred",
	ErrInvalidArgument:   "Invalid argument provided",
	ErrUnavailable:       "Service unavailable",
	ErrInvalidConfig:     "Invalid configuration",
	ErrBindFlags:         "Failed to bind flags",
	ErrReadConfig:        "Failed to read configuration",
	ErrInvalidTimeout:    "Invalid timeout value",
	ErrInvalidLogLevel:   "Invalid log level",
	ErrInitFailed:        "Initialization failed",
	ErrShutdownFailed:    "Shutdown failed",
	ErrAlreadyRunning:    "Another instance is already running",
	ErrMonitorNotFound:   "Unable to find monitor",
	ErrCrtcNotFound:      "Unable to find CRTC for output",
	ErrNoCurrentMode:     "Monitor has no current mode",
	ErrNoActions:         "No changes requested",
	ErrAmbiguousActions:  "Conflicting changes requested",
	ErrUnknownMode:       "Unknown mode for monitor",
	ErrInconsistentState: "Display state is inconsistent",
	ErrConflict:          "Display configuration changed since it was read",
	ErrTransport:         "Display backend call failed",
	ErrInvalidRamp:       "Invalid gamma ramp",
	ErrOperationFailed:   "Operation failed",
	ErrTimeout:           "Operation timed out",
}

// invalidArgumentCodes are reported by IsInvalidArgument in addition to
// ErrInvalidArgument itself.
var invalidArgumentCodes = map[ErrorCode]bool{
	ErrInvalidArgument:   true,
	ErrNoActions:         true,
	ErrAmbiguousActions:  true,
	ErrUnknownMode:       true,
	ErrInvalidRamp:       true,
	ErrInconsistentState: true,
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
