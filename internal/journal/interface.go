// Package journal keeps an optional sqlite record of the display changes
// displayctl submitted.
package journal

import (
	"context"
	"time"
)

// Recorder stores and lists journal entries.
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Outcome is how an operation ended.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeVerified  Outcome = "verified"
	OutcomeDryRun    Outcome = "dry_run"
	OutcomeNoChanges Outcome = "no_changes"
	OutcomeFailed    Outcome = "failed"
)

// Entry is one modify or gamma operation.
type Entry struct {
	ID         string    `yaml:"id"`
	Timestamp  time.Time `yaml:"timestamp"`
	Operation  string    `yaml:"operation"`
	Connector  string    `yaml:"connector"`
	Serial     uint32    `yaml:"serial"`
	Method     string    `yaml:"method,omitempty"`
	Persistent bool      `yaml:"persistent"`
	Detail     string    `yaml:"detail"`
	Outcome    Outcome   `yaml:"outcome"`
	Error      string    `yaml:"error,omitempty"`
}
