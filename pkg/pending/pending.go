// Package pending stores the transient missing-shapekey report between a
// check and a fill.
//
// The report is the explicit payload the check operation produces and the
// fill operation consumes: it is created on check, replaced by any later
// check for the same target, and cleared once fill has created the keys.
// Backends:
//   - memory: single-process use and tests
//   - file: the CLI, persisted under the XDG state directory
//   - redis: the HTTP server, shared across instances
package pending

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no report is stored for a target.
var ErrNotFound = errors.New("no pending report")

// DefaultTTL bounds how long a report stays actionable. A stale report
// likely no longer matches the scene it was computed from.
const DefaultTTL = 24 * time.Hour

// Report is the outcome of one check operation, keyed by its target.
type Report struct {
	ID        string    `json:"id"`
	Scene     string    `json:"scene"`  // scene file path or store id
	Object    string    `json:"object"` // target object name
	Roster    string    `json:"roster"` // list the check ran against
	Missing   []string  `json:"missing"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReport builds a report for a completed check.
func NewReport(sceneID, object, rosterName string, missing []string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Scene:     sceneID,
		Object:    object,
		Roster:    rosterName,
		Missing:   missing,
		CreatedAt: time.Now().UTC(),
	}
}

// Key returns the storage key for the report's target.
func (r *Report) Key() string { return TargetKey(r.Scene, r.Object) }

// TargetKey derives the storage key for a scene/object pair.
func TargetKey(sceneID, object string) string {
	return sceneID + "\x1f" + object
}

// Store is the interface for pending-report storage backends.
type Store interface {
	// Get retrieves the report for a target key.
	// Returns ErrNotFound if no report is stored.
	Get(ctx context.Context, key string) (*Report, error)

	// Set stores a report under its target key, replacing any previous one.
	Set(ctx context.Context, r *Report) error

	// Clear removes the report for a target key. Clearing an absent key is
	// not an error.
	Clear(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
