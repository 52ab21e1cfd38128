// Package store provides scene document storage backends.
//
// Two implementations are available:
//   - memory: In-memory storage for tests and single-run CLI use
//   - mongo: MongoDB-backed storage for the HTTP server
//
// Scenes are keyed by a caller-chosen ID (typically a file path or a
// user-facing name). IDs are validated with [errors.ValidateSceneID]
// before they reach a backend.
package store

import (
	"context"
	"errors"

	"github.com/pawlygon/shapekit/pkg/scene"
)

// ErrNotFound is returned when no scene exists under the requested ID.
var ErrNotFound = errors.New("scene not found")

// Store is the interface for scene storage backends.
type Store interface {
	// Get retrieves a scene by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*scene.Scene, error)

	// Put stores a scene under the given ID, replacing any existing one.
	Put(ctx context.Context, id string, s *scene.Scene) error

	// Delete removes a scene. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored scenes, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
