// Package ops defines the operator layer: one request/response pair per
// user-facing command (check, fill, split, tidy, prune).
//
// Every request separates its precondition check from its mutation:
//   - Validate is pure. It inspects scene state and returns a structured
//     PRECONDITION_* error when the command would be a no-op, without
//     touching anything. UIs use it to disable actions and show the reason.
//   - Apply re-runs Validate and then mutates the scene, returning a result
//     with a human-readable status message.
//
// The [Runner] binds the stateful pieces (pending-report store, roster set)
// and orchestrates the check → fill handshake on top of the pure payloads.
package ops

import (
	"github.com/pawlygon/shapekit/pkg/errors"
	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/shapekey"
)

// resolveObject finds the target object for a request. An empty name is
// accepted when the scene holds exactly one object.
func resolveObject(sc *scene.Scene, name string) (*scene.Object, error) {
	if sc == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "no scene loaded")
	}
	if name == "" {
		if len(sc.Objects) == 1 {
			return sc.Objects[0], nil
		}
		return nil, errors.New(errors.ErrCodePreconditionNoObject,
			"object name required: scene has %d objects", len(sc.Objects))
	}
	o := sc.Object(name)
	if o == nil {
		return nil, errors.New(errors.ErrCodePreconditionNoObject,
			"no object named %q", name)
	}
	return o, nil
}

// resolveCollection resolves an object that must already carry shapekeys.
func resolveCollection(sc *scene.Scene, name string) (*scene.Object, *shapekey.Collection, error) {
	o, err := resolveObject(sc, name)
	if err != nil {
		return nil, nil, err
	}
	c, err := o.Collection()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "object %q", o.Name)
	}
	if c == nil {
		return nil, nil, errors.New(errors.ErrCodePreconditionNoCollection,
			"object %q has no shapekeys", o.Name)
	}
	return o, c, nil
}
