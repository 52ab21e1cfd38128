package ops

import (
	"fmt"

	"github.com/pawlygon/shapekit/pkg/errors"
	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/shapekey/transform"
)

// TidyRequest moves every disposable shapekey to the bottom of the list.
type TidyRequest struct {
	Object string `json:"object,omitempty"`
}

// TidyResult reports how many keys actually changed position.
type TidyResult struct {
	Object  string `json:"object"`
	Moved   int    `json:"moved"`
	Message string `json:"message"`
}

// Validate reports whether the tidy can run.
func (r TidyRequest) Validate(sc *scene.Scene) error {
	_, _, err := resolveCollection(sc, r.Object)
	return err
}

// Apply moves the disposable keys and writes the new order back.
func (r TidyRequest) Apply(sc *scene.Scene) (*TidyResult, error) {
	o, c, err := resolveCollection(sc, r.Object)
	if err != nil {
		return nil, err
	}

	moved, err := transform.MoveDisposableToBottom(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "move disposable shapekeys")
	}
	o.SetKeys(c)

	res := &TidyResult{Object: o.Name, Moved: moved}
	if moved > 0 {
		res.Message = fmt.Sprintf("Moved %d shapekey(s) to bottom", moved)
	} else {
		res.Message = "No .old shapekeys found"
	}
	return res, nil
}

// PruneRequest deletes every disposable shapekey.
type PruneRequest struct {
	Object string `json:"object,omitempty"`
}

// PruneResult reports how many keys were deleted.
type PruneResult struct {
	Object  string `json:"object"`
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// Validate reports whether the prune can run.
func (r PruneRequest) Validate(sc *scene.Scene) error {
	_, _, err := resolveCollection(sc, r.Object)
	return err
}

// Apply deletes the disposable keys and writes the new order back.
func (r PruneRequest) Apply(sc *scene.Scene) (*PruneResult, error) {
	o, c, err := resolveCollection(sc, r.Object)
	if err != nil {
		return nil, err
	}

	deleted, err := transform.DeleteDisposable(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "delete disposable shapekeys")
	}
	o.SetKeys(c)

	res := &PruneResult{Object: o.Name, Deleted: deleted}
	if deleted > 0 {
		res.Message = fmt.Sprintf("Deleted %d shapekey(s)", deleted)
	} else {
		res.Message = "No .old shapekeys found"
	}
	return res, nil
}
