package ops

import (
	"fmt"

	"github.com/pawlygon/shapekit/pkg/errors"
	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/shapekey"
	"github.com/pawlygon/shapekit/pkg/shapekey/transform"
)

// FillRequest creates the shapekeys a previous check reported missing.
type FillRequest struct {
	Object string `json:"object,omitempty"`

	// Missing is the list of key names to create, usually taken from a
	// pending check report. Names that exist by now are skipped.
	Missing []string `json:"missing"`
}

// FillResult reports how many keys were created.
type FillResult struct {
	Object  string `json:"object"`
	Created int    `json:"created"`
	Message string `json:"message"`
}

// Validate reports whether the fill can run.
func (r FillRequest) Validate(sc *scene.Scene) error {
	if _, err := resolveObject(sc, r.Object); err != nil {
		return err
	}
	if len(r.Missing) == 0 {
		return errors.New(errors.ErrCodePreconditionNoPending,
			"nothing to create: run a check first")
	}
	return nil
}

// Apply creates the missing keys at zero weight with no offsets. An object
// with no shapekeys at all gets a base key first.
func (r FillRequest) Apply(sc *scene.Scene) (*FillResult, error) {
	if err := r.Validate(sc); err != nil {
		return nil, err
	}
	o, _ := resolveObject(sc, r.Object)
	c, err := o.Collection()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "object %q", o.Name)
	}
	if c == nil {
		c = shapekey.New()
	}

	created, err := transform.CreateMissing(c, r.Missing)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create missing shapekeys")
	}
	o.SetKeys(c)

	return &FillResult{
		Object:  o.Name,
		Created: created,
		Message: fmt.Sprintf("Created %d shapekey(s)", created),
	}, nil
}
