package ops

import (
	"fmt"

	"github.com/pawlygon/shapekit/pkg/errors"
	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/shapekey/transform"
)

// CheckRequest compares an object's shapekeys against an expected list.
type CheckRequest struct {
	// Object names the target mesh. May be empty when the scene holds a
	// single object.
	Object string `json:"object,omitempty"`

	// Roster is the name of the expected list, echoed into the result and
	// the pending report. Resolution to key names happens in the Runner.
	Roster string `json:"roster,omitempty"`

	// Expected is the resolved list of shapekey names to check for.
	Expected []string `json:"expected"`
}

// CheckResult reports the missing shapekeys, in expected-list order.
type CheckResult struct {
	Object  string   `json:"object"`
	Roster  string   `json:"roster,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Message string   `json:"message"`
}

// Validate reports whether the check can run. A missing or ambiguous target
// object blocks it; an object without shapekeys does not, since every
// expected key is then simply missing.
func (r CheckRequest) Validate(sc *scene.Scene) error {
	if _, err := resolveObject(sc, r.Object); err != nil {
		return err
	}
	if len(r.Expected) == 0 {
		return errors.New(errors.ErrCodeInvalidRoster, "expected list is empty")
	}
	return nil
}

// Apply runs the comparison. The scene is never mutated.
func (r CheckRequest) Apply(sc *scene.Scene) (*CheckResult, error) {
	if err := r.Validate(sc); err != nil {
		return nil, err
	}
	o, _ := resolveObject(sc, r.Object)
	c, err := o.Collection()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "object %q", o.Name)
	}

	missing := transform.Missing(c, r.Expected)
	res := &CheckResult{Object: o.Name, Roster: r.Roster, Missing: missing}
	if len(missing) > 0 {
		res.Message = fmt.Sprintf("Found %d missing shapekeys", len(missing))
	} else {
		res.Message = "All shapekeys present!"
	}
	return res, nil
}
