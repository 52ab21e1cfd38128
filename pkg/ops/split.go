package ops

import (
	"fmt"

	"github.com/pawlygon/shapekit/pkg/errors"
	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/shapekey/transform"
)

// SplitRequest splits one shapekey into two using a pair of vertex groups.
type SplitRequest struct {
	Object string `json:"object,omitempty"`

	// Key names the shapekey to split. Empty means the object's active key.
	Key string `json:"key,omitempty"`

	// GroupA and GroupB name the vertex groups masking the two halves.
	GroupA string `json:"group_a"`
	GroupB string `json:"group_b"`
}

// SplitResult names the two derived shapekeys.
type SplitResult struct {
	Object   string `json:"object"`
	CreatedA string `json:"created_a"`
	CreatedB string `json:"created_b"`
	Message  string `json:"message"`
}

// Validate reports whether the split can run: the target object must carry
// shapekeys, a source key must be resolvable, and both vertex groups must
// exist on the object.
func (r SplitRequest) Validate(sc *scene.Scene) error {
	o, c, err := resolveCollection(sc, r.Object)
	if err != nil {
		return err
	}

	key := r.Key
	if key == "" {
		key = o.ActiveKey
	}
	if key == "" {
		return errors.New(errors.ErrCodePreconditionNoActiveKey,
			"object %q has no active shapekey and none was named", o.Name)
	}
	if !c.Has(key) {
		return errors.New(errors.ErrCodePreconditionNoActiveKey,
			"object %q has no shapekey %q", o.Name, key)
	}

	for _, g := range []string{r.GroupA, r.GroupB} {
		if g == "" {
			return errors.New(errors.ErrCodePreconditionNoGroup,
				"two vertex group names are required")
		}
		if _, ok := o.Group(g); !ok {
			return errors.New(errors.ErrCodePreconditionNoGroup,
				"object %q has no vertex group %q", o.Name, g)
		}
	}
	return nil
}

// Apply performs the split and writes the new key order back to the object.
func (r SplitRequest) Apply(sc *scene.Scene) (*SplitResult, error) {
	if err := r.Validate(sc); err != nil {
		return nil, err
	}
	o, c, err := resolveCollection(sc, r.Object)
	if err != nil {
		return nil, err
	}

	key := r.Key
	if key == "" {
		key = o.ActiveKey
	}
	groupA, _ := o.MaskGroup(r.GroupA)
	groupB, _ := o.MaskGroup(r.GroupB)

	res, err := transform.SplitByGroups(c, key, groupA, groupB)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
			"split %q by %s/%s", key, r.GroupA, r.GroupB)
	}
	o.SetKeys(c)

	return &SplitResult{
		Object:   o.Name,
		CreatedA: res.CreatedA,
		CreatedB: res.CreatedB,
		Message:  fmt.Sprintf("Created: %s and %s", res.CreatedA, res.CreatedB),
	}, nil
}
