package transform

import (
	"errors"
	"fmt"

	"github.com/pawlygon/shapekit/pkg/shapekey"
)

var (
	// ErrNoCollection is returned when an operation targets a nil collection.
	// Distinct from the "nothing matched" outcome, which reports zero.
	ErrNoCollection = errors.New("object has no shapekey collection")

	// ErrNoActiveKey is returned by [SplitByGroups] when the named source key
	// does not exist in the collection.
	ErrNoActiveKey = errors.New("active shapekey not found")

	// ErrInvalidGroup is returned by [SplitByGroups] when a mask group has an
	// empty name. Group resolution against the owning object happens in the
	// operator layer; transform only sees resolved groups.
	ErrInvalidGroup = errors.New("invalid vertex group")
)

// Group is a resolved vertex-group mask: a name plus a sparse mapping from
// vertex index to membership weight. Vertices absent from the map have
// weight zero.
type Group struct {
	Name    string
	Weights map[int]float64
}

// Weight returns the membership weight for a vertex index.
func (g Group) Weight(index int) float64 { return g.Weights[index] }

// SplitResult reports the outcome of a split operation.
type SplitResult struct {
	// CreatedA and CreatedB are the names of the two derived keys, in group
	// order.
	CreatedA string
	CreatedB string
}

// SplitByGroups derives two new shapekeys from the named source key, each
// carrying the source displacement scaled by one group's per-vertex weights.
// The derived keys are named source+group and land at the position the
// source occupied measured from the list's tail at the moment the operation
// began. The source key ends with its mask cleared, its value reset, and its
// original position restored.
//
// Positioning policy: the number of upward single-steps for each derived key
// is fixed up front as len-sourceIndex-1. Re-deriving the step count after
// the first insertion would shift the landing slot, so repeated splits of
// the same key stay stable only with the captured value. Do not replace the
// step loops with a direct positional set; single-step moves are the only
// reorder primitive the collection (and the host list it models) offers.
//
// If any precondition fails the collection is left untouched.
func SplitByGroups(c *shapekey.Collection, source string, groupA, groupB Group) (*SplitResult, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrNoCollection
	}
	src, ok := c.Get(source)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoActiveKey, source)
	}
	if groupA.Name == "" || groupB.Name == "" {
		return nil, ErrInvalidGroup
	}

	nameA := src.Name + groupA.Name
	nameB := src.Name + groupB.Name
	if c.Has(nameA) {
		return nil, fmt.Errorf("%w: %q", shapekey.ErrDuplicateName, nameA)
	}
	if c.Has(nameB) || nameA == nameB {
		return nil, fmt.Errorf("%w: %q", shapekey.ErrDuplicateName, nameB)
	}

	// Capture before mutating: the source position, and the tail-relative
	// step count every derived key uses.
	srcIndex := c.Index(source)
	moveSteps := c.Len() - srcIndex - 1

	for _, g := range []Group{groupA, groupB} {
		derived := maskedCopy(src, g)
		derived.Name = src.Name + g.Name
		if _, err := c.Add(*derived); err != nil {
			return nil, err
		}
		for range moveSteps {
			if _, err := c.MoveUp(derived.Name); err != nil {
				return nil, err
			}
		}
	}

	// Reset the source: mask cleared, blend weight zeroed.
	src.Mask = ""
	src.Value = 0

	// The insertions may have pushed the source down; walk it back to its
	// captured position with minimal single-step moves.
	for cur := c.Index(source); cur > srcIndex; cur = c.Index(source) {
		if _, err := c.MoveUp(source); err != nil {
			return nil, err
		}
	}
	for cur := c.Index(source); cur < srcIndex; cur = c.Index(source) {
		if _, err := c.MoveDown(source); err != nil {
			return nil, err
		}
	}

	return &SplitResult{CreatedA: nameA, CreatedB: nameB}, nil
}

// maskedCopy returns a copy of src with every vertex offset scaled by the
// group's membership weight. Vertices outside the group end up with zero
// displacement. The copy carries no mask and full blend weight.
func maskedCopy(src *shapekey.Key, g Group) *shapekey.Key {
	out := &shapekey.Key{Value: 1}
	if src.Offsets == nil {
		return out
	}
	out.Offsets = make([]shapekey.Vec3, len(src.Offsets))
	for i, off := range src.Offsets {
		w := g.Weight(i)
		out.Offsets[i] = shapekey.Vec3{off[0] * w, off[1] * w, off[2] * w}
	}
	return out
}
