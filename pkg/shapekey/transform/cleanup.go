package transform

import (
	"errors"

	"github.com/pawlygon/shapekit/pkg/shapekey"
)

// MoveDisposableToBottom relocates every disposable-suffixed shapekey to the
// end of the collection. Relative order is preserved both among the moved
// entries and among the entries left in place. The base entry never moves,
// even if it carries the suffix. Returns the number of keys that actually
// changed position; ErrNoCollection distinguishes "no collection" from
// "zero found".
//
// Names are captured up front, then processed from the highest position
// downward so that placing one entry does not invalidate the positions of
// those not yet processed. Each entry is walked down with single-step moves
// into the next free slot from the tail; walking every entry to the very
// last position instead would reverse the moved entries' relative order.
func MoveDisposableToBottom(c *shapekey.Collection) (int, error) {
	if c == nil || c.Len() == 0 {
		return 0, ErrNoCollection
	}

	var names []string
	for i, k := range c.Keys() {
		if i == 0 {
			continue
		}
		if k.IsDisposable() {
			names = append(names, k.Name)
		}
	}

	moved := 0
	target := c.Len() - 1
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		if !c.Has(name) {
			continue // removed externally, skip
		}
		steps := 0
		for c.Index(name) < target {
			stepped, err := c.MoveDown(name)
			if err != nil {
				return moved, err
			}
			if !stepped {
				break
			}
			steps++
		}
		if steps > 0 {
			moved++
		}
		target--
	}
	return moved, nil
}

// DeleteDisposable removes every disposable-suffixed shapekey except the
// base entry. Returns the number of keys deleted; ErrNoCollection
// distinguishes "no collection" from "zero found".
//
// Names are captured first (positions shift under deletion) and deleted in
// reverse discovery order, re-resolving each name immediately before
// removal. Names that no longer resolve are skipped.
func DeleteDisposable(c *shapekey.Collection) (int, error) {
	if c == nil || c.Len() == 0 {
		return 0, ErrNoCollection
	}

	var names []string
	for i, k := range c.Keys() {
		if i == 0 {
			continue
		}
		if k.IsDisposable() {
			names = append(names, k.Name)
		}
	}

	deleted := 0
	for i := len(names) - 1; i >= 0; i-- {
		err := c.Remove(names[i])
		if errors.Is(err, shapekey.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
