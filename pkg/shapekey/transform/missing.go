package transform

import (
	"errors"

	"github.com/pawlygon/shapekit/pkg/shapekey"
)

// Missing returns the expected names not present in the collection,
// preserving the expected list's order. A nil or empty collection reports
// every expected name as missing. The collection is never mutated.
func Missing(c *shapekey.Collection, expected []string) []string {
	if c == nil || c.Len() == 0 {
		out := make([]string, len(expected))
		copy(out, expected)
		return out
	}

	missing := make([]string, 0, len(expected))
	for _, name := range expected {
		if !c.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// CreateMissing ensures a base key exists, then creates one empty shapekey
// per missing name with zero blend weight. Names that already exist by
// creation time are skipped, tolerating external changes between the check
// and the creation pass. Returns the number of keys actually created, not
// counting a base key added along the way.
func CreateMissing(c *shapekey.Collection, missing []string) (int, error) {
	if c == nil {
		return 0, ErrNoCollection
	}
	if c.Len() == 0 {
		if _, err := c.Add(shapekey.Key{Name: shapekey.DefaultBaseName}); err != nil {
			return 0, err
		}
	}

	created := 0
	for _, name := range missing {
		if c.Has(name) {
			continue
		}
		_, err := c.Add(shapekey.Key{Name: name, Value: 0})
		if errors.Is(err, shapekey.ErrEmptyName) {
			continue // stale entry, skip rather than abort the batch
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
