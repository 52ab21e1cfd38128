// Package shapekey implements an ordered, name-unique collection of mesh
// shapekeys (named, weighted vertex-displacement targets).
//
// The collection mirrors the semantics of a host DCC application's shapekey
// list: entries are addressed both by name and by position, position 0 is
// always the base (reference) entry, and reordering happens through repeated
// single-step moves. All "position drift under mutation" policies live here:
// callers capture positions or names before mutating and re-resolve them
// afterwards through [Collection.Index].
//
// The zero value of Collection is an empty, usable collection. Collection is
// not safe for concurrent use without external synchronization.
package shapekey

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyName is returned by [Collection.Add] when the key name is empty.
	// All keys must have non-empty names.
	ErrEmptyName = errors.New("shapekey name must not be empty")

	// ErrDuplicateName is returned by [Collection.Add] when a key with the
	// same name already exists. Names are unique within a collection.
	ErrDuplicateName = errors.New("duplicate shapekey name")

	// ErrKeyNotFound is returned when a name does not resolve to a key in
	// the collection. Callers that captured names before mutating should
	// treat this as "entry removed externally" and skip rather than abort.
	ErrKeyNotFound = errors.New("shapekey not found")

	// ErrBaseImmovable is returned by [Collection.Remove] when the target is
	// the base entry while other keys remain. The base entry anchors every
	// other key's displacement and must stay at position 0.
	ErrBaseImmovable = errors.New("base shapekey cannot be removed")
)

const (
	// DisposableSuffix marks a shapekey as eligible for cleanup sweeps.
	// Keys named "Something.old" are moved to the bottom or deleted by the
	// transform package; the base entry is exempt even if it carries the
	// suffix.
	DisposableSuffix = ".old"

	// DefaultBaseName is the conventional name for the base entry created
	// when a collection is first populated.
	DefaultBaseName = "Basis"
)

// IsDisposable reports whether a shapekey name carries the disposable suffix.
func IsDisposable(name string) bool {
	return strings.HasSuffix(name, DisposableSuffix)
}

// Vec3 is a per-vertex displacement vector (x, y, z).
type Vec3 [3]float64

// Key is a single shapekey entry: a named displacement target with a blend
// weight and an optional vertex-group mask restricting its effect.
//
// Offsets holds one displacement per vertex. A nil Offsets slice means the
// key displaces nothing (an "empty" key, as produced by the fill operation).
// Struct tags cover both the scene JSON format and MongoDB storage.
type Key struct {
	Name    string  `json:"name" bson:"name"`
	Value   float64 `json:"value" bson:"value"`
	Mask    string  `json:"mask,omitempty" bson:"mask,omitempty"`
	Offsets []Vec3  `json:"offsets,omitempty" bson:"offsets,omitempty"`
}

// IsDisposable reports whether the key carries the disposable suffix.
func (k *Key) IsDisposable() bool { return IsDisposable(k.Name) }

// Clone returns a deep copy of the key.
func (k *Key) Clone() *Key {
	c := *k
	if k.Offsets != nil {
		c.Offsets = make([]Vec3, len(k.Offsets))
		copy(c.Offsets, k.Offsets)
	}
	return &c
}

// Collection is an ordered, name-unique list of shapekeys. Position 0 is the
// base entry; it is protected from removal while other keys exist, and
// single-step moves never displace it.
type Collection struct {
	keys []*Key
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{}
}

// FromKeys builds a collection from keys in order. Every key is copied on
// insertion, so later mutation of the source slice or its keys cannot alias
// collection state. Returns an error if any name is empty or duplicated.
func FromKeys(keys []*Key) (*Collection, error) {
	c := New()
	for _, k := range keys {
		if _, err := c.Add(*k); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of keys.
func (c *Collection) Len() int { return len(c.keys) }

// At returns the key at position i, or nil if i is out of range.
func (c *Collection) At(i int) *Key {
	if i < 0 || i >= len(c.keys) {
		return nil
	}
	return c.keys[i]
}

// Base returns the base entry (position 0), or nil for an empty collection.
func (c *Collection) Base() *Key { return c.At(0) }

// Get returns the key with the given name.
func (c *Collection) Get(name string) (*Key, bool) {
	i := c.Index(name)
	if i < 0 {
		return nil, false
	}
	return c.keys[i], true
}

// Has reports whether a key with the given name exists.
func (c *Collection) Has(name string) bool { return c.Index(name) >= 0 }

// Index returns the current position of the named key, or -1 if absent.
// Positions shift under mutation; re-resolve rather than caching across
// Add/Remove/Move calls.
func (c *Collection) Index(name string) int {
	for i, k := range c.keys {
		if k.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the key names in collection order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.keys))
	for i, k := range c.keys {
		names[i] = k.Name
	}
	return names
}

// Keys returns the keys in collection order. The slice is a copy; the keys
// are shared with the collection.
func (c *Collection) Keys() []*Key {
	out := make([]*Key, len(c.keys))
	copy(out, c.keys)
	return out
}

// Add appends a key to the end of the collection and returns the stored
// entry. The key is copied on insertion so later slice reuse by the caller
// cannot alias collection state.
func (c *Collection) Add(k Key) (*Key, error) {
	if k.Name == "" {
		return nil, ErrEmptyName
	}
	if c.Has(k.Name) {
		return nil, ErrDuplicateName
	}
	stored := k.Clone()
	c.keys = append(c.keys, stored)
	return stored, nil
}

// Remove deletes the named key. Removing the base entry is only allowed when
// it is the last remaining key.
func (c *Collection) Remove(name string) error {
	i := c.Index(name)
	if i < 0 {
		return ErrKeyNotFound
	}
	if i == 0 && len(c.keys) > 1 {
		return ErrBaseImmovable
	}
	c.keys = append(c.keys[:i], c.keys[i+1:]...)
	return nil
}

// MoveUp shifts the named key one position toward the front. Moves stop at
// position 1: the base entry is never displaced. Returns true if the key
// actually moved.
func (c *Collection) MoveUp(name string) (bool, error) {
	i := c.Index(name)
	if i < 0 {
		return false, ErrKeyNotFound
	}
	if i <= 1 {
		return false, nil
	}
	c.keys[i-1], c.keys[i] = c.keys[i], c.keys[i-1]
	return true, nil
}

// MoveDown shifts the named key one position toward the back. The base entry
// never moves. Returns true if the key actually moved.
func (c *Collection) MoveDown(name string) (bool, error) {
	i := c.Index(name)
	if i < 0 {
		return false, ErrKeyNotFound
	}
	if i == 0 || i >= len(c.keys)-1 {
		return false, nil
	}
	c.keys[i], c.keys[i+1] = c.keys[i+1], c.keys[i]
	return true, nil
}
