// Package scene defines the scene document: the serialized form of mesh
// objects, their vertex groups, and their shapekey collections.
//
// The format is human-readable JSON designed for round-trip fidelity:
// import → transform → export → re-import produces identical results. Struct
// tags carry both json and bson so documents pass through MongoDB storage
// unchanged.
//
// A scene document is the explicit stand-in for a host application's object
// graph: shapekit mutates the document instead of a live scene, and the host
// exporter/importer owns the conversion at either end.
package scene

import (
	"fmt"
	"slices"

	"github.com/pawlygon/shapekit/pkg/shapekey"
	"github.com/pawlygon/shapekit/pkg/shapekey/transform"
)

// Scene is the canonical serialization format for a set of mesh objects.
type Scene struct {
	Name    string    `json:"name,omitempty" bson:"name,omitempty"`
	Objects []*Object `json:"objects" bson:"objects"`
}

// Object is a mesh object carrying vertex groups and an ordered shapekey
// list. Keys order is significant: position 0 is the base entry.
type Object struct {
	Name        string          `json:"name" bson:"name"`
	VertexCount int             `json:"vertex_count" bson:"vertex_count"`
	Groups      []VertexGroup   `json:"vertex_groups,omitempty" bson:"vertex_groups,omitempty"`
	Keys        []*shapekey.Key `json:"shape_keys,omitempty" bson:"shape_keys,omitempty"`

	// ActiveKey names the key currently selected in the host UI, if any.
	// Split operations default to it when no explicit key is given.
	ActiveKey string `json:"active_key,omitempty" bson:"active_key,omitempty"`
}

// VertexGroup is a named, sparse per-vertex membership weight mapping.
// Weights are stored as explicit entries rather than a map so the JSON and
// BSON forms stay stable and diff-friendly.
type VertexGroup struct {
	Name    string         `json:"name" bson:"name"`
	Weights []VertexWeight `json:"weights,omitempty" bson:"weights,omitempty"`
}

// VertexWeight assigns a membership weight to one vertex index.
type VertexWeight struct {
	Index  int     `json:"index" bson:"index"`
	Weight float64 `json:"weight" bson:"weight"`
}

// Object returns the named object, or nil if absent.
func (s *Scene) Object(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// ObjectNames returns the object names in scene order.
func (s *Scene) ObjectNames() []string {
	names := make([]string, len(s.Objects))
	for i, o := range s.Objects {
		names[i] = o.Name
	}
	return names
}

// Group returns the named vertex group.
func (o *Object) Group(name string) (*VertexGroup, bool) {
	for i := range o.Groups {
		if o.Groups[i].Name == name {
			return &o.Groups[i], true
		}
	}
	return nil, false
}

// GroupNames returns the vertex group names in object order.
func (o *Object) GroupNames() []string {
	names := make([]string, len(o.Groups))
	for i, g := range o.Groups {
		names[i] = g.Name
	}
	return names
}

// HasKeys reports whether the object has a shapekey collection at all.
// An object without keys is distinct from one with an empty base-only list.
func (o *Object) HasKeys() bool { return len(o.Keys) > 0 }

// Collection builds the runtime shapekey collection from the object's key
// list. Returns nil (no error) when the object has no shapekey collection.
// The collection holds copies: mutations only land in the document after a
// write-back with [Object.SetKeys].
func (o *Object) Collection() (*shapekey.Collection, error) {
	if !o.HasKeys() {
		return nil, nil
	}
	c, err := shapekey.FromKeys(o.Keys)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", o.Name, err)
	}
	return c, nil
}

// SetKeys replaces the object's key list with the collection's current order.
func (o *Object) SetKeys(c *shapekey.Collection) {
	if c == nil {
		o.Keys = nil
		return
	}
	o.Keys = c.Keys()
}

// MaskGroup resolves a vertex group into the transform package's mask form.
func (o *Object) MaskGroup(name string) (transform.Group, bool) {
	vg, ok := o.Group(name)
	if !ok {
		return transform.Group{}, false
	}
	weights := make(map[int]float64, len(vg.Weights))
	for _, w := range vg.Weights {
		weights[w.Index] = w.Weight
	}
	return transform.Group{Name: vg.Name, Weights: weights}, true
}

// Validate checks scene invariants: unique object names, and per object
// unique group names, unique key names, and offset lengths bounded by the
// vertex count. Mask references to unknown groups are allowed; the host may
// have removed a group after the mask was assigned.
func (s *Scene) Validate() error {
	seen := map[string]bool{}
	for _, o := range s.Objects {
		if o.Name == "" {
			return fmt.Errorf("object with empty name")
		}
		if seen[o.Name] {
			return fmt.Errorf("duplicate object name %q", o.Name)
		}
		seen[o.Name] = true
		if err := o.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (o *Object) validate() error {
	if o.VertexCount < 0 {
		return fmt.Errorf("object %q: negative vertex count", o.Name)
	}

	groups := map[string]bool{}
	for _, g := range o.Groups {
		if g.Name == "" {
			return fmt.Errorf("object %q: vertex group with empty name", o.Name)
		}
		if groups[g.Name] {
			return fmt.Errorf("object %q: duplicate vertex group %q", o.Name, g.Name)
		}
		groups[g.Name] = true
		for _, w := range g.Weights {
			if w.Index < 0 || w.Index >= o.VertexCount {
				return fmt.Errorf("object %q: group %q references vertex %d (vertex count %d)",
					o.Name, g.Name, w.Index, o.VertexCount)
			}
		}
	}

	var names []string
	for _, k := range o.Keys {
		if k.Name == "" {
			return fmt.Errorf("object %q: shapekey with empty name", o.Name)
		}
		if slices.Contains(names, k.Name) {
			return fmt.Errorf("object %q: duplicate shapekey %q", o.Name, k.Name)
		}
		names = append(names, k.Name)
		if len(k.Offsets) > o.VertexCount {
			return fmt.Errorf("object %q: shapekey %q has %d offsets (vertex count %d)",
				o.Name, k.Name, len(k.Offsets), o.VertexCount)
		}
	}
	if o.ActiveKey != "" && !slices.Contains(names, o.ActiveKey) {
		return fmt.Errorf("object %q: active key %q not in shapekey list", o.Name, o.ActiveKey)
	}

	return nil
}
