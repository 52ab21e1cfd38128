// Package roster holds the expected-shapekey lists and vertex-group split
// pairs that drive the check/fill and split workflows.
//
// A roster is a named, ordered list of shapekey names an avatar mesh is
// expected to carry (viseme sets, face-tracking sets, and so on). Rosters
// are configuration data: they are compared against, never mutated. The
// built-in defaults can be replaced or extended with a TOML file:
//
//	[[list]]
//	name = "Visemes"
//	keys = ["vrc.v_sil", "vrc.v_aa"]
//
//	[[pair]]
//	a = "Left"
//	b = "Right"
package roster

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/pawlygon/shapekit/pkg/errors"
)

// List is a named expected-shapekey list.
type List struct {
	Name string   `toml:"name"`
	Keys []string `toml:"keys"`
}

// Pair is a left/right (or similar) vertex-group pairing offered by the
// split workflow.
type Pair struct {
	A string `toml:"a"`
	B string `toml:"b"`
}

// String formats the pair for display ("Left/Right").
func (p Pair) String() string { return p.A + "/" + p.B }

// Set bundles the configured lists and split pairs.
type Set struct {
	Lists []List `toml:"list"`
	Pairs []Pair `toml:"pair"`
}

// Default returns the built-in roster set: the standard viseme list, a
// face-tracking starter set, and the usual left/right split pairs.
func Default() *Set {
	return &Set{
		Lists: []List{
			{
				Name: "Visemes",
				Keys: []string{
					"vrc.v_sil", "vrc.v_pp", "vrc.v_ff", "vrc.v_th", "vrc.v_dd",
					"vrc.v_kk", "vrc.v_ch", "vrc.v_ss", "vrc.v_nn", "vrc.v_rr",
					"vrc.v_aa", "vrc.v_e", "vrc.v_ih", "vrc.v_oh", "vrc.v_ou",
				},
			},
			{
				Name: "Face Tracking",
				Keys: []string{
					"EyeClosedLeft", "EyeClosedRight", "EyeWideLeft", "EyeWideRight",
					"BrowDownLeft", "BrowDownRight", "BrowUpLeft", "BrowUpRight",
					"JawOpen", "MouthClosed", "MouthSmileLeft", "MouthSmileRight",
					"MouthFrownLeft", "MouthFrownRight", "CheekPuffLeft", "CheekPuffRight",
					"TongueOut",
				},
			},
		},
		Pairs: []Pair{
			{A: "Left", B: "Right"},
			{A: "Upper", B: "Lower"},
		},
	}
}

// Load reads a roster set from a TOML file. The file fully replaces the
// defaults; use [Merge] to extend them instead.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a roster set from TOML bytes and validates it.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "parse roster config")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Merge returns a set with other's lists and pairs layered over s: lists
// with the same name are replaced, new ones appended, pairs deduplicated.
func (s *Set) Merge(other *Set) *Set {
	out := &Set{
		Lists: append([]List(nil), s.Lists...),
		Pairs: append([]Pair(nil), s.Pairs...),
	}
	for _, l := range other.Lists {
		replaced := false
		for i := range out.Lists {
			if out.Lists[i].Name == l.Name {
				out.Lists[i] = l
				replaced = true
				break
			}
		}
		if !replaced {
			out.Lists = append(out.Lists, l)
		}
	}
	for _, p := range other.Pairs {
		exists := false
		for _, q := range out.Pairs {
			if q == p {
				exists = true
				break
			}
		}
		if !exists {
			out.Pairs = append(out.Pairs, p)
		}
	}
	return out
}

// List returns the named list.
func (s *Set) List(name string) (*List, bool) {
	for i := range s.Lists {
		if s.Lists[i].Name == name {
			return &s.Lists[i], true
		}
	}
	return nil, false
}

// ListNames returns the configured list names in order.
func (s *Set) ListNames() []string {
	names := make([]string, len(s.Lists))
	for i, l := range s.Lists {
		names[i] = l.Name
	}
	return names
}

// Validate checks roster invariants: non-empty unique list names, valid key
// names, and non-empty pair sides.
func (s *Set) Validate() error {
	seen := map[string]bool{}
	for _, l := range s.Lists {
		if err := errors.ValidateRosterName(l.Name); err != nil {
			return err
		}
		if seen[l.Name] {
			return errors.New(errors.ErrCodeInvalidRoster, "duplicate roster %q", l.Name)
		}
		seen[l.Name] = true
		for _, k := range l.Keys {
			if err := errors.ValidateKeyName(k); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRoster, err, "roster %q", l.Name)
			}
		}
	}
	for _, p := range s.Pairs {
		if p.A == "" || p.B == "" || p.A == p.B {
			return errors.New(errors.ErrCodeInvalidRoster, "invalid split pair %q/%q", p.A, p.B)
		}
	}
	return nil
}
