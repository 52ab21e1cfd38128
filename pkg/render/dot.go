// Package render draws shapekey collection diagrams.
//
// A diagram shows an object's key list as an ordered chain from the base
// entry down, with mask edges pointing at the vertex groups a key is
// restricted to. Disposable keys are drawn dashed so cleanup candidates
// stand out. DOT output can be rendered to SVG or PNG via Graphviz.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/shapekey"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes blend values and offset counts in key labels.
	// When false, only the key name is shown.
	Detailed bool
}

// ToDOT converts an object's shapekey list to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(o *scene.Object, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, k := range o.Keys {
		label := fmtLabel(o, i, opts.Detailed)
		attrs := fmtAttrs(k, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", k.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 1; i < len(o.Keys); i++ {
		fmt.Fprintf(&buf, "  %q -> %q;\n", o.Keys[i-1].Name, o.Keys[i].Name)
	}

	for _, g := range o.Groups {
		fmt.Fprintf(&buf, "  %q [shape=ellipse, style=filled, fillcolor=lightyellow];\n", "group:"+g.Name)
	}
	for _, k := range o.Keys {
		if k.Mask == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [style=dotted, arrowhead=open];\n", k.Name, "group:"+k.Mask)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(o *scene.Object, i int, detailed bool) string {
	k := o.Keys[i]
	if !detailed {
		return k.Name
	}

	parts := []string{fmt.Sprintf("pos: %d", i)}
	if i == 0 {
		parts = append(parts, "base")
	} else {
		parts = append(parts, fmt.Sprintf("value: %.2f", k.Value))
	}
	if len(k.Offsets) > 0 {
		parts = append(parts, fmt.Sprintf("offsets: %d", len(k.Offsets)))
	}
	return k.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(k *shapekey.Key, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if k.IsDisposable() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}
