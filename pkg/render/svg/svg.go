// Package svg renders computed layouts as schematic SVG diagrams.
package svg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nocworks/socplan/pkg/layout"
)

const schematicCSS = `
    .node { stroke: #1f2937; stroke-width: 1.5; rx: 6; }
    .node.master { fill: #dbeafe; }
    .node.slave { fill: #dcfce7; }
    .node.router { fill: #fef3c7; }
    .node.pinned { stroke-dasharray: 4 2; }
    .label { font: 13px sans-serif; fill: #111827; text-anchor: middle; dominant-baseline: central; }
    .edge { fill: none; stroke: #6b7280; stroke-width: 1.5; }
    .edge.wide { stroke-width: 3; }`

// Render draws the layout as an SVG schematic: one rectangle per node
// styled by kind, one orthogonal polyline per routed edge. Output is
// deterministic for a given layout.
func Render(l layout.Layout) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", schematicCSS)
	renderDefs(&buf)

	for _, e := range l.Edges {
		renderEdge(&buf, e)
	}
	for _, n := range l.Nodes {
		renderNode(&buf, n)
	}
	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, "  <text class=\"label\" x=\"%.1f\" y=\"%.1f\">%s</text>\n",
			n.CenterX(), n.Y+n.Height/2, escape(n.ID))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#6b7280"/>
    </marker>
  </defs>
`)
}

func renderNode(buf *bytes.Buffer, n layout.Node) {
	classes := []string{"node", string(n.Kind)}
	if n.Pinned {
		classes = append(classes, "pinned")
	}
	fmt.Fprintf(buf, "  <rect id=\"node-%s\" class=\"%s\" x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\"/>\n",
		escape(n.ID), strings.Join(classes, " "), n.X, n.Y, n.Width, n.Height)
}

func renderEdge(buf *bytes.Buffer, e layout.Edge) {
	classes := []string{"edge"}
	if e.Type != "" {
		classes = append(classes, escape(e.Type))
	}

	points := make([]string, 0, len(e.Bends)+2)
	for _, p := range e.Path() {
		points = append(points, fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
	}

	markers := ` marker-end="url(#arrow)"`
	if e.Bidirectional {
		markers += ` marker-start="url(#arrow)"`
	}
	fmt.Fprintf(buf, "  <polyline id=\"edge-%s\" class=\"%s\" points=\"%s\"%s/>\n",
		escape(e.ID), strings.Join(classes, " "), strings.Join(points, " "), markers)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
