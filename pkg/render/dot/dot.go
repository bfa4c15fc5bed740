// Package dot renders topologies as Graphviz node-link diagrams.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/nocworks/socplan/pkg/topo"
)

// ToDOT converts a topology to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using [RenderSVG].
//
// Routers are drawn as diamonds, endpoints as filled boxes. Connections
// naming a port are attached to the node that declares it.
func ToDOT(t topo.Topology) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range t.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n), ", "))
	}

	owners := t.PortOwners()
	resolve := func(name string) string {
		if owner, ok := owners[name]; ok {
			return owner
		}
		return name
	}

	buf.WriteString("\n")
	for _, c := range t.Connections {
		attrs := fmtEdgeAttrs(c)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", resolve(c.From), resolve(c.To))
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", resolve(c.From), resolve(c.To), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n topo.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.ID)}
	switch n.Kind {
	case topo.KindRouter:
		attrs = append(attrs, "shape=diamond", "style=filled", "fillcolor=lightyellow")
	case topo.KindMaster:
		attrs = append(attrs, "fillcolor=lightblue")
	case topo.KindSlave:
		attrs = append(attrs, "fillcolor=lightgreen")
	}
	return attrs
}

func fmtEdgeAttrs(c topo.Connection) []string {
	var attrs []string
	if c.Bidirectional {
		attrs = append(attrs, "dir=both")
	}
	if c.Type != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", c.Type))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the viewBox starts at the
// origin, which keeps browser zoom-to-fit behavior consistent.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
