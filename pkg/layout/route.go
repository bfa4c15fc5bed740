package layout

import (
	"fmt"

	"github.com/nocworks/socplan/pkg/topo"
)

// routeEdges computes a Manhattan path for every connection. Endpoints
// resolve through port names exactly as during hierarchy construction, and
// connections with an unresolvable side are dropped — the permissive policy
// for partially edited configs.
func routeEdges(conns []topo.Connection, byID map[string]*Node, owners map[string]string) []Edge {
	edges := make([]Edge, 0, len(conns))
	for i, c := range conns {
		src := resolveNode(c.From, owners, byID)
		dst := resolveNode(c.To, owners, byID)
		if src == nil || dst == nil {
			continue
		}
		e := Edge{
			// Declaration index keeps ids stable across re-layouts of the
			// same input even when a pair connects more than once.
			ID:            fmt.Sprintf("%s-%s-%d", c.From, c.To, i),
			Source:        src.ID,
			Target:        dst.ID,
			Type:          c.Type,
			Bidirectional: c.Bidirectional,
		}
		e.SourcePort, e.TargetPort = defaultPorts(src, dst)
		e.Bends = bendPoints(e.SourcePort, e.TargetPort)
		edges = append(edges, e)
	}
	return edges
}

func resolveNode(name string, owners map[string]string, byID map[string]*Node) *Node {
	if owner, ok := owners[name]; ok {
		name = owner
	}
	return byID[name]
}

// defaultPorts anchors the source port to the source's bottom edge,
// horizontally biased toward the target: the target's center x clamped into
// the source's bounds. The target port mirrors that, clamping the source
// port's x into the target's bounds on its top edge. Single connections
// between aligned nodes come out as plain vertical segments.
func defaultPorts(src, dst *Node) (Point, Point) {
	sx := clamp(dst.CenterX(), src.X, src.X+src.Width)
	tx := clamp(sx, dst.X, dst.X+dst.Width)
	return Point{X: sx, Y: src.Y + src.Height}, Point{X: tx, Y: dst.Y}
}
