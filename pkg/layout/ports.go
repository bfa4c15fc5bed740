package layout

import (
	"cmp"
	"slices"
)

// DistributePorts spreads the source ports of edges leaving the same node
// evenly across that node's width and recomputes every path from the
// layout's current node positions. A node's width is divided into one
// segment per edge and each edge anchors at its segment center, ordered by
// target center x so the left-to-right crossing order is deterministic and
// stable across re-renders. A single outgoing edge lands on the node center.
//
// This pass reads positions only — no hierarchy — so the host runs it after
// Compute and again after every interactive position change. Edges whose
// source or target is missing from the layout are left untouched for this
// pass rather than failing the whole render.
func DistributePorts(l *Layout) {
	byID := l.nodeIndex()

	// Group edge indices by source node, keeping first-appearance order so
	// the output is deterministic for identical input.
	var sources []string
	groups := make(map[string][]int)
	for i := range l.Edges {
		src := l.Edges[i].Source
		if _, ok := groups[src]; !ok {
			sources = append(sources, src)
		}
		groups[src] = append(groups[src], i)
	}

	for _, srcID := range sources {
		src, ok := byID[srcID]
		if !ok {
			continue // stale edges, e.g. after a node deletion
		}

		members := make([]int, 0, len(groups[srcID]))
		for _, ei := range groups[srcID] {
			if _, ok := byID[l.Edges[ei].Target]; ok {
				members = append(members, ei)
			}
		}
		if len(members) == 0 {
			continue
		}

		// Stable sort: ties keep declaration order, so dragging one node
		// never reshuffles unrelated edges.
		slices.SortStableFunc(members, func(a, b int) int {
			return cmp.Compare(byID[l.Edges[a].Target].CenterX(), byID[l.Edges[b].Target].CenterX())
		})

		segment := src.Width / float64(len(members))
		for i, ei := range members {
			e := &l.Edges[ei]
			dst := byID[e.Target]
			sx := src.X + (float64(i)+0.5)*segment
			tx := clamp(sx, dst.X, dst.X+dst.Width)
			e.SourcePort = Point{X: sx, Y: src.Y + src.Height}
			e.TargetPort = Point{X: tx, Y: dst.Y}
			e.Bends = bendPoints(e.SourcePort, e.TargetPort)
		}
	}
}
