package layout

import "github.com/nocworks/socplan/pkg/topo"

// placeNodes converts (depth, column span) into pixel geometry, emitting one
// Node per tree node in pre-order. Nothing mutates the records afterwards;
// interactive position overrides are owned by the caller.
func placeNodes(roots []*treeNode, cfg Config) []Node {
	var out []Node
	var place func(tn *treeNode)
	place = func(tn *treeNode) {
		out = append(out, positionNode(tn, cfg))
		for _, c := range tn.children {
			place(c)
		}
	}
	for _, r := range roots {
		place(r)
	}
	return out
}

func positionNode(tn *treeNode, cfg Config) Node {
	y := float64(tn.depth)*cfg.LevelPitch + cfg.CanvasPadding
	centerCol := float64(tn.minCol+tn.maxCol) / 2
	xCenter := centerCol*cfg.ColumnPitch + cfg.CanvasPadding

	width := cfg.EndpointWidth
	if tn.node.Kind == topo.KindRouter {
		// Routers widen to embrace the columns routed through them.
		spanCols := float64(tn.maxCol - tn.minCol + 1)
		width = clamp(spanCols*cfg.ColumnPitch+2*cfg.RouterPadding, cfg.RouterMinWidth, cfg.RouterMaxWidth)
	}

	return Node{
		ID:     tn.node.ID,
		Kind:   tn.node.Kind,
		X:      xCenter - width/2,
		Y:      y,
		Width:  width,
		Height: cfg.NodeHeight,
	}
}

// extent returns the canvas size covering all node bounds plus padding.
func extent(nodes []Node, cfg Config) (width, height float64) {
	if len(nodes) == 0 {
		return 2 * cfg.CanvasPadding, 2 * cfg.CanvasPadding
	}
	var maxX, maxY float64
	for _, n := range nodes {
		maxX = max(maxX, n.X+n.Width)
		maxY = max(maxY, n.Y+n.Height)
	}
	return maxX + cfg.CanvasPadding, maxY + cfg.CanvasPadding
}
