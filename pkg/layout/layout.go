package layout

import "github.com/nocworks/socplan/pkg/topo"

// Node is a positioned topology node. Coordinates are in abstract canvas
// units with the origin at the top left.
type Node struct {
	ID     string    `json:"id"`
	Kind   topo.Kind `json:"kind"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`

	// Pinned marks a position the host fixed interactively (drag). The
	// engine always emits false; only a full Compute clears a host override.
	Pinned bool `json:"pinned,omitempty"`
}

// CenterX returns the horizontal center of the node.
func (n *Node) CenterX() float64 { return n.X + n.Width/2 }

// Edge is a routed connection. Type and Bidirectional are carried through
// untouched for the renderer's styling.
type Edge struct {
	ID            string  `json:"id"`
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	Type          string  `json:"type,omitempty"`
	Bidirectional bool    `json:"bidirectional,omitempty"`
	SourcePort    Point   `json:"source_port"`
	TargetPort    Point   `json:"target_port"`
	Bends         []Point `json:"bends,omitempty"`
}

// Path returns the full point sequence source port → bends → target port.
// Every consecutive pair shares exactly one coordinate.
func (e *Edge) Path() []Point {
	path := make([]Point, 0, len(e.Bends)+2)
	path = append(path, e.SourcePort)
	path = append(path, e.Bends...)
	return append(path, e.TargetPort)
}

// Layout is the complete engine output: positioned nodes, routed edges and
// the canvas extent covering them.
type Layout struct {
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node returns the node with the given id, or nil if the layout has none.
// The pointer aliases the layout's slice, so position updates through it are
// visible to DistributePorts.
func (l *Layout) Node(id string) *Node {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return &l.Nodes[i]
		}
	}
	return nil
}

func (l *Layout) nodeIndex() map[string]*Node {
	byID := make(map[string]*Node, len(l.Nodes))
	for i := range l.Nodes {
		byID[l.Nodes[i].ID] = &l.Nodes[i]
	}
	return byID
}

// Compute lays out the topology: hierarchy, columns, positions, routed
// edges. It is pure and deterministic — identical input lists produce
// identical geometry — and it never fails; unresolvable connection endpoints
// are dropped instead.
func Compute(t topo.Topology, cfg Config) Layout {
	owners := t.PortOwners()
	roots := buildForest(t.Nodes, t.Connections, owners)
	assignColumns(roots)

	l := Layout{Nodes: placeNodes(roots, cfg)}
	l.Edges = routeEdges(t.Connections, l.nodeIndex(), owners)
	l.Width, l.Height = extent(l.Nodes, cfg)
	return l
}
