package layout

import "github.com/nocworks/socplan/pkg/topo"

// treeNode wraps one input node for the duration of a single layout run.
// Trees are rebuilt from scratch on every Compute call and discarded after
// positions are emitted; they carry no state across invocations.
type treeNode struct {
	node     topo.Node
	children []*treeNode
	depth    int

	// Column assignment results. col is only set for leaves; the inclusive
	// [minCol, maxCol] span is defined for every node once assignment ran.
	col            int
	hasCol         bool
	minCol, maxCol int
	hasSpan        bool
}

// resolveEndpoint maps a connection endpoint, which may be a node id or a
// port name, to the owning node id. Unknown names report false.
func resolveEndpoint(name string, owners map[string]string, byID map[string]*treeNode) (string, bool) {
	if owner, ok := owners[name]; ok {
		name = owner
	}
	_, ok := byID[name]
	return name, ok
}

// buildForest reduces the connection list to a forest of parent→child trees.
//
// Each resolved (from, to) pair makes to a child of from, deduplicating
// repeated pairs, and the first parent encountered in declaration order
// claims the child: later parents keep their routed edge but never re-parent
// it. Nodes never claimed as a child become roots. Declaration order is part
// of the contract — it is the tie-break that keeps layouts reproducible.
//
// The walk that assigns depths skips already-visited children, and any node
// left unvisited afterwards (a connection component where every node is
// claimed, e.g. a↔b) is appended as an extra root in input order. Every
// input node therefore appears in exactly one tree and the walk terminates
// even on cyclic input.
func buildForest(nodes []topo.Node, conns []topo.Connection, owners map[string]string) []*treeNode {
	byID := make(map[string]*treeNode, len(nodes))
	order := make([]*treeNode, 0, len(nodes))
	for _, n := range nodes {
		tn := &treeNode{node: n}
		byID[n.ID] = tn
		order = append(order, tn)
	}

	seen := make(map[[2]string]struct{}, len(conns))
	claimed := make(map[string]bool, len(nodes))
	for _, c := range conns {
		from, ok := resolveEndpoint(c.From, owners, byID)
		if !ok {
			continue
		}
		to, ok := resolveEndpoint(c.To, owners, byID)
		if !ok || from == to {
			continue
		}
		pair := [2]string{from, to}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		if claimed[to] {
			continue // first parent wins
		}
		claimed[to] = true
		byID[from].children = append(byID[from].children, byID[to])
	}

	var roots []*treeNode
	for _, tn := range order {
		if !claimed[tn.node.ID] {
			roots = append(roots, tn)
		}
	}

	visited := make(map[*treeNode]bool, len(order))
	for _, r := range roots {
		assignDepths(r, 0, visited)
	}
	for _, tn := range order {
		if !visited[tn] {
			roots = append(roots, tn)
			assignDepths(tn, 0, visited)
		}
	}
	return roots
}

// assignDepths walks the tree pre-order, setting depth and pruning children
// that were already visited through another path. With exclusive first-claim
// ownership pruning only ever triggers inside rootless cycle components.
func assignDepths(tn *treeNode, depth int, visited map[*treeNode]bool) {
	visited[tn] = true
	tn.depth = depth
	kept := tn.children[:0]
	for _, c := range tn.children {
		if visited[c] {
			continue
		}
		kept = append(kept, c)
		assignDepths(c, depth+1, visited)
	}
	tn.children = kept
}
