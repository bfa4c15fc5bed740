package layout

import (
	"testing"

	"github.com/nocworks/socplan/pkg/topo"
)

func forestByID(roots []*treeNode) map[string]*treeNode {
	byID := make(map[string]*treeNode)
	var walk func(tn *treeNode)
	walk = func(tn *treeNode) {
		byID[tn.node.ID] = tn
		for _, c := range tn.children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return byID
}

func TestBuildForest(t *testing.T) {
	tests := []struct {
		name      string
		nodes     []topo.Node
		conns     []topo.Connection
		wantRoots []string
		wantDepth map[string]int
	}{
		{
			name: "Chain",
			nodes: []topo.Node{
				{ID: "m", Kind: topo.KindMaster},
				{ID: "r", Kind: topo.KindRouter},
				{ID: "s", Kind: topo.KindSlave},
			},
			conns:     []topo.Connection{{From: "m", To: "r"}, {From: "r", To: "s"}},
			wantRoots: []string{"m"},
			wantDepth: map[string]int{"m": 0, "r": 1, "s": 2},
		},
		{
			name: "FirstParentClaims",
			nodes: []topo.Node{
				{ID: "p0", Kind: topo.KindMaster},
				{ID: "p1", Kind: topo.KindMaster},
				{ID: "c", Kind: topo.KindSlave},
			},
			conns:     []topo.Connection{{From: "p0", To: "c"}, {From: "p1", To: "c"}},
			wantRoots: []string{"p0", "p1"},
			wantDepth: map[string]int{"p0": 0, "p1": 0, "c": 1},
		},
		{
			name: "IsolatedNodeIsRoot",
			nodes: []topo.Node{
				{ID: "m", Kind: topo.KindMaster},
				{ID: "lonely", Kind: topo.KindSlave},
				{ID: "r", Kind: topo.KindRouter},
			},
			conns:     []topo.Connection{{From: "m", To: "r"}},
			wantRoots: []string{"m", "lonely"},
			wantDepth: map[string]int{"m": 0, "lonely": 0, "r": 1},
		},
		{
			name: "DuplicatePairsDeduplicated",
			nodes: []topo.Node{
				{ID: "m", Kind: topo.KindMaster},
				{ID: "r", Kind: topo.KindRouter},
			},
			conns: []topo.Connection{
				{From: "m", To: "r", Type: "req"},
				{From: "m", To: "r", Type: "rsp"},
			},
			wantRoots: []string{"m"},
			wantDepth: map[string]int{"m": 0, "r": 1},
		},
		{
			name: "SelfLoopIgnored",
			nodes: []topo.Node{
				{ID: "r", Kind: topo.KindRouter},
			},
			conns:     []topo.Connection{{From: "r", To: "r"}},
			wantRoots: []string{"r"},
			wantDepth: map[string]int{"r": 0},
		},
		{
			name: "CycleLeftoverBecomesRoot",
			nodes: []topo.Node{
				{ID: "a", Kind: topo.KindRouter},
				{ID: "b", Kind: topo.KindRouter},
			},
			conns:     []topo.Connection{{From: "a", To: "b"}, {From: "b", To: "a"}},
			wantRoots: []string{"a"},
			wantDepth: map[string]int{"a": 0, "b": 1},
		},
		{
			name: "UnresolvableEndpointsDropped",
			nodes: []topo.Node{
				{ID: "r", Kind: topo.KindRouter},
			},
			conns:     []topo.Connection{{From: "ghost", To: "r"}, {From: "r", To: "ghost"}},
			wantRoots: []string{"r"},
			wantDepth: map[string]int{"r": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := topo.Topology{Nodes: tt.nodes, Connections: tt.conns}
			roots := buildForest(tt.nodes, tt.conns, top.PortOwners())

			gotRoots := make([]string, len(roots))
			for i, r := range roots {
				gotRoots[i] = r.node.ID
			}
			if len(gotRoots) != len(tt.wantRoots) {
				t.Fatalf("roots = %v, want %v", gotRoots, tt.wantRoots)
			}
			for i := range gotRoots {
				if gotRoots[i] != tt.wantRoots[i] {
					t.Fatalf("roots = %v, want %v", gotRoots, tt.wantRoots)
				}
			}

			byID := forestByID(roots)
			if len(byID) != len(tt.nodes) {
				t.Fatalf("forest holds %d nodes, want %d", len(byID), len(tt.nodes))
			}
			for id, depth := range tt.wantDepth {
				tn, ok := byID[id]
				if !ok {
					t.Fatalf("%s missing from forest", id)
				}
				if tn.depth != depth {
					t.Errorf("%s: depth = %d, want %d", id, tn.depth, depth)
				}
			}
		})
	}
}

func TestBuildForestPortResolution(t *testing.T) {
	nodes := []topo.Node{
		{ID: "cluster", Kind: topo.KindMaster, Ports: []string{"ni_a", "ni_b"}},
		{ID: "r", Kind: topo.KindRouter},
	}
	conns := []topo.Connection{{From: "ni_b", To: "r"}}
	top := topo.Topology{Nodes: nodes, Connections: conns}

	roots := buildForest(nodes, conns, top.PortOwners())
	if len(roots) != 1 || roots[0].node.ID != "cluster" {
		t.Fatalf("want single root cluster, got %d roots", len(roots))
	}
	if len(roots[0].children) != 1 || roots[0].children[0].node.ID != "r" {
		t.Fatal("port reference did not attach the router under its owner")
	}
}
