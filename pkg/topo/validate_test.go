package topo

import (
	"strings"
	"testing"
)

func validTopology() Topology {
	return Topology{
		Name:      "t",
		Protocols: map[string]Protocol{"axi4": {Type: "AXI4", DataWidth: 64}},
		Nodes: []Node{
			{ID: "cpu", Kind: KindMaster, Protocol: "axi4", Ports: []string{"cpu_ni"}},
			{ID: "xbar", Kind: KindRouter},
			{ID: "dram", Kind: KindSlave, Protocol: "axi4", AddrRange: []string{"0x8000_0000", "0xFFFF_FFFF"}},
		},
		Connections: []Connection{
			{From: "cpu_ni", To: "xbar"},
			{From: "xbar", To: "dram"},
		},
	}
}

func TestValidateOK(t *testing.T) {
	top := validTopology()
	if errs := top.Validate(); errs != nil {
		t.Errorf("valid topology reported errors: %v", errs)
	}
}

func TestValidateSemantics(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Topology)
		wantSub string
	}{
		{
			name: "DuplicateNodeID",
			mutate: func(top *Topology) {
				top.Nodes = append(top.Nodes, Node{ID: "cpu", Kind: KindMaster})
			},
			wantSub: "Duplicate node id",
		},
		{
			name: "DuplicatePortName",
			mutate: func(top *Topology) {
				top.Nodes = append(top.Nodes, Node{ID: "dma", Kind: KindMaster, Ports: []string{"cpu_ni"}})
			},
			wantSub: "Duplicate port name",
		},
		{
			name: "RouterWithPorts",
			mutate: func(top *Topology) {
				top.Nodes[1].Ports = []string{"oops"}
			},
			wantSub: "must not declare ports",
		},
		{
			name: "UnknownConnectionFrom",
			mutate: func(top *Topology) {
				top.Connections = append(top.Connections, Connection{From: "ghost", To: "xbar"})
			},
			wantSub: "undefined 'from' node",
		},
		{
			name: "UnknownConnectionTo",
			mutate: func(top *Topology) {
				top.Connections = append(top.Connections, Connection{From: "xbar", To: "ghost"})
			},
			wantSub: "undefined 'to' node",
		},
		{
			name: "SlaveWithoutAddrRange",
			mutate: func(top *Topology) {
				top.Nodes[2].AddrRange = nil
			},
			wantSub: "must have an address range",
		},
		{
			name: "UndefinedProtocol",
			mutate: func(top *Topology) {
				top.Nodes[0].Protocol = "tilelink"
			},
			wantSub: "undefined protocol",
		},
		{
			name: "AddrRangeOverlap",
			mutate: func(top *Topology) {
				top.Nodes = append(top.Nodes, Node{
					ID: "spm", Kind: KindSlave,
					AddrRange: []string{"0x9000_0000", "0x9FFF_FFFF"},
				})
			},
			wantSub: "Address range overlap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := validTopology()
			tt.mutate(&top)

			errs := top.Validate()
			if len(errs) == 0 {
				t.Fatalf("expected error containing %q, got none", tt.wantSub)
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.wantSub) {
					found = true
				}
			}
			if !found {
				t.Errorf("no error contains %q: %v", tt.wantSub, errs)
			}
		})
	}
}

func TestValidateStructural(t *testing.T) {
	top := validTopology()
	top.Nodes[0].Kind = "bridge"

	errs := top.Validate()
	if len(errs) == 0 {
		t.Fatal("expected structural error for unknown kind")
	}
	// Structural failures short-circuit semantic checks.
	for _, e := range errs {
		if strings.Contains(e, "Duplicate") {
			t.Errorf("semantic check ran despite structural failure: %v", e)
		}
	}
}

func TestParseAddr(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"0x8000_0000", 0x80000000, true},
		{"0xFFFF", 0xFFFF, true},
		{"4096", 4096, true},
		{"zz", 0, false},
	}
	for _, tt := range tests {
		got, err := parseAddr(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseAddr(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("parseAddr(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}
