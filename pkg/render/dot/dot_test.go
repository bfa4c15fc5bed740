package dot

import (
	"strings"
	"testing"

	"github.com/nocworks/socplan/pkg/topo"
)

func TestToDOT(t *testing.T) {
	top := topo.Topology{
		Name: "demo",
		Nodes: []topo.Node{
			{ID: "cpu", Kind: topo.KindMaster, Ports: []string{"cpu_ni"}},
			{ID: "xbar", Kind: topo.KindRouter},
			{ID: "dram", Kind: topo.KindSlave},
		},
		Connections: []topo.Connection{
			{From: "cpu_ni", To: "xbar"},
			{From: "xbar", To: "dram", Type: "wide", Bidirectional: true},
		},
	}

	out := ToDOT(top)
	for _, want := range []string{
		"digraph G {",
		`"xbar" [label="xbar", shape=diamond`,
		`"cpu" [label="cpu", fillcolor=lightblue]`,
		`"cpu" -> "xbar";`,
		`"xbar" -> "dram" [dir=both, label="wide"];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cpu_ni") {
		t.Error("port name leaked into DOT instead of owner node")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 101.40 200.25">rest</svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 101.40 200.25"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="101" height="200"`) {
		t.Errorf("dimensions not rewritten: %s", out)
	}

	plain := []byte("<svg>no viewbox</svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Error("svg without viewBox should pass through")
	}
}
