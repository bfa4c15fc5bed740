package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nocworks/socplan/pkg/layout"
	"github.com/nocworks/socplan/pkg/topo"
)

func sampleLayout() layout.Layout {
	return layout.Layout{
		Nodes: []layout.Node{
			{ID: "cpu", Kind: topo.KindMaster, X: 30, Y: 100, Width: 140, Height: 60},
			{ID: "xbar", Kind: topo.KindRouter, X: 10, Y: 220, Width: 180, Height: 60, Pinned: true},
		},
		Edges: []layout.Edge{
			{
				ID: "cpu-xbar-0", Source: "cpu", Target: "xbar", Type: "wide", Bidirectional: true,
				SourcePort: layout.Point{X: 100, Y: 160},
				TargetPort: layout.Point{X: 100, Y: 220},
			},
		},
		Width: 300, Height: 400,
	}
}

func TestRender(t *testing.T) {
	out := string(Render(sampleLayout()))

	for _, want := range []string{
		`viewBox="0 0 300.0 400.0"`,
		`id="node-cpu" class="node master"`,
		`class="node router pinned"`,
		`id="edge-cpu-xbar-0" class="edge wide"`,
		`points="100.0,160.0 100.0,220.0"`,
		`marker-start="url(#arrow)"`,
		`<text class="label" x="100.0" y="130.0">cpu</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	l := sampleLayout()
	if !bytes.Equal(Render(l), Render(l)) {
		t.Error("same layout rendered differently")
	}
}

func TestRenderEscapesIDs(t *testing.T) {
	l := layout.Layout{
		Nodes: []layout.Node{{ID: `a<b>"c"`, Kind: topo.KindMaster, Width: 10, Height: 10}},
		Width: 100, Height: 100,
	}
	out := string(Render(l))
	if strings.Contains(out, `id="node-a<b>`) {
		t.Error("node id not escaped")
	}
	if !strings.Contains(out, "a&lt;b&gt;&quot;c&quot;") {
		t.Error("escaped id missing")
	}
}
