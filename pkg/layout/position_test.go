package layout

import (
	"testing"

	"github.com/nocworks/socplan/pkg/topo"
)

func TestPositionNode(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		tn   treeNode
		want Node
	}{
		{
			name: "EndpointFixedWidth",
			tn: treeNode{
				node:  topo.Node{ID: "m", Kind: topo.KindMaster},
				depth: 0, minCol: 0, maxCol: 0,
			},
			want: Node{
				ID: "m", Kind: topo.KindMaster,
				X: cfg.CanvasPadding - cfg.EndpointWidth/2, Y: cfg.CanvasPadding,
				Width: cfg.EndpointWidth, Height: cfg.NodeHeight,
			},
		},
		{
			name: "RouterSpanWidth",
			tn: treeNode{
				node:  topo.Node{ID: "r", Kind: topo.KindRouter},
				depth: 1, minCol: 0, maxCol: 2,
			},
			want: Node{
				ID: "r", Kind: topo.KindRouter,
				// center over column 1, width covering three columns
				X:     1*cfg.ColumnPitch + cfg.CanvasPadding - (3*cfg.ColumnPitch+2*cfg.RouterPadding)/2,
				Y:     cfg.LevelPitch + cfg.CanvasPadding,
				Width: 3*cfg.ColumnPitch + 2*cfg.RouterPadding, Height: cfg.NodeHeight,
			},
		},
		{
			name: "RouterWidthClampedToMax",
			tn: treeNode{
				node:  topo.Node{ID: "wide", Kind: topo.KindRouter},
				depth: 0, minCol: 0, maxCol: 9,
			},
			want: Node{
				ID: "wide", Kind: topo.KindRouter,
				X:     4.5*cfg.ColumnPitch + cfg.CanvasPadding - cfg.RouterMaxWidth/2,
				Y:     cfg.CanvasPadding,
				Width: cfg.RouterMaxWidth, Height: cfg.NodeHeight,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := positionNode(&tt.tn, cfg); got != tt.want {
				t.Errorf("positionNode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPositionRouterMinClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColumnPitch = 50
	cfg.RouterPadding = 10

	tn := treeNode{node: topo.Node{ID: "r", Kind: topo.KindRouter}, minCol: 1, maxCol: 1}
	got := positionNode(&tn, cfg)
	if got.Width != cfg.RouterMinWidth {
		t.Errorf("width = %v, want min clamp %v", got.Width, cfg.RouterMinWidth)
	}
}

func TestExtent(t *testing.T) {
	cfg := DefaultConfig()

	if w, h := extent(nil, cfg); w != 2*cfg.CanvasPadding || h != 2*cfg.CanvasPadding {
		t.Errorf("empty extent = %vx%v", w, h)
	}

	nodes := []Node{
		{X: 0, Y: 0, Width: 200, Height: 60},
		{X: 500, Y: 300, Width: 140, Height: 60},
	}
	w, h := extent(nodes, cfg)
	if w != 640+cfg.CanvasPadding {
		t.Errorf("width = %v, want %v", w, 640+cfg.CanvasPadding)
	}
	if h != 360+cfg.CanvasPadding {
		t.Errorf("height = %v, want %v", h, 360+cfg.CanvasPadding)
	}
}
