package layout

// Point is a coordinate in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// bendPoints returns the intermediate bends of the canonical two-bend
// Manhattan path between src and dst: two points on the vertical midline
// between the port rows. Horizontally aligned ports need no bends at all,
// the path degenerates to a single vertical segment.
func bendPoints(src, dst Point) []Point {
	if src.X == dst.X {
		return nil
	}
	midY := (src.Y + dst.Y) / 2
	return []Point{{X: src.X, Y: midY}, {X: dst.X, Y: midY}}
}
