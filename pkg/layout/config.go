package layout

// Config holds the geometry constants of the engine. It is passed explicitly
// into [Compute] rather than living as package state, so concurrent layouts
// with different settings never interfere and tests can pin exact numbers.
type Config struct {
	// ColumnPitch is the horizontal distance between adjacent column centers.
	ColumnPitch float64 `json:"column_pitch"`

	// LevelPitch is the vertical distance between hierarchy levels.
	LevelPitch float64 `json:"level_pitch"`

	// CanvasPadding is the margin applied around the drawing and folded into
	// every coordinate origin.
	CanvasPadding float64 `json:"canvas_padding"`

	// EndpointWidth is the fixed width of master and slave nodes.
	EndpointWidth float64 `json:"endpoint_width"`

	// NodeHeight is the fixed height of every node.
	NodeHeight float64 `json:"node_height"`

	// RouterPadding is the inner horizontal padding added on each side of a
	// router's column span.
	RouterPadding float64 `json:"router_padding"`

	// RouterMinWidth and RouterMaxWidth clamp span-derived router widths so
	// single-child and very wide spans stay legible.
	RouterMinWidth float64 `json:"router_min_width"`
	RouterMaxWidth float64 `json:"router_max_width"`
}

// DefaultConfig returns the standard geometry used by the CLI and the API
// when no overrides are supplied.
func DefaultConfig() Config {
	return Config{
		ColumnPitch:    160,
		LevelPitch:     120,
		CanvasPadding:  100,
		EndpointWidth:  140,
		NodeHeight:     60,
		RouterPadding:  20,
		RouterMinWidth: 140,
		RouterMaxWidth: 640,
	}
}
