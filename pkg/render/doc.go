// Package render provides visualization rendering for topologies.
//
// # Overview
//
// This package contains the rendering pipeline that turns topologies and
// their computed layouts into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Schematic diagrams (in [svg] subpackage)
//   - Node-link diagrams (in [dot] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They work with the output
// of either renderer.
//
//	img := svg.Render(l)
//	pdf, err := render.ToPDF(img)
//	png, err := render.ToPNG(img, 2.0)  // 2x scale
//
// # Schematic Diagrams
//
// The [svg] subpackage draws the layered schematic view: endpoints and
// routers as rectangles placed by [layout.Compute], connections as
// orthogonal polylines following the routed ports and bends.
//
// # Node-Link Diagrams
//
// The [dot] subpackage renders the topology as a plain directed graph
// using Graphviz, useful for quick structural inspection independent of
// the schematic geometry.
//
//	d := dot.ToDOT(top)
//	img, err := dot.RenderSVG(d)
package render
