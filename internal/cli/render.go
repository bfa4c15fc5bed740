package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nocworks/socplan/pkg/cache"
	"github.com/nocworks/socplan/pkg/layout"
	"github.com/nocworks/socplan/pkg/render"
	"github.com/nocworks/socplan/pkg/render/dot"
	"github.com/nocworks/socplan/pkg/render/svg"
	"github.com/nocworks/socplan/pkg/topo"
)

// Visualization types.
const (
	vizSchematic = "schematic"
	vizNodelink  = "nodelink"
)

// Output formats.
const (
	formatSVG = "svg"
	formatDOT = "dot"
	formatPNG = "png"
	formatPDF = "pdf"
)

// renderCommand creates the render command for producing diagram files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		vizType string
		formats string
		scale   float64
		noCache bool
	)
	cfg := layout.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "render <config.yml>",
		Short: "Render a topology config as a diagram",
		Long: `Render a topology config as a diagram.

The schematic type (-t schematic) draws the layered layout computed by
'socplan layout': endpoints and routers as rectangles, connections as
orthogonal polylines. The nodelink type (-t nodelink) draws a plain
directed graph via Graphviz.

PNG and PDF output require rsvg-convert (from librsvg) on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], cfg, renderOptions{
				output:  output,
				vizType: vizType,
				formats: parseFormats(formats),
				scale:   scale,
				noCache: noCache,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file base (default: input name)")
	cmd.Flags().StringVarP(&vizType, "type", "t", vizSchematic, "visualization type: schematic (default), nodelink")
	cmd.Flags().StringVarP(&formats, "formats", "f", formatSVG, "comma-separated output formats: svg, dot, png, pdf")
	cmd.Flags().Float64Var(&scale, "scale", 2.0, "PNG resolution scale")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

type renderOptions struct {
	output  string
	vizType string
	formats []string
	scale   float64
	noCache bool
}

func (c *CLI) runRender(ctx context.Context, input string, cfg layout.Config, opts renderOptions) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load config %s: %w", input, err)
	}
	t, err := topo.Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", input, err)
	}

	img, dotSrc, err := c.renderImage(ctx, raw, t, cfg, opts)
	if err != nil {
		return err
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	printSuccess("Render complete")
	for _, format := range opts.formats {
		data, err := convertFormat(img, dotSrc, format, opts.scale)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// renderImage produces the SVG bytes for the selected visualization type,
// plus the DOT source when applicable.
func (c *CLI) renderImage(ctx context.Context, raw []byte, t topo.Topology, cfg layout.Config, opts renderOptions) ([]byte, string, error) {
	switch opts.vizType {
	case vizSchematic:
		store, err := newCache(opts.noCache)
		if err != nil {
			return nil, "", fmt.Errorf("initialize cache: %w", err)
		}
		defer store.Close()

		key := cache.ArtifactKey(cache.Hash(raw), formatSVG, cfg)
		if img, hit, err := store.Get(ctx, key); err == nil && hit {
			return img, "", nil
		}

		l, _, err := computeLayout(ctx, store, raw, t, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("compute layout: %w", err)
		}
		img := svg.Render(l)
		_ = store.Set(ctx, key, img, 0)
		return img, "", nil

	case vizNodelink:
		dotSrc := dot.ToDOT(t)
		img, err := dot.RenderSVG(dotSrc)
		if err != nil {
			return nil, "", fmt.Errorf("render nodelink: %w", err)
		}
		return img, dotSrc, nil

	default:
		return nil, "", fmt.Errorf("unknown visualization type %q", opts.vizType)
	}
}

func convertFormat(img []byte, dotSrc, format string, scale float64) ([]byte, error) {
	switch format {
	case formatSVG:
		return img, nil
	case formatDOT:
		if dotSrc == "" {
			return nil, fmt.Errorf("dot output requires -t nodelink")
		}
		return []byte(dotSrc), nil
	case formatPNG:
		return render.ToPNG(img, scale)
	case formatPDF:
		return render.ToPDF(img)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}
