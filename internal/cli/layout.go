package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nocworks/socplan/pkg/cache"
	"github.com/nocworks/socplan/pkg/layout"
	"github.com/nocworks/socplan/pkg/topo"
)

// layoutCommand creates the layout command for computing schematic layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	cfg := layout.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "layout <config.yml>",
		Short: "Compute the schematic layout for a topology config",
		Long: `Compute the schematic layout for a topology config.

The layout command places endpoints and routers on a layered canvas, routes
connections as orthogonal paths, and distributes ports along node edges.
The output is a layout.json file that can be rendered with 'socplan render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], cfg, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().Float64Var(&cfg.ColumnPitch, "column-pitch", cfg.ColumnPitch, "horizontal distance between leaf columns")
	cmd.Flags().Float64Var(&cfg.LevelPitch, "level-pitch", cfg.LevelPitch, "vertical distance between hierarchy levels")
	cmd.Flags().Float64Var(&cfg.CanvasPadding, "padding", cfg.CanvasPadding, "canvas margin around the diagram")

	return cmd
}

// runLayout loads the config, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, cfg layout.Config, output string, noCache bool) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load config %s: %w", input, err)
	}
	t, err := topo.Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", input, err)
	}

	store, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	p := newProgress(c.Logger)
	l, cacheHit, err := computeLayout(ctx, store, raw, t, cfg)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	p.done("Computed layout")

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "socplan render "+input)

	return nil
}

// computeLayout computes the full layout (placement, routing, port
// distribution), consulting the cache first.
func computeLayout(ctx context.Context, store cache.Cache, raw []byte, t topo.Topology, cfg layout.Config) (layout.Layout, bool, error) {
	key := cache.LayoutKey(cache.Hash(raw), cfg)
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		var l layout.Layout
		if err := json.Unmarshal(data, &l); err == nil {
			return l, true, nil
		}
	}

	l := layout.Compute(t, cfg)
	layout.DistributePorts(&l)

	if data, err := json.Marshal(l); err == nil {
		_ = store.Set(ctx, key, data, 0)
	}
	return l, false, nil
}
