package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nocworks/socplan/pkg/gen"
	"github.com/nocworks/socplan/pkg/topo"
)

// generateCommand creates the generate command for running floogen.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		workdir string
		binary  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generate <config.yml>",
		Short: "Generate RTL from a topology config via floogen",
		Long: `Generate RTL from a topology config via floogen.

The config is validated first; generation only runs on valid configs. The
generator output is archived as a zip next to the job directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], workdir, binary, timeout)
		},
	}

	cmd.Flags().StringVar(&workdir, "workdir", "jobs", "directory for job outputs")
	cmd.Flags().StringVar(&binary, "generator", "floogen", "generator binary")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "generator run timeout")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, input, workdir, binary string, timeout time.Duration) error {
	t, err := topo.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load config %s: %w", input, err)
	}
	if errs := t.Validate(); len(errs) > 0 {
		printError("%s has %d problem(s)", input, len(errs))
		for _, e := range errs {
			printDetail("%s", e)
		}
		return fmt.Errorf("validation failed")
	}

	runner, err := gen.NewRunner(workdir, gen.WithBinary(binary), gen.WithTimeout(timeout))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	p := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Generating RTL...")
	spinner.Start()

	job, err := runner.Generate(ctx, t)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("run generator: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if job.Status != gen.StatusCompleted {
		printError("Generation failed (%s)", job.ID)
		if job.Stderr != "" {
			printDetail("%s", job.Stderr)
		}
		return fmt.Errorf("generator exited with failure")
	}
	p.done("Generated RTL")

	printSuccess("Generation complete (%s)", job.ID)
	printFile(job.Archive)
	return nil
}
