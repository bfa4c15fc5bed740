package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nocworks/socplan/pkg/topo"
)

// validateCommand creates the validate command for checking topology configs.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yml>",
		Short: "Validate a topology config",
		Long: `Validate a topology config.

Checks the config structurally (required fields, known node kinds) and
semantically (unique ids and ports, resolvable connections, defined
protocols, non-overlapping slave address ranges). Exits non-zero when the
config is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

func (c *CLI) runValidate(input string) error {
	t, err := topo.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load config %s: %w", input, err)
	}

	errs := t.Validate()
	if len(errs) == 0 {
		printSuccess("%s is valid", input)
		printStats(len(t.Nodes), len(t.Connections), false)
		return nil
	}

	printError("%s has %d problem(s)", input, len(errs))
	for _, e := range errs {
		printDetail("%s", e)
	}
	return fmt.Errorf("validation failed")
}
