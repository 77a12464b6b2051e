package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pict/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove cache entries and optionally generated assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputs, _ := cmd.Flags().GetBool("outputs")
			return c.app.Clean(cmd.Context(), manifestPath(cmd), app.CleanOptions{
				Outputs: outputs,
			})
		},
	}

	cmd.Flags().BoolP("outputs", "o", false, "Also remove the generated assets")

	return cmd
}
