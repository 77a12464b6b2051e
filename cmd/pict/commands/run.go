package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pict/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate all declared assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			return c.app.Run(cmd.Context(), manifestPath(cmd), app.RunOptions{
				NoCache: noCache,
			})
		},
	}

	cmd.Flags().Bool("no-cache", false, "Bypass cache lookups and regenerate every asset")

	return cmd
}
