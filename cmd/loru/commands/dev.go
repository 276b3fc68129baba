package commands

import "github.com/spf13/cobra"

func (c *CLI) newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Workspace development commands",
	}

	cmd.AddCommand(
		c.newCheckCmd(),
		c.newFmtCmd(),
		c.newBuildCmd(),
		c.newRunCmd(),
		c.newSchemasCmd(),
		c.newBumpCmd(),
		c.newBomCmd(),
		c.newHooksCmd(),
	)
	return cmd
}
