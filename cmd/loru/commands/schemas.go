package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newSchemasCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schemas [fetch|validate|fmt]",
		Short:     "Fetch config schemas and validate or format configs against them",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(domain.SchemaFetch), string(domain.SchemaValidate), string(domain.SchemaFormat)},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := domain.SchemaFetch
			if len(args) == 1 {
				action = domain.SchemaAction(args[0])
			}
			if err := c.app.Schemas(cmd.Context(), action, skipSet(cmd)); err != nil {
				return zerr.With(err, "action", action)
			}
			return nil
		},
	}
}

func (c *CLI) newBomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bom",
		Short: "Bill of materials commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "fetch",
		Short: "Cache the bill-of-materials schema of every member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.FetchBOM(cmd.Context())
		},
	})
	return cmd
}
