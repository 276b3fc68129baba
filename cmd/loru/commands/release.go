package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/loru/internal/core/domain"
)

func (c *CLI) newBumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Bump the manifest version, tag it and publish the release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("level")
			file, _ := cmd.Flags().GetString("file")
			fixMissing, _ := cmd.Flags().GetBool("fix-missing")
			resume, _ := cmd.Flags().GetBool("resume")

			req := domain.BumpRequest{File: file, FixMissing: fixMissing, Resume: resume}
			if !resume {
				parsed, err := domain.ParseBumpLevel(level)
				if err != nil {
					return err
				}
				req.Level = parsed
			}

			_, err := c.app.Bump(cmd.Context(), req)
			return err
		},
	}
	cmd.Flags().String("level", string(domain.BumpPatch), "Version component to bump: patch, minor or major")
	cmd.Flags().String("file", domain.DefaultManifestFile, "Manifest file holding the version")
	cmd.Flags().Bool("fix-missing", false, "Backfill a missing tag or release instead of failing")
	cmd.Flags().Bool("resume", false, "Skip the bump and complete the tag and release of the current version")
	return cmd
}

func (c *CLI) newHooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hooks",
		Short: "Install the git hooks of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.InstallHooks(cmd.Context())
		},
	}
}
