package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"photo-delivery/internal/config"
)

func newInitCmd(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(ctx.configFlag)
			if err != nil {
				return err
			}
			if err := config.CreateSample(path, force); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Wrote sample configuration to %s\n", path)
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintln(out, "  1. Edit the paths in the [convert] and [classify] sections")
			fmt.Fprintln(out, "  2. Run: photo-delivery convert")
			fmt.Fprintln(out, "  3. After the client exports a selection: photo-delivery classify")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
