package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the photo-delivery command tree.
func NewRootCmd() *cobra.Command {
	ctx := &commandContext{}

	cmd := &cobra.Command{
		Use:   "photo-delivery",
		Short: "Prepare event photos for client selection and sort them afterwards",
		Long: `photo-delivery supports a two-step photo delivery workflow.

  convert   numbers every source JPEG and writes a compressed WebP copy
            (foto_001.webp, foto_002.webp, ...) for the web selector
  classify  reads the selector's JSON export and copies each original into
            the category folders the client chose

All paths live in the config file (see 'photo-delivery init').`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			if shouldSkipConfig(cmd) {
				return nil
			}
			return ctx.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (default $PHOTO_DELIVERY_CONFIG or ./photo-delivery.toml)")
	cmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")

	cmd.AddCommand(newConvertCmd(ctx))
	cmd.AddCommand(newClassifyCmd(ctx))
	cmd.AddCommand(newInitCmd(ctx))

	return cmd
}
