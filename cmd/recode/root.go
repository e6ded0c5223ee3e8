package main

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var logFormatFlag string
	var opts convertOptions

	ctx := newCommandContext(&configFlag)
	ctx.logLevelFlag = &logLevelFlag
	ctx.logFormatFlag = &logFormatFlag

	rootCmd := &cobra.Command{
		Use:           "recode [flags] <file>",
		Short:         "Convert text files between character encodings",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runConvert(cmd, ctx, opts, args[0])
		},
	}

	rootCmd.Flags().StringVarP(&opts.encoding, "encoding", "e", "", `Target encoding (default "utf-8")`)
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (default <stem>_encoded<ext>)")
	rootCmd.Flags().StringVar(&opts.from, "from", "", "Source encoding (skips detection)")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print conversion details")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (console or json)")

	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newDetectCommand(ctx))
	rootCmd.AddCommand(newEncodingsCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
