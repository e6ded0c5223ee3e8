package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"recode"
	"recode/internal/config"
	"recode/internal/logging"
)

type convertOptions struct {
	encoding string
	output   string
	from     string
	verbose  bool
}

// newConvertCommand exposes conversion as an explicit subcommand. The root
// command accepts a bare file argument for the same operation.
func newConvertCommand(ctx *commandContext) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Re-encode a text file into a target encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.encoding, "encoding", "e", "", `Target encoding (default "utf-8")`)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (default <stem>_encoded<ext>)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Source encoding (skips detection)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print conversion details")
	return cmd
}

func runConvert(cmd *cobra.Command, ctx *commandContext, opts convertOptions, inputPath string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	target := strings.TrimSpace(opts.encoding)
	if target == "" {
		target = cfg.Encoding.Default
	}

	out := cmd.OutOrStdout()
	if opts.verbose {
		fmt.Fprintf(out, "Input file: %s\n", inputPath)
		fmt.Fprintf(out, "Target encoding: %s\n", target)
		if opts.output != "" {
			fmt.Fprintf(out, "Output file: %s\n", opts.output)
		}
	}

	svc, err := newService(ctx, cfg, cmd, opts.verbose)
	if err != nil {
		return err
	}

	resultPath, err := svc.EncodeFile(recode.Request{
		InputPath:      inputPath,
		OutputPath:     opts.output,
		Encoding:       target,
		SourceEncoding: opts.from,
	})
	if err != nil {
		return err
	}

	if opts.verbose && strings.TrimSpace(opts.from) == "" {
		if det, err := svc.Detect(inputPath); err == nil {
			fmt.Fprintf(out, "Original encoding detected: %s (confidence %.2f)\n", det.Encoding, det.Confidence)
		}
	}

	fmt.Fprintf(out, "File encoded successfully: %s\n", resultPath)
	return nil
}

// newService assembles the conversion service from configuration. Verbose
// runs force debug diagnostics on stderr regardless of the configured level;
// --log-level and --log-format override the configured values.
func newService(ctx *commandContext, cfg *config.Config, cmd *cobra.Command, verbose bool) (*recode.Service, error) {
	detector, err := newDetector(cfg)
	if err != nil {
		return nil, err
	}

	var logger *slog.Logger
	if verbose || ctx.logFlagsSet() {
		level := ctx.resolvedLogLevel(cfg)
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(logging.Options{
			Level:  level,
			Format: ctx.resolvedLogFormat(cfg),
			Output: cmd.ErrOrStderr(),
		})
	} else {
		logger, err = logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	}
	if err != nil {
		return nil, err
	}

	return recode.New(recode.Options{
		Detector:      detector,
		Logger:        logger,
		MinConfidence: cfg.Detection.MinConfidence,
	}), nil
}

func newDetector(cfg *config.Config) (recode.Detector, error) {
	if cfg.Detection.Strategy == config.StrategySequential {
		return recode.NewSequentialDetector()
	}
	return recode.NewDetector(), nil
}
