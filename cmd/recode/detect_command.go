package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recode"
)

type detectReport struct {
	Path string `json:"path"`
	recode.Detection
}

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Detect the character encoding of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := newService(ctx, cfg, cmd, false)
			if err != nil {
				return err
			}
			det, err := svc.Detect(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, detectReport{Path: args[0], Detection: det})
			}

			out := cmd.OutOrStdout()
			line := fmt.Sprintf("%s: %s (confidence %.2f)", args[0], det.Encoding, det.Confidence)
			if shouldColorize(out) {
				color := ansiGreen
				if det.Confidence < 0.5 {
					color = ansiYellow
				}
				line = color + line + ansiReset
			}
			fmt.Fprintln(out, line)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}
