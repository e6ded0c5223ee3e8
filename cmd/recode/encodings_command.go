package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recode"
)

type encodingView struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
}

func newEncodingsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "encodings",
		Short:       "List the supported encodings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			codecs := recode.Codecs()
			if asJSON {
				views := make([]encodingView, 0, len(codecs))
				for _, c := range codecs {
					views = append(views, encodingView{
						Name:        c.Name,
						Aliases:     c.Aliases,
						Description: c.Description,
					})
				}
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(codecs))
			for _, c := range codecs {
				rows = append(rows, []string{c.Name, strings.Join(c.Aliases, ", "), c.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Aliases", "Description"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}
