// Package cli implements the autoswagger command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the root command so tests can exercise the CLI easily
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "autoswagger",
		Short:         "Generate OpenAPI 3.0 documents from Go route tables",
		Long:          "autoswagger builds swagger.json and swagger.yml from a route table, the documentation comments on handlers and the structs under models/ and interfaces/.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flagErrors := func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	}
	cmd.SetFlagErrorFunc(flagErrors)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML or JSON)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Only show errors")

	g := newGenerateCmd()
	g.SetFlagErrorFunc(flagErrors)
	cmd.AddCommand(g)

	return cmd
}
