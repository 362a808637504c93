package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/toyz/autoswagger/internal/utils"
)

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate swagger.json and swagger.yml for an application",
		Long: "Generate an OpenAPI 3.0 document from a routes file and the application's sources. " +
			"Options can be provided via flags, a config file, or defaults.",
		Example: strings.TrimSpace(`  autoswagger generate --routes routes.yml --root . --title "My API"
  autoswagger --config autoswagger.yml generate --format json --out ./docs`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("routes", "", "Routes file (YAML or JSON)")
	flags.String("root", "", "Application root; defaults to the current directory")
	flags.String("out", "", "Output directory; defaults to the current directory")
	flags.String("format", "", "Output format (yaml|json|both); defaults to both")
	flags.String("module", "", "Module path for symbol handlers (defaults to go.mod module)")
	flags.String("title", "", "Document title")
	flags.String("version", "", "Document version; defaults to 1.0.0")
	flags.String("prefer", "", "Verb kept when a route serves both PUT and PATCH; defaults to PUT")
	flags.StringSlice("ignore", nil, "Route patterns to leave out (substring, prefix* or *suffix)")
	flags.StringSlice("auth-middleware", nil, "Extra middleware names that require a bearer token")
	flags.Int("tag-index", 0, "Path segment used as the operation tag; defaults to 1")
	flags.Bool("snake-case", true, "Use snake_case property names for untagged struct fields")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyConfigFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// diagnosticsFor picks the output level for a run
func diagnosticsFor(cmd *cobra.Command, cfg *GenerateConfig) *utils.DiagnosticSystem {
	level := utils.DiagnosticInfo
	switch {
	case cfg.Quiet:
		level = utils.DiagnosticError
	case cfg.Verbose:
		level = utils.DiagnosticVerbose
	}
	return utils.NewDiagnosticSystemWithWriters(level, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func runGenerate(cmd *cobra.Command, cfg *GenerateConfig) error {
	diagnostics := diagnosticsFor(cmd, cfg)
	diagnostics.Section("Autoswagger")

	if cfg.Verbose {
		diagnostics.List("Routes file: %s", cfg.Routes)
		diagnostics.List("Application root: %s", cfg.Path)
		diagnostics.List("Output: %s (%s)", cfg.Out, cfg.Format)
		if cfg.ConfigPath != "" {
			diagnostics.List("Config file: %s", cfg.ConfigPath)
		}
	}

	generator := NewGenerator(diagnostics)
	if err := generator.Run(cmd.Context(), cfg); err != nil {
		diagnostics.Error("Generation failed: %v", err)
		return err
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Generation Complete!", map[string]interface{}{
		"Routes loaded":   summary.RoutesLoaded,
		"Paths generated": summary.PathsGenerated,
		"Problems":        summary.Problems,
		"Duration":        summary.Duration.Round(time.Millisecond),
	})
	for _, file := range summary.GeneratedFiles {
		diagnostics.List("%s", file)
	}
	return nil
}
