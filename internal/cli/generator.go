package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/toyz/autoswagger/internal/errors"
	"github.com/toyz/autoswagger/internal/utils"
	"github.com/toyz/autoswagger/internal/utils/fileops"
	"github.com/toyz/autoswagger/pkg/autoswagger"
)

// GenerationSummary records what a run produced
type GenerationSummary struct {
	RoutesLoaded   int
	PathsGenerated int
	Problems       int
	GeneratedFiles []string
	Duration       time.Duration
}

// Generator coordinates the CLI generation process
type Generator struct {
	moduleResolver *ModuleResolver
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a CLI generator reporting through diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewSilentDiagnostics()
	}
	return &Generator{
		moduleResolver: NewModuleResolver(),
		diagnostics:    diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run loads the routes file, builds the document and writes the requested formats
func (g *Generator) Run(ctx context.Context, cfg *GenerateConfig) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	g.diagnostics.Verbose("Starting generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Application root: %s", cfg.Path)

	rts, err := LoadRoutesFile(cfg.Routes, func() (string, error) {
		return g.moduleResolver.ResolveModuleName(cfg.Module, cfg.Path)
	})
	if err != nil {
		return err
	}
	g.summary.RoutesLoaded = len(rts)
	g.diagnostics.Verbose("Loaded %d route(s) from %s", len(rts), cfg.Routes)

	generator, err := autoswagger.New(cfg.Options, autoswagger.WithDiagnostics(g.diagnostics))
	if err != nil {
		return err
	}

	doc, err := generator.Generate(ctx, rts)
	if err != nil {
		return err
	}
	g.summary.PathsGenerated = doc.Paths.Len()
	g.summary.Problems = len(generator.Problems())

	if problems := generator.Problems(); len(problems) > 0 {
		g.diagnostics.Warn("%d handler comment(s) could not be read and were left undocumented:", len(problems))
		g.diagnostics.Indent()
		for _, problem := range problems {
			g.diagnostics.List("%s", errors.Summary(problem))
		}
		g.diagnostics.Unindent()
	}

	if err := g.write(cfg, doc); err != nil {
		return err
	}

	g.summary.Duration = time.Since(startTime)
	return nil
}

func (g *Generator) write(cfg *GenerateConfig, doc *openapi3.T) error {
	ops := fileops.NewFileOps()

	for _, path := range outputs(cfg.Out, cfg.Format) {
		marshal := autoswagger.MarshalYAML
		if filepath.Ext(path) == ".json" {
			marshal = autoswagger.MarshalJSON
		}

		data, err := marshal(doc)
		if err != nil {
			return err
		}
		if err := ops.WriteFile(path, data, 0o644); err != nil {
			return err
		}

		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
		g.diagnostics.Debug("Wrote %s (%d bytes)", path, len(data))
	}
	return nil
}

// outputs lists the files written for a format
func outputs(dir, format string) []string {
	switch format {
	case FormatJSON:
		return []string{filepath.Join(dir, autoswagger.JSONFileName)}
	case FormatYAML:
		return []string{filepath.Join(dir, autoswagger.YAMLFileName)}
	default:
		return []string{
			filepath.Join(dir, autoswagger.JSONFileName),
			filepath.Join(dir, autoswagger.YAMLFileName),
		}
	}
}
