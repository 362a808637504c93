// Package autoswagger assembles an OpenAPI 3.0 document from an
// application's route table, the documentation comments on its handlers and
// the structs under its models/ and interfaces/ directories.
package autoswagger

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/toyz/autoswagger/internal/errors"
	"github.com/toyz/autoswagger/internal/parser"
	"github.com/toyz/autoswagger/internal/schema"
	"github.com/toyz/autoswagger/internal/synth"
	"github.com/toyz/autoswagger/internal/utils"
	"github.com/toyz/autoswagger/pkg/routes"
)

// OpenAPIVersion is the version written to every document
const OpenAPIVersion = "3.0.0"

// Generator builds documents for one application. Every Generate call
// starts from fresh caches; only the problems of the most recent call are
// retained, so concurrent calls share that report.
type Generator struct {
	opts        Options
	root        string
	diagnostics *utils.DiagnosticSystem
	maxProblems int

	mu       sync.Mutex
	problems []errors.DocError
}

// New validates opts and creates a generator
func New(opts Options, options ...GeneratorOption) (*Generator, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, invalidOptions(err)
	}

	root, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", opts.Path, err)
	}

	g := &Generator{
		opts:        opts,
		root:        root,
		diagnostics: utils.NewSilentDiagnostics(),
	}
	for _, option := range options {
		option(g)
	}
	return g, nil
}

// Options returns the effective options, defaults applied
func (g *Generator) Options() Options {
	return g.opts
}

// Problems returns the recovered problems of the last Generate call, such as
// malformed documentation comments, ordered by file and line
func (g *Generator) Problems() []errors.DocError {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.problems
}

func (g *Generator) setProblems(problems []errors.DocError) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.problems = problems
}

// Generate builds the document for routes. Routes are processed in order; a
// handler source that cannot be read aborts the run.
func (g *Generator) Generate(ctx context.Context, rts []routes.Route) (*openapi3.T, error) {
	g.setProblems(nil)
	runID := uuid.New()
	g.diagnostics.Verbose("Generation %s started for %s (%d routes)", runID, g.root, len(rts))

	collector := errors.NewCollector(g.maxProblems)
	store := parser.NewStore(g.diagnostics, collector)
	extractor := schema.NewExtractor(*g.opts.SnakeCase, g.diagnostics)

	schemas, err := extractor.Build(ctx, g.root)
	if err != nil {
		return nil, err
	}

	synthesizer := synth.New(synth.Config{
		Root:              g.root,
		Ignore:            g.opts.Ignore,
		PreferredPutPatch: g.opts.PreferredPutPatch,
		TagIndex:          g.opts.TagIndex,
		AuthMiddleware:    g.opts.AuthMiddleware,
	}, store, schemas)

	doc := g.scaffold(schemas)
	seenTags := make(map[string]bool)
	var ignored, operations int

	for _, route := range rts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := synthesizer.Synthesize(route)
		if err != nil {
			g.diagnostics.Error("Route %s: %v", route.Pattern, err)
			return nil, err
		}
		if result == nil {
			g.diagnostics.Debug("Ignoring route %s", route.Pattern)
			ignored++
			continue
		}

		for _, tag := range result.Tags {
			if tag == "" || seenTags[tag] {
				continue
			}
			seenTags[tag] = true
			doc.Tags = append(doc.Tags, &openapi3.Tag{Name: tag, Description: "Everything related to " + tag})
		}

		item := doc.Paths.Value(result.Pattern)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(result.Pattern, item)
		}
		for _, vo := range result.Operations {
			item.SetOperation(vo.Method, vo.Operation)
			operations++
		}
	}

	problems := collector.Errors()
	g.setProblems(problems)
	if len(problems) > 0 {
		g.diagnostics.Warn("%s", collector.Summarize().String())
	}

	sources, files := store.Stats()
	g.diagnostics.Summary("Generation "+runID.String(), map[string]interface{}{
		"paths":           doc.Paths.Len(),
		"operations":      operations,
		"ignored":         ignored,
		"schemas":         len(schemas),
		"tags":            len(doc.Tags),
		"handler files":   files,
		"handler sources": sources,
	})

	return doc, nil
}

// scaffold returns the fixed parts of every document
func (g *Generator) scaffold(schemas openapi3.Schemas) *openapi3.T {
	bearer := openapi3.NewSecurityScheme().WithType("http").WithScheme("bearer")

	return &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:   g.opts.Title,
			Version: g.opts.Version,
		},
		Components: &openapi3.Components{
			Responses: cannedResponses(),
			SecuritySchemes: openapi3.SecuritySchemes{
				synth.SecuritySchemeName: &openapi3.SecuritySchemeRef{Value: bearer},
			},
			Schemas: schemas,
		},
		Paths: openapi3.NewPaths(),
		Tags:  openapi3.Tags{},
	}
}

// cannedResponses are the reusable responses every document carries
func cannedResponses() openapi3.ResponseBodies {
	canned := map[string]string{
		"Forbidden":     "Access token is missing or invalid",
		"Accepted":      "The request was accepted",
		"Created":       "The resource has been created",
		"NotFound":      "The resource was not found",
		"NotAcceptable": "The resource is not acceptable",
	}

	bodies := make(openapi3.ResponseBodies, len(canned))
	for name, description := range canned {
		bodies[name] = &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description)}
	}
	return bodies
}
