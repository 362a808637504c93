package autoswagger

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/toyz/autoswagger/internal/errors"
	"github.com/toyz/autoswagger/internal/utils"
	"github.com/toyz/autoswagger/internal/utils/fileops"
)

// Options configures document generation
type Options struct {
	// Title and Version fill the document's info block; both are required
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`

	// Path is the application root handlers and schemas are resolved against
	Path string `json:"path" yaml:"path"`

	// Ignore drops routes whose pattern contains a rule, starts with "x" for
	// a rule "x*" or ends with "x" for a rule "*x"
	Ignore []string `json:"ignore" yaml:"ignore"`

	// PreferredPutPatch is the verb documented when a route serves both PUT and PATCH
	PreferredPutPatch string `json:"preferredPutPatch" yaml:"preferredPutPatch"`

	// SnakeCase selects snake_case property keys for untagged struct fields.
	// Nil means true.
	SnakeCase *bool `json:"snakeCase" yaml:"snakeCase"`

	// TagIndex is the path segment that names an operation's tag
	TagIndex int `json:"tagIndex" yaml:"tagIndex"`

	// AuthMiddleware are middleware names, besides auth and auth:api, that
	// mark a route as requiring a bearer token
	AuthMiddleware []string `json:"authMiddleware" yaml:"authMiddleware"`
}

// withDefaults fills unset fields
func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = "."
	}
	if o.PreferredPutPatch == "" {
		o.PreferredPutPatch = http.MethodPut
	}
	o.PreferredPutPatch = strings.ToUpper(o.PreferredPutPatch)
	if o.SnakeCase == nil {
		snake := true
		o.SnakeCase = &snake
	}
	if o.TagIndex == 0 {
		o.TagIndex = 1
	}
	return o
}

// Validate checks the options after defaults are applied
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Title, validation.Required),
		validation.Field(&o.Version, validation.Required),
		validation.Field(&o.PreferredPutPatch, validation.In(http.MethodPut, http.MethodPatch)),
		validation.Field(&o.TagIndex, validation.Min(0)),
		validation.Field(&o.Path, validation.Required, validation.By(directoryRule)),
		validation.Field(&o.Ignore, validation.Each(validation.Required)),
		validation.Field(&o.AuthMiddleware, validation.Each(validation.Required)),
	)
}

func directoryRule(value interface{}) error {
	path, _ := value.(string)
	if !fileops.NewFileOps().IsDir(path) {
		return validation.NewError("validation_not_directory", "must be an existing directory")
	}
	return nil
}

// GeneratorOption customises a Generator
type GeneratorOption func(*Generator)

// WithDiagnostics routes progress and warnings to d; generators are silent otherwise
func WithDiagnostics(d *utils.DiagnosticSystem) GeneratorOption {
	return func(g *Generator) {
		if d != nil {
			g.diagnostics = d
		}
	}
}

// WithMaxProblems caps the number of recovered problems kept per run
func WithMaxProblems(n int) GeneratorOption {
	return func(g *Generator) {
		g.maxProblems = n
	}
}

func invalidOptions(err error) error {
	return errors.WrapConfigurationError("options", "validate", err)
}
