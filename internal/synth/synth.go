// Package synth turns one route plus its handler's documentation into
// OpenAPI operations.
package synth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/toyz/autoswagger/internal/annotations"
	"github.com/toyz/autoswagger/pkg/routes"
)

// SecuritySchemeName is the bearer scheme referenced by secured operations
const SecuritySchemeName = "BearerAuth"

// DefaultAuthMiddleware are the middleware names that mark a route as secured
var DefaultAuthMiddleware = []string{"auth", "auth:api"}

// Config controls synthesis
type Config struct {
	// Root is the application root handler locations are resolved against
	Root string
	// Ignore drops routes whose pattern matches (substring, "x*", "*x")
	Ignore []string
	// PreferredPutPatch is the verb kept when a route serves both PUT and PATCH
	PreferredPutPatch string
	// TagIndex is the path segment used as the resource tag
	TagIndex int
	// AuthMiddleware are extra middleware names that require a bearer token
	AuthMiddleware []string
}

// AnnotationLookup finds the documentation of an action in a source
type AnnotationLookup interface {
	Lookup(source, action string) (annotations.OperationAnnotation, bool, error)
}

// VerbOperation is the operation built for one HTTP verb
type VerbOperation struct {
	Method    string
	Operation *openapi3.Operation
}

// Result is everything one route contributes to the document
type Result struct {
	Pattern    string
	Operations []VerbOperation
	Tags       []string
}

// Synthesizer builds operations route by route. It holds no per-route state.
type Synthesizer struct {
	cfg     Config
	lookup  AnnotationLookup
	schemas openapi3.Schemas
	auth    map[string]bool
}

// New creates a synthesizer over a fixed schema set
func New(cfg Config, lookup AnnotationLookup, schemas openapi3.Schemas) *Synthesizer {
	if cfg.PreferredPutPatch == "" {
		cfg.PreferredPutPatch = http.MethodPut
	}
	cfg.PreferredPutPatch = strings.ToUpper(cfg.PreferredPutPatch)

	auth := make(map[string]bool)
	for _, name := range DefaultAuthMiddleware {
		auth[name] = true
	}
	for _, name := range cfg.AuthMiddleware {
		auth[name] = true
	}

	return &Synthesizer{cfg: cfg, lookup: lookup, schemas: schemas, auth: auth}
}

// Synthesize builds the operations of a route. Ignored routes yield nil. The
// only error is a failure to read the handler's source.
func (s *Synthesizer) Synthesize(route routes.Route) (*Result, error) {
	if isIgnored(route.Pattern, s.cfg.Ignore) {
		return nil, nil
	}

	security := s.security(route.Middleware)

	loc, resolved := Resolve(route.Handler, s.cfg.Root)
	var annotation annotations.OperationAnnotation
	var documented bool
	if resolved {
		var err error
		annotation, documented, err = s.lookup.Lookup(loc.Source, loc.Action)
		if err != nil {
			return nil, err
		}
	}

	types := routes.ParameterTypes(route.Pattern)
	for name, typ := range route.ParameterTypes {
		types[name] = typ
	}
	info := analyzePattern(route.Pattern, s.cfg.TagIndex, types)

	tags := []string{}
	if info.Tag != "" {
		tags = append(tags, info.Tag)
	}
	if documented && len(annotation.Tags) > 0 {
		tags = annotation.Tags
	}

	result := &Result{Pattern: info.Normalized}
	seenTags := make(map[string]bool)
	for _, tag := range tags {
		if !seenTags[tag] {
			seenTags[tag] = true
			result.Tags = append(result.Tags, tag)
		}
	}

	for _, method := range s.verbs(route.Methods) {
		op := s.buildOperation(method, route, info, loc, resolved, annotation, security, result.Tags)
		result.Operations = append(result.Operations, VerbOperation{Method: method, Operation: op})
	}

	return result, nil
}

// verbs returns the route's verbs to document in declared order: HEAD and
// verbs OpenAPI has no slot for are dropped, and only the preferred one of a
// PUT/PATCH pair survives.
func (s *Synthesizer) verbs(methods []string) []string {
	var hasPut, hasPatch bool
	for _, m := range methods {
		switch strings.ToUpper(m) {
		case http.MethodPut:
			hasPut = true
		case http.MethodPatch:
			hasPatch = true
		}
	}

	var out []string
	seen := make(map[string]bool)
	for _, m := range methods {
		method := strings.ToUpper(m)
		if seen[method] || !documentable(method) {
			continue
		}
		if hasPut && hasPatch && (method == http.MethodPut || method == http.MethodPatch) && method != s.cfg.PreferredPutPatch {
			continue
		}
		seen[method] = true
		out = append(out, method)
	}
	return out
}

func documentable(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodOptions, http.MethodTrace, http.MethodConnect:
		return true
	default:
		return false
	}
}

// security returns one bearer requirement per recognised auth middleware
func (s *Synthesizer) security(middleware []string) openapi3.SecurityRequirements {
	requirements := openapi3.SecurityRequirements{}
	for _, name := range middleware {
		if s.auth[name] {
			requirements = append(requirements, openapi3.SecurityRequirement{SecuritySchemeName: []string{"access"}})
		}
	}
	return requirements
}

func (s *Synthesizer) buildOperation(
	method string,
	route routes.Route,
	info patternInfo,
	loc Location,
	resolved bool,
	annotation annotations.OperationAnnotation,
	security openapi3.SecurityRequirements,
	tags []string,
) *openapi3.Operation {
	status := defaultStatus(method)
	statusKey := strconv.Itoa(status)

	responses := openapi3.NewResponsesWithCapacity(len(annotation.Responses) + 3)
	if len(security) > 0 {
		responses.Set("401", &openapi3.ResponseRef{Value: reasonResponse(http.StatusUnauthorized)})
		responses.Set("403", &openapi3.ResponseRef{Value: reasonResponse(http.StatusForbidden)})
	}
	responses.Set(statusKey, &openapi3.ResponseRef{Value: reasonResponse(status).WithContent(emptyJSONContent())})

	summary := annotation.Summary
	description := annotation.Description

	for code, spec := range annotation.Responses {
		resp := openapi3.NewResponse()
		desc := spec.Description
		if desc == "" {
			if n, err := strconv.Atoi(code); err == nil {
				desc = http.StatusText(n)
			}
		}
		resp.WithDescription(desc)
		if len(spec.Content) > 0 {
			resp.WithContent(contentFor(spec.Content, s.schemas))
		}
		responses.Set(code, &openapi3.ResponseRef{Value: resp})

		if code == statusKey {
			if summary == "" && spec.Summary != "" {
				summary = spec.Summary
			}
			if description == "" && spec.Description != "" {
				description = spec.Description
			}
		}
	}

	params := mergeParameters(info.Parameters, annotation.Parameters)
	parameters := make(openapi3.Parameters, 0, len(params))
	for _, p := range params {
		parameters = append(parameters, toParameter(p))
	}

	if summary == "" && resolved {
		tag := ""
		if len(tags) > 0 {
			tag = tags[0]
		}
		summary = crudSummary(loc.Action, tag)
	}
	if resolved {
		summary += " (" + loc.Display + "::" + loc.Action + ")"
	} else {
		summary += " (route definition)"
	}

	operationID := annotation.OperationID
	if operationID == "" {
		operationID = FormatOperationID(routes.RawHandler(route.Handler))
	}

	op := &openapi3.Operation{
		Summary:     strings.TrimSpace(summary),
		Description: description,
		OperationID: operationID,
		Tags:        append([]string{}, tags...),
		Parameters:  parameters,
		Responses:   responses,
	}
	sec := append(openapi3.SecurityRequirements{}, security...)
	op.Security = &sec

	if method != http.MethodGet && method != http.MethodDelete {
		body := openapi3.NewRequestBody().WithContent(emptyJSONContent())
		if annotation.RequestBody != nil && len(annotation.RequestBody.Content) > 0 {
			body = openapi3.NewRequestBody().WithContent(contentFor(annotation.RequestBody.Content, s.schemas))
		}
		op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	return op
}

// crudSummary names the conventional resource actions
func crudSummary(action, tag string) string {
	tag = strings.ToLower(tag)
	switch strings.ToLower(action) {
	case "index":
		return "Get a list of " + tag
	case "show":
		return "Get a single instance of " + tag
	case "update":
		return "Update " + tag
	case "destroy":
		return "Delete " + tag
	default:
		return ""
	}
}
