package synth

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/toyz/autoswagger/internal/annotations"
	"github.com/toyz/autoswagger/internal/schema"
)

// defaultStatus returns the status documented for a verb when nothing else is
func defaultStatus(method string) int {
	switch method {
	case http.MethodPost:
		return http.StatusCreated
	case http.MethodDelete:
		return http.StatusAccepted
	case http.MethodPut, http.MethodPatch:
		return http.StatusNoContent
	default:
		return http.StatusOK
	}
}

// reasonResponse is a response described by the status' reason phrase
func reasonResponse(status int) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(http.StatusText(status))
}

// emptyJSONContent is the {"application/json": {}} placeholder body
func emptyJSONContent() openapi3.Content {
	return openapi3.Content{annotations.DefaultContentType: openapi3.NewMediaType()}
}

// toParameter converts a documented parameter
func toParameter(p annotations.Parameter) *openapi3.ParameterRef {
	param := &openapi3.Parameter{
		Name:        p.Name,
		In:          p.In,
		Description: p.Description,
		Required:    p.Required || p.In == annotations.InPath,
		Schema:      openapi3.NewSchemaRef("", parameterSchema(p.Type)),
	}
	if p.Example != "" {
		param.Example = exampleValue(p.Example, p.Type)
	}
	return &openapi3.ParameterRef{Value: param}
}

// exampleValue types a literal example after the parameter's declared type
func exampleValue(raw, typ string) interface{} {
	switch typ {
	case "integer":
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case "number":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// mergeParameters overlays documented parameters on pattern-derived ones by
// (name, in): documented entries replace in place, new ones are appended.
func mergeParameters(base, overlay []annotations.Parameter) []annotations.Parameter {
	merged := make([]annotations.Parameter, len(base))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i, p := range merged {
		index[p.Key()] = i
	}

	for _, p := range overlay {
		if i, ok := index[p.Key()]; ok {
			merged[i] = p
			continue
		}
		index[p.Key()] = len(merged)
		merged = append(merged, p)
	}
	return merged
}

// contentFor converts documented media specs, resolving schema names
// against the known set
func contentFor(media map[string]annotations.MediaSpec, schemas openapi3.Schemas) openapi3.Content {
	content := make(openapi3.Content, len(media))

	types := make([]string, 0, len(media))
	for contentType := range media {
		types = append(types, contentType)
	}
	sort.Strings(types)

	for _, contentType := range types {
		spec := media[contentType]
		mt := openapi3.NewMediaType()

		switch {
		case spec.Schema != "":
			ref := schemaRef(spec.Schema, schemas)
			if spec.Array {
				ref = openapi3.NewSchemaRef("", &openapi3.Schema{
					Type:  &openapi3.Types{openapi3.TypeArray},
					Items: ref,
				})
			}
			mt.Schema = ref
		case spec.Example != "":
			var example interface{}
			if err := json.Unmarshal([]byte(spec.Example), &example); err != nil {
				example = spec.Example
			}
			mt.Example = example
		}

		content[contentType] = mt
	}
	return content
}

// schemaRef points at a component schema, falling back to Any for unknown names
func schemaRef(name string, schemas openapi3.Schemas) *openapi3.SchemaRef {
	if _, ok := schemas[name]; ok {
		return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
	}
	return openapi3.NewSchemaRef(schema.AnyRef, nil)
}
