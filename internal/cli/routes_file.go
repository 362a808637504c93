package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/autoswagger/pkg/routes"
)

// Handler kinds accepted in a routes file
const (
	HandlerBound  = "bound"
	HandlerString = "string"
	HandlerObject = "object"
	HandlerSymbol = "symbol"
)

// RouteSpec is one entry of a routes file
type RouteSpec struct {
	Pattern        string            `yaml:"pattern"`
	Methods        []string          `yaml:"methods"`
	Middleware     []string          `yaml:"middleware"`
	ParameterTypes map[string]string `yaml:"parameterTypes"`
	Handler        *HandlerSpec      `yaml:"handler"`
}

// HandlerSpec describes a handler reference. Which fields apply depends on Kind:
//
//	bound:  namespace, receiver, method
//	string: ref ("Controller.action")
//	object: modulePath, method
//	symbol: name (a runtime function name such as "example.com/app/controllers.(*Users).Show-fm")
type HandlerSpec struct {
	Kind       string `yaml:"kind"`
	Namespace  string `yaml:"namespace"`
	Receiver   string `yaml:"receiver"`
	Method     string `yaml:"method"`
	Ref        string `yaml:"ref"`
	ModulePath string `yaml:"modulePath"`
	Name       string `yaml:"name"`
}

// LoadRoutesFile reads a YAML or JSON routes file. Symbol handlers are
// resolved against modulePath, which resolveModule supplies on first use.
func LoadRoutesFile(path string, resolveModule func() (string, error)) ([]routes.Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newUsageError(fmt.Sprintf("read routes file %q: %v", path, err))
	}

	var specs []RouteSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, newUsageError(fmt.Sprintf("parse routes file %q: %v", path, err))
	}

	table := routes.NewTable()
	for i, spec := range specs {
		if strings.TrimSpace(spec.Pattern) == "" {
			return nil, newUsageError(fmt.Sprintf("routes file %q: entry %d has no pattern", path, i))
		}
		if len(spec.Methods) == 0 {
			return nil, newUsageError(fmt.Sprintf("routes file %q: route %s has no methods", path, spec.Pattern))
		}

		handler, err := spec.Handler.reference(resolveModule)
		if err != nil {
			return nil, newUsageError(fmt.Sprintf("routes file %q: route %s: %v", path, spec.Pattern, err))
		}

		table.Add(routes.Route{
			Pattern:        spec.Pattern,
			Methods:        spec.Methods,
			Middleware:     spec.Middleware,
			Handler:        handler,
			ParameterTypes: spec.ParameterTypes,
		})
	}

	return table.All(), nil
}

// reference converts the spec into a handler reference; a nil spec is a closure
func (h *HandlerSpec) reference(resolveModule func() (string, error)) (routes.HandlerReference, error) {
	if h == nil {
		return nil, nil
	}

	switch strings.ToLower(h.Kind) {
	case HandlerBound:
		return routes.BoundMethod{Namespace: h.Namespace, Receiver: h.Receiver, Method: h.Method}, nil
	case HandlerString:
		return routes.StringReference(h.Ref), nil
	case HandlerObject:
		return routes.ObjectReference{ModulePath: h.ModulePath, Method: h.Method}, nil
	case HandlerSymbol:
		module, err := resolveModule()
		if err != nil {
			return nil, err
		}
		return routes.ParseFuncName(h.Name, module), nil
	default:
		return nil, fmt.Errorf("unknown handler kind %q (allowed: bound, string, object, symbol)", h.Kind)
	}
}
