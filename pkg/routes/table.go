package routes

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Table is an in-memory route table. Registrations for the same pattern,
// handler and middleware collapse into one multi-method Route, keeping the
// order in which patterns and verbs were first seen.
type Table struct {
	mu     sync.RWMutex
	routes []Route
}

// NewTable creates an empty route table
func NewTable() *Table {
	return &Table{}
}

// Register adds one verb of a route
func (t *Table) Register(method, pattern string, handler HandlerReference, middleware ...string) {
	t.Add(Route{
		Pattern:    pattern,
		Methods:    []string{method},
		Middleware: middleware,
		Handler:    handler,
	})
}

// Add merges a route into the table
func (t *Table) Add(route Route) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.routes {
		existing := &t.routes[i]
		if !sameRoute(*existing, route) {
			continue
		}
		for _, method := range route.Methods {
			if !existing.HasMethod(method) {
				existing.Methods = append(existing.Methods, strings.ToUpper(method))
			}
		}
		for name, typ := range route.ParameterTypes {
			if existing.ParameterTypes == nil {
				existing.ParameterTypes = make(map[string]string)
			}
			existing.ParameterTypes[name] = typ
		}
		return
	}

	methods := make([]string, 0, len(route.Methods))
	for _, method := range route.Methods {
		upper := strings.ToUpper(method)
		if !slices.Contains(methods, upper) {
			methods = append(methods, upper)
		}
	}
	route.Methods = methods
	route.Middleware = slices.Clone(route.Middleware)
	route.ParameterTypes = maps.Clone(route.ParameterTypes)
	t.routes = append(t.routes, route)
}

// All returns a copy of every route in registration order
func (t *Table) All() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Route, len(t.routes))
	for i, route := range t.routes {
		route.Methods = slices.Clone(route.Methods)
		route.Middleware = slices.Clone(route.Middleware)
		route.ParameterTypes = maps.Clone(route.ParameterTypes)
		out[i] = route
	}
	return out
}

// ByMethod returns the routes serving method
func (t *Table) ByMethod(method string) []Route {
	var filtered []Route
	for _, route := range t.All() {
		if route.HasMethod(method) {
			filtered = append(filtered, route)
		}
	}
	return filtered
}

// Len returns the number of routes
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.routes)
}

func sameRoute(a, b Route) bool {
	return a.Pattern == b.Pattern &&
		RawHandler(a.Handler) == RawHandler(b.Handler) &&
		slices.Equal(a.Middleware, b.Middleware)
}
