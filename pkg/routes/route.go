// Package routes describes the route table autoswagger documents: patterns,
// verbs, middleware names and references to the handler functions.
package routes

import (
	"path"
	"strings"
)

// Route is one entry of an application's route table
type Route struct {
	// Pattern is the route path, e.g. "/users/:id" or "/users/{id:int}"
	Pattern string `json:"pattern" yaml:"pattern"`

	// Methods are the HTTP verbs served, in declaration order
	Methods []string `json:"methods" yaml:"methods"`

	// Middleware are the names of the middleware applied to the route
	Middleware []string `json:"middleware,omitempty" yaml:"middleware,omitempty"`

	// Handler identifies the function serving the route; nil for closures
	Handler HandlerReference `json:"-" yaml:"-"`

	// ParameterTypes optionally maps path parameter names to types (e.g. {"id": "int"})
	ParameterTypes map[string]string `json:"parameterTypes,omitempty" yaml:"parameterTypes,omitempty"`
}

// HandlerReference identifies the function that serves a route. It is one of
// BoundMethod, StringReference or ObjectReference.
type HandlerReference interface {
	// Raw returns the reference as written, used to derive operation ids
	Raw() string
	isHandlerReference()
}

// BoundMethod is a function or method found through the runtime symbol table
type BoundMethod struct {
	// Namespace is the package directory or .go file relative to the
	// application root, or an absolute path
	Namespace string
	// Receiver is the method's receiver type name, empty for plain functions
	Receiver string
	// Method is the function or method name
	Method string
}

// Raw returns "Receiver.Method", or "<package>.Function" for plain functions
func (b BoundMethod) Raw() string {
	if b.Receiver != "" {
		return b.Receiver + "." + b.Method
	}
	ns := strings.TrimSuffix(path.Base(strings.ReplaceAll(b.Namespace, "\\", "/")), ".go")
	if ns == "" || ns == "." || ns == "/" {
		return b.Method
	}
	return ns + "." + b.Method
}

func (BoundMethod) isHandlerReference() {}

// StringReference is a "Controller.action" string
type StringReference string

// Raw returns the string itself
func (s StringReference) Raw() string { return string(s) }

func (StringReference) isHandlerReference() {}

// Split returns the controller and action of a "Controller.action" reference
func (s StringReference) Split() (controller, action string, ok bool) {
	controller, action, ok = strings.Cut(string(s), ".")
	if !ok || controller == "" || action == "" || strings.Contains(action, ".") {
		return "", "", false
	}
	return controller, action, true
}

// ObjectReference names a module path relative to the application root and
// a function inside it, e.g. {"#controllers/users", "Index"}
type ObjectReference struct {
	ModulePath string
	Method     string
}

// Raw returns "ModulePath.Method"
func (o ObjectReference) Raw() string {
	if o.ModulePath == "" {
		return o.Method
	}
	return o.ModulePath + "." + o.Method
}

func (ObjectReference) isHandlerReference() {}

// RawHandler returns the raw form of ref, or "" for a nil reference
func RawHandler(ref HandlerReference) string {
	if ref == nil {
		return ""
	}
	return ref.Raw()
}

// HasMethod reports whether the route serves method (case-insensitive)
func (r Route) HasMethod(method string) bool {
	for _, m := range r.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
