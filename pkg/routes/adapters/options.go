// Package adapters reads route tables out of running gin, echo and fiber
// applications.
package adapters

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/toyz/autoswagger/pkg/routes"
)

// MiddlewareFunc reports the middleware names applied to a route
type MiddlewareFunc func(method, path string) []string

// Options configures how a framework's routes are converted
type Options struct {
	// ModulePath is the Go module path of the application; handler
	// namespaces are made relative to it
	ModulePath string

	// Middleware supplies middleware names for frameworks that do not expose them
	Middleware MiddlewareFunc
}

// Option configures an adapter
type Option func(*Options)

// WithModulePath sets the application's module path
func WithModulePath(modulePath string) Option {
	return func(o *Options) {
		o.ModulePath = modulePath
	}
}

// WithMiddleware sets the middleware lookup
func WithMiddleware(fn MiddlewareFunc) Option {
	return func(o *Options) {
		o.Middleware = fn
	}
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) middleware(method, path string) []string {
	if o.Middleware == nil {
		return nil
	}
	return o.Middleware(method, path)
}

// funcName returns the runtime symbol name of a function value
func funcName(fn interface{}) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return ""
}

// middlewareName derives a middleware name from its function's symbol:
// "github.com/acme/app/middleware.(*AuthMiddleware).Handle-fm" -> "auth".
func middlewareName(symbol string) string {
	name := routes.ShortName(symbol)
	if len(name) > len("Middleware") && strings.HasSuffix(strings.ToLower(name), "middleware") {
		name = name[:len(name)-len("Middleware")]
	}
	return strings.ToLower(name)
}
