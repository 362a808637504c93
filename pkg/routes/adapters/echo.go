package adapters

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/toyz/autoswagger/pkg/routes"
)

// FromEcho converts an echo instance's route table. Echo's internal
// not-found and method-not-allowed routes are skipped.
func FromEcho(e *echo.Echo, opts ...Option) []routes.Route {
	o := newOptions(opts)
	table := routes.NewTable()

	for _, r := range e.Routes() {
		if strings.HasPrefix(r.Method, "echo_route_") {
			continue
		}
		table.Register(r.Method, r.Path,
			routes.ParseFuncName(r.Name, o.ModulePath),
			o.middleware(r.Method, r.Path)...)
	}

	return table.All()
}
