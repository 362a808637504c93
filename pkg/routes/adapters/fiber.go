package adapters

import (
	"github.com/gofiber/fiber/v2"

	"github.com/toyz/autoswagger/pkg/routes"
)

// FromFiber converts a fiber app's route table. The last handler of each
// route is the documented handler; the ones before it are middleware whose
// names are derived from their symbols unless WithMiddleware is given.
func FromFiber(app *fiber.App, opts ...Option) []routes.Route {
	o := newOptions(opts)
	table := routes.NewTable()

	for _, r := range app.GetRoutes(true) {
		if len(r.Handlers) == 0 {
			continue
		}

		handler := r.Handlers[len(r.Handlers)-1]
		middleware := o.middleware(r.Method, r.Path)
		if o.Middleware == nil {
			for _, h := range r.Handlers[:len(r.Handlers)-1] {
				if name := middlewareName(funcName(h)); name != "" {
					middleware = append(middleware, name)
				}
			}
		}

		table.Register(r.Method, r.Path, routes.ParseFuncName(funcName(handler), o.ModulePath), middleware...)
	}

	return table.All()
}
