package adapters

import (
	"github.com/gin-gonic/gin"

	"github.com/toyz/autoswagger/pkg/routes"
)

// FromGin converts a gin engine's route table. Gin does not record
// middleware per route, so names come from WithMiddleware.
func FromGin(engine *gin.Engine, opts ...Option) []routes.Route {
	o := newOptions(opts)
	table := routes.NewTable()

	for _, info := range engine.Routes() {
		table.Register(info.Method, info.Path,
			routes.ParseFuncName(info.Handler, o.ModulePath),
			o.middleware(info.Method, info.Path)...)
	}

	return table.All()
}
