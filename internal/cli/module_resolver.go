package cli

import (
	"fmt"

	"github.com/toyz/autoswagger/pkg/autoswagger"
)

// ModuleResolver finds the Go module path runtime symbol names are relative to
type ModuleResolver struct {
	cache map[string]string
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{cache: make(map[string]string)}
}

// ResolveModuleName returns customModule when set, otherwise the module
// declared by the go.mod governing root
func (r *ModuleResolver) ResolveModuleName(customModule, root string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}
	if module, ok := r.cache[root]; ok {
		return module, nil
	}

	module, err := autoswagger.ModulePath(root)
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider using --module flag)", err)
	}
	r.cache[root] = module
	return module, nil
}
