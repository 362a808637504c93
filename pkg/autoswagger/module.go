package autoswagger

import (
	"github.com/toyz/autoswagger/internal/errors"
	"github.com/toyz/autoswagger/internal/utils"
)

// ModulePath returns the module path declared by the go.mod governing dir.
// Route adapters use it to turn runtime symbol names into paths relative to
// the application root.
func ModulePath(dir string) (string, error) {
	parser := utils.NewGoModParser()

	goMod, err := parser.FindGoModFile(dir)
	if err != nil {
		return "", errors.WrapConfigurationError("go.mod", "locate", err)
	}

	module, err := parser.ParseModuleName(goMod)
	if err != nil {
		return "", errors.WrapConfigurationError("go.mod", "parse", err)
	}
	return module, nil
}
