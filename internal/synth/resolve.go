package synth

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/toyz/autoswagger/pkg/routes"
)

// catchAllMethod is the conventional name of generic handlers that never
// carry per-route documentation
const catchAllMethod = "handle"

// controllersDir is where "Controller.action" references are looked up
const controllersDir = "controllers"

var closureNameRegex = regexp.MustCompile(`^(func|gowrap)\d+$`)

// Location is where a route's handler is documented
type Location struct {
	// Source is the file, extension-less file or package path handed to the annotation store
	Source string
	// Display is Source relative to the application root, used in summaries
	Display string
	// Action is the function or method name
	Action string
}

// Resolve maps a handler reference onto its source location. It reports
// false for nil references, empty parts, catch-all handlers and closures.
func Resolve(ref routes.HandlerReference, root string) (Location, bool) {
	var loc Location

	switch r := ref.(type) {
	case routes.BoundMethod:
		if r.Namespace == "" {
			return Location{}, false
		}
		source, display := r.Namespace, r.Namespace
		if filepath.IsAbs(source) {
			if rel, err := filepath.Rel(root, source); err == nil && !strings.HasPrefix(rel, "..") {
				display = rel
			}
		} else {
			source = filepath.Join(root, source)
		}
		display = strings.TrimSuffix(filepath.ToSlash(display), ".go")
		if r.Receiver != "" && !strings.HasSuffix(r.Namespace, ".go") {
			source = filepath.Join(source, r.Receiver)
			display = path.Join(display, r.Receiver)
		}
		loc = Location{Source: source, Display: display, Action: r.Method}

	case routes.StringReference:
		controller, action, ok := r.Split()
		if !ok {
			return Location{}, false
		}
		loc = Location{
			Source:  filepath.Join(root, controllersDir, controller),
			Display: path.Join(controllersDir, controller),
			Action:  action,
		}

	case routes.ObjectReference:
		modulePath := strings.Trim(strings.TrimPrefix(r.ModulePath, "#"), "/")
		if modulePath == "" {
			return Location{}, false
		}
		loc = Location{
			Source:  filepath.Join(root, filepath.FromSlash(modulePath)),
			Display: strings.TrimSuffix(modulePath, ".go"),
			Action:  r.Method,
		}

	default:
		return Location{}, false
	}

	if loc.Action == "" || strings.EqualFold(loc.Action, catchAllMethod) || closureNameRegex.MatchString(loc.Action) {
		return Location{}, false
	}
	return loc, true
}
