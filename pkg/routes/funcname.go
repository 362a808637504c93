package routes

import (
	"regexp"
	"strings"
)

// closureRegex matches the compiler's names for anonymous functions
var closureRegex = regexp.MustCompile(`^(func|gowrap)\d+$`)

// ParseFuncName converts a runtime function name, as returned by
// runtime.FuncForPC, into a BoundMethod. Names under modulePath get a
// namespace relative to the module root. Closures, and functions from
// packages outside a non-empty modulePath, return nil.
//
//	github.com/acme/app/controllers.(*UsersController).Show-fm
//	  -> BoundMethod{Namespace: "controllers", Receiver: "UsersController", Method: "Show"}
func ParseFuncName(name, modulePath string) HandlerReference {
	name = strings.TrimSuffix(name, "-fm")
	if name == "" {
		return nil
	}

	pkgPath, symbol := splitSymbol(name)
	if symbol == "" {
		return nil
	}

	namespace, ok := namespaceFor(pkgPath, modulePath)
	if !ok {
		return nil
	}

	parts := strings.Split(symbol, ".")
	for _, part := range parts {
		if closureRegex.MatchString(part) {
			return nil
		}
	}

	var receiver, method string
	switch len(parts) {
	case 1:
		method = parts[0]
	case 2:
		receiver = strings.Trim(parts[0], "(*)")
		method = parts[1]
	default:
		return nil
	}

	return BoundMethod{
		Namespace: namespace,
		Receiver:  receiver,
		Method:    method,
	}
}

// ShortName returns the symbol part of a runtime function name with the
// method-value and closure suffixes removed: "Auth" for
// "github.com/acme/app/middleware.Auth.func1". Closures returned by a
// package's New constructor are named after the package.
func ShortName(name string) string {
	pkgPath, symbol := splitSymbol(strings.TrimSuffix(name, "-fm"))
	parts := strings.Split(symbol, ".")
	for len(parts) > 1 && closureRegex.MatchString(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	switch {
	case len(parts) == 2 && strings.HasPrefix(parts[0], "("):
		return strings.Trim(parts[0], "(*)")
	case len(parts) == 1 && parts[0] == "New":
		return pkgPath[strings.LastIndex(pkgPath, "/")+1:]
	}
	return strings.Join(parts, ".")
}

// splitSymbol splits "path/to/pkg.Symbol.Rest" into the package path and symbol
func splitSymbol(name string) (pkgPath, symbol string) {
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return name, ""
	}
	dot += slash + 1
	return name[:dot], name[dot+1:]
}

// namespaceFor reports false for packages outside modulePath; their sources
// are not under the project root.
func namespaceFor(pkgPath, modulePath string) (string, bool) {
	if modulePath == "" {
		return pkgPath[strings.LastIndex(pkgPath, "/")+1:], true
	}
	if pkgPath == modulePath {
		return ".", true
	}
	return strings.CutPrefix(pkgPath, modulePath+"/")
}
