package routes

import (
	"regexp"
	"strings"
)

var (
	// braceParamRegex matches {name} and {name:type}
	braceParamRegex = regexp.MustCompile(`\{([^:}]+)(?::([^}]+))?\}`)
	// colonParamRegex matches :name
	colonParamRegex = regexp.MustCompile(`:([a-zA-Z_][a-zA-Z0-9_]*)`)
)

// BracesToColon converts /users/{id:int} to /users/:id
func BracesToColon(pattern string) string {
	return braceParamRegex.ReplaceAllStringFunc(pattern, func(match string) string {
		sub := braceParamRegex.FindStringSubmatch(match)
		if sub[1] == "*" {
			return "*"
		}
		return ":" + strings.TrimSpace(sub[1])
	})
}

// ColonToBraces converts /users/:id to /users/{id:<type>}, with types taken
// from paramTypes and defaulting to string
func ColonToBraces(pattern string, paramTypes map[string]string) string {
	return colonParamRegex.ReplaceAllStringFunc(pattern, func(match string) string {
		name := strings.TrimPrefix(match, ":")
		typ := "string"
		if t, ok := paramTypes[name]; ok && t != "" {
			typ = t
		}
		return "{" + name + ":" + typ + "}"
	})
}

// ParameterTypes extracts the {name:type} declarations of a pattern
func ParameterTypes(pattern string) map[string]string {
	types := make(map[string]string)
	for _, match := range braceParamRegex.FindAllStringSubmatch(pattern, -1) {
		if match[2] != "" {
			types[strings.TrimSpace(match[1])] = strings.TrimSpace(match[2])
		}
	}
	return types
}
