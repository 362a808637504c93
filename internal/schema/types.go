package schema

import (
	"go/ast"
	"os"
	"strings"
	"unicode"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
)

// TypeSchema maps a Go field type expression to a property schema.
// Anything that is not a primitive, a well-known value type, a slice or a
// map is a reference to the Any schema.
func TypeSchema(expr ast.Expr) *openapi3.SchemaRef {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return TypeSchema(t.X)
	case *ast.Ident:
		if schema := identSchema(t.Name); schema != nil {
			return openapi3.NewSchemaRef("", schema)
		}
	case *ast.SelectorExpr:
		if schema := selectorSchema(t); schema != nil {
			return openapi3.NewSchemaRef("", schema)
		}
	case *ast.ArrayType:
		if ident, ok := t.Elt.(*ast.Ident); ok && ident.Name == "byte" {
			return openapi3.NewSchemaRef("", openapi3.NewStringSchema().WithFormat("byte"))
		}
		return openapi3.NewSchemaRef("", &openapi3.Schema{
			Type:  &openapi3.Types{openapi3.TypeArray},
			Items: TypeSchema(t.Elt),
		})
	case *ast.MapType:
		return openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
	}

	return openapi3.NewSchemaRef(AnyRef, nil)
}

func identSchema(name string) *openapi3.Schema {
	switch name {
	case "string":
		return openapi3.NewStringSchema()
	case "bool":
		return openapi3.NewBoolSchema()
	case "int", "int8", "int16", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "byte", "rune":
		return openapi3.NewIntegerSchema()
	case "int32":
		return openapi3.NewInt32Schema()
	case "int64":
		return openapi3.NewInt64Schema()
	case "float32":
		return openapi3.NewFloat64Schema().WithFormat("float")
	case "float64":
		return openapi3.NewFloat64Schema().WithFormat("double")
	default:
		return nil
	}
}

func selectorSchema(sel *ast.SelectorExpr) *openapi3.Schema {
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return nil
	}

	switch pkg.Name + "." + sel.Sel.Name {
	case "time.Time":
		return openapi3.NewDateTimeSchema()
	case "time.Duration":
		return openapi3.NewInt64Schema()
	case "uuid.UUID":
		return openapi3.NewStringSchema().WithFormat("uuid")
	default:
		return nil
	}
}

// PropertyName renders a Go field name as a property key
func PropertyName(field string, snakeCase bool) string {
	if snakeCase {
		return snake(field)
	}
	return lowerCamel(field)
}

// snake folds capital runs into single words before splitting so acronyms
// stay whole: "AuthorID" -> "author_id", "URLPath" -> "url_path".
func snake(field string) string {
	orig := []rune(field)
	runes := []rune(field)
	for i := 1; i < len(orig); i++ {
		if !unicode.IsUpper(orig[i]) || !unicode.IsUpper(orig[i-1]) {
			continue
		}
		if i+1 < len(orig) && unicode.IsLower(orig[i+1]) {
			continue
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return govalidator.CamelCaseToUnderscore(string(runes))
}

// lowerCamel lowercases the leading run of capitals, keeping the last one of
// a run that starts a new word: "URLPath" -> "urlPath", "ID" -> "id".
func lowerCamel(s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if !unicode.IsUpper(runes[i]) {
			break
		}
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// RefName returns the component name of a "#/components/schemas/<Name>" ref
func RefName(ref string) string {
	return strings.TrimPrefix(ref, "#/components/schemas/")
}
