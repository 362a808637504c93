// Package schema converts the struct declarations found under an
// application's models/ and interfaces/ directories into OpenAPI schemas.
package schema

import (
	"context"
	"go/ast"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/sync/errgroup"

	"github.com/toyz/autoswagger/internal/errors"
	"github.com/toyz/autoswagger/internal/utils"
)

// AnyName is the fallback schema every unrecognised type points at
const AnyName = "Any"

// AnyRef is the $ref of the fallback schema
const AnyRef = "#/components/schemas/" + AnyName

// maxConcurrentReads bounds the number of files parsed at once
const maxConcurrentReads = 8

// category is one of the conventional directories scanned for shapes
type category struct {
	dirs        []string
	description string
	allStructs  bool // every struct in a file, rather than the first one
}

var (
	interfacesCategory = category{dirs: []string{"interfaces", "Interfaces"}, description: "Interface", allStructs: true}
	modelsCategory     = category{dirs: []string{"models", "Models"}, description: "Model"}
)

// namedSchema is one extracted schema, kept in discovery order
type namedSchema struct {
	name   string
	source string
	schema *openapi3.Schema
}

// Extractor builds the schema set of an application
type Extractor struct {
	snakeCase   bool
	diagnostics *utils.DiagnosticSystem
}

// NewExtractor creates an extractor. snakeCase selects snake_case property
// keys for fields without a json tag; otherwise keys are lowerCamel.
func NewExtractor(snakeCase bool, diagnostics *utils.DiagnosticSystem) *Extractor {
	if diagnostics == nil {
		diagnostics = utils.NewSilentDiagnostics()
	}
	return &Extractor{snakeCase: snakeCase, diagnostics: diagnostics}
}

// AnySchema returns the fallback schema
func AnySchema() *openapi3.Schema {
	return &openapi3.Schema{Description: "Any JSON object not defined as schema"}
}

// Build scans root and returns the merged schema set: Any, then interfaces,
// then models. A name seen twice keeps the last definition enumerated.
func (e *Extractor) Build(ctx context.Context, root string) (openapi3.Schemas, error) {
	schemas := openapi3.Schemas{
		AnyName: openapi3.NewSchemaRef("", AnySchema()),
	}
	origin := map[string]string{}

	for _, cat := range []category{interfacesCategory, modelsCategory} {
		found, err := e.scan(ctx, root, cat)
		if err != nil {
			return nil, err
		}

		for _, s := range found {
			if previous, ok := origin[s.name]; ok {
				e.diagnostics.Verbose("Schema %s from %s overrides the definition in %s", s.name, s.source, previous)
			}
			origin[s.name] = s.source
			schemas[s.name] = openapi3.NewSchemaRef("", s.schema)
		}
	}

	return schemas, nil
}

// scan reads one category directory. Files are parsed concurrently and the
// results returned in enumeration order.
func (e *Extractor) scan(ctx context.Context, root string, cat category) ([]namedSchema, error) {
	processor := utils.NewFileProcessor()

	dir, ok := resolveDir(root, cat.dirs)
	if !ok {
		e.diagnostics.Debug("No %s directory under %s", strings.ToLower(cat.description)+"s", root)
		return nil, nil
	}

	files, err := processor.WalkFiles(dir, utils.FileWalkOptions{
		FileFilter:      utils.DefaultGoFileFilter(),
		DirectoryFilter: utils.DefaultDirectoryFilter(),
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("walk", dir, err)
	}

	results := make([][]namedSchema, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found, err := e.extractFile(processor.GetFileReader(), file, cat)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []namedSchema
	for _, found := range results {
		out = append(out, found...)
	}
	return out, nil
}

func (e *Extractor) extractFile(reader *utils.FileReader, path string, cat category) ([]namedSchema, error) {
	file, err := reader.ParseGoFile(path)
	if file == nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	if err != nil {
		e.diagnostics.Warn("Syntax error in %s, using partial declarations: %v", path, err)
	}

	var found []namedSchema
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}

			found = append(found, namedSchema{
				name:   ts.Name.Name,
				source: path,
				schema: e.structSchema(st, cat.description),
			})
			if !cat.allStructs {
				return found, nil
			}
		}
	}

	if len(found) == 0 && !cat.allStructs {
		// A model file without a struct still names a shape after itself.
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		found = append(found, namedSchema{name: name, source: path, schema: objectSchema(cat.description)})
	}

	return found, nil
}

func (e *Extractor) structSchema(st *ast.StructType, description string) *openapi3.Schema {
	schema := objectSchema(description)
	if st.Fields == nil {
		return schema
	}

	for _, field := range st.Fields.List {
		// Embedded fields are skipped.
		if len(field.Names) == 0 {
			continue
		}

		jsonName, skip := jsonTagName(field.Tag)
		if skip {
			continue
		}

		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}

			key := jsonName
			if key == "" {
				key = PropertyName(ident.Name, e.snakeCase)
			}

			prop := TypeSchema(field.Type)
			if prop.Value != nil {
				if desc := fieldDescription(field); desc != "" {
					prop.Value.Description = desc
				}
			}
			schema.Properties[key] = prop
		}
	}

	return schema
}

func objectSchema(description string) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Properties = make(openapi3.Schemas)
	schema.Description = description
	return schema
}

// jsonTagName returns the name from a `json:"..."` tag and whether the field is excluded
func jsonTagName(tag *ast.BasicLit) (string, bool) {
	if tag == nil {
		return "", false
	}
	raw := strings.Trim(tag.Value, "`")
	value, ok := reflect.StructTag(raw).Lookup("json")
	if !ok {
		return "", false
	}
	if value == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(value, ",")
	return name, false
}

func fieldDescription(field *ast.Field) string {
	if field.Doc != nil {
		if text := strings.TrimSpace(field.Doc.Text()); text != "" {
			return strings.Join(strings.Fields(text), " ")
		}
	}
	if field.Comment != nil {
		return strings.TrimSpace(field.Comment.Text())
	}
	return ""
}

func resolveDir(root string, candidates []string) (string, bool) {
	for _, name := range candidates {
		dir := filepath.Join(root, name)
		if isDir(dir) {
			return dir, true
		}
	}
	return "", false
}
