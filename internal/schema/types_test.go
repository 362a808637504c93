package schema

import (
	"go/parser"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeSchema(t *testing.T) {
	tests := []struct {
		expr   string
		typ    string
		format string
		ref    string
	}{
		{expr: "string", typ: openapi3.TypeString},
		{expr: "bool", typ: openapi3.TypeBoolean},
		{expr: "uint8", typ: openapi3.TypeInteger},
		{expr: "int64", typ: openapi3.TypeInteger, format: "int64"},
		{expr: "float32", typ: openapi3.TypeNumber, format: "float"},
		{expr: "*string", typ: openapi3.TypeString},
		{expr: "time.Time", typ: openapi3.TypeString, format: "date-time"},
		{expr: "uuid.UUID", typ: openapi3.TypeString, format: "uuid"},
		{expr: "[]byte", typ: openapi3.TypeString, format: "byte"},
		{expr: "map[string]any", typ: openapi3.TypeObject},
		{expr: "Address", ref: AnyRef},
		{expr: "interface{}", ref: AnyRef},
		{expr: "sql.NullString", ref: AnyRef},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.expr)
			require.NoError(t, err)

			ref := TypeSchema(expr)
			if tt.ref != "" {
				assert.Equal(t, tt.ref, ref.Ref)
				assert.Nil(t, ref.Value)
				return
			}
			require.NotNil(t, ref.Value)
			assert.True(t, ref.Value.Type.Is(tt.typ))
			assert.Equal(t, tt.format, ref.Value.Format)
		})
	}
}

func TestTypeSchema_ArrayOfUnknown(t *testing.T) {
	expr, err := parser.ParseExpr("[]*Address")
	require.NoError(t, err)

	ref := TypeSchema(expr)
	require.NotNil(t, ref.Value)
	assert.True(t, ref.Value.Type.Is(openapi3.TypeArray))
	assert.Equal(t, AnyRef, ref.Value.Items.Ref)
}

func TestPropertyName(t *testing.T) {
	assert.Equal(t, "full_name", PropertyName("FullName", true))
	assert.Equal(t, "name", PropertyName("Name", true))
	assert.Equal(t, "id", PropertyName("ID", true))
	assert.Equal(t, "author_id", PropertyName("AuthorID", true))
	assert.Equal(t, "url_path", PropertyName("URLPath", true))
	assert.Equal(t, "http_server_url", PropertyName("HTTPServerURL", true))
	assert.Equal(t, "line2_total", PropertyName("Line2Total", true))
	assert.Equal(t, "fullName", PropertyName("FullName", false))
	assert.Equal(t, "urlPath", PropertyName("URLPath", false))
	assert.Equal(t, "id", PropertyName("ID", false))
	assert.Equal(t, "name", PropertyName("Name", false))
}

func TestRefName(t *testing.T) {
	assert.Equal(t, "User", RefName("#/components/schemas/User"))
}
