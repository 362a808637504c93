package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_FullBlock(t *testing.T) {
	block := `Show returns a single user.

@summary Get a user
@description Returns the user identified by id.
Includes the profile when requested.
@operationId getUser
@paramPath id - The user id - @type(integer)
@paramQuery expand - Relations to expand - @type(string) @example(profile)
@paramHeader X-Tenant - @required
@responseBody 200 - <User> - The user
@responseBody 404 - Not found
@tag Users`

	p := NewParser()
	a, err := p.Parse(block, SourceLocation{File: "users.go", Line: 10})
	require.NoError(t, err)

	assert.False(t, a.Malformed)
	assert.Equal(t, "Get a user", a.Summary)
	assert.Equal(t, "Returns the user identified by id.\nIncludes the profile when requested.", a.Description)
	assert.Equal(t, "getUser", a.OperationID)
	assert.Equal(t, []string{"Users"}, a.Tags)

	require.Len(t, a.Parameters, 3)
	assert.Equal(t, Parameter{Name: "id", In: InPath, Description: "The user id", Required: true, Type: "integer"}, a.Parameters[0])
	assert.Equal(t, Parameter{Name: "expand", In: InQuery, Description: "Relations to expand", Type: "string", Example: "profile"}, a.Parameters[1])
	assert.Equal(t, Parameter{Name: "X-Tenant", In: InHeader, Required: true}, a.Parameters[2])

	require.Contains(t, a.Responses, "200")
	assert.Equal(t, "The user", a.Responses["200"].Description)
	assert.Equal(t, MediaSpec{Schema: "User"}, a.Responses["200"].Content[DefaultContentType])
	assert.Equal(t, ResponseSpec{Description: "Not found"}, a.Responses["404"])
}

func TestParser_TagsAreOrderIndependentAndWhitespaceTolerant(t *testing.T) {
	first := "@operationId   listUsers\n@summary    List   users"
	second := "   @summary List users\n\t@operationId listUsers   "

	p := NewParser()
	a1, err := p.Parse(first, SourceLocation{})
	require.NoError(t, err)
	a2, err := p.Parse(second, SourceLocation{})
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, "List users", a1.Summary)
}

func TestParser_UnknownTagsAreIgnored(t *testing.T) {
	a, err := NewParser().Parse("@deprecated\n@summary Kept\n@responseHeader 200 X-Rate", SourceLocation{})
	require.NoError(t, err)
	assert.Equal(t, "Kept", a.Summary)
	assert.Empty(t, a.Responses)
}

func TestParser_BlankLineEndsPayload(t *testing.T) {
	block := "@description First line\n\nNot part of the description"
	a, err := NewParser().Parse(block, SourceLocation{})
	require.NoError(t, err)
	assert.Equal(t, "First line", a.Description)
}

func TestParser_ResponseSummaryOption(t *testing.T) {
	a, err := NewParser().Parse("@responseBody 200 - Custom desc - @summary(Custom)", SourceLocation{})
	require.NoError(t, err)

	assert.Equal(t, ResponseSpec{Description: "Custom desc", Summary: "Custom"}, a.Responses["200"])
}

func TestParser_ResponseArrayAndContentType(t *testing.T) {
	a, err := NewParser().Parse("@responseBody 201 - <User[]> - Created users @content(application/xml)", SourceLocation{})
	require.NoError(t, err)

	resp := a.Responses["201"]
	assert.Equal(t, "Created users", resp.Description)
	assert.Equal(t, map[string]MediaSpec{"application/xml": {Schema: "User", Array: true}}, resp.Content)
}

func TestParser_RequestBodies(t *testing.T) {
	block := `@requestBody <CreateUser>
@requestBody application/xml <CreateUser[]>
@requestFormDataBody <Upload>`

	a, err := NewParser().Parse(block, SourceLocation{})
	require.NoError(t, err)
	require.NotNil(t, a.RequestBody)

	assert.Equal(t, map[string]MediaSpec{
		"application/json":    {Schema: "CreateUser"},
		"application/xml":     {Schema: "CreateUser", Array: true},
		"multipart/form-data": {Schema: "Upload"},
	}, a.RequestBody.Content)
}

func TestParser_RequestBodyExample(t *testing.T) {
	a, err := NewParser().Parse(`@requestBody {"name": "Ada"}`, SourceLocation{})
	require.NoError(t, err)
	assert.Equal(t, MediaSpec{Example: `{"name": "Ada"}`}, a.RequestBody.Content[DefaultContentType])
}

func TestParser_RepeatedParameterReplacesEarlier(t *testing.T) {
	block := "@paramQuery page - first\n@paramQuery page - second - @type(integer)"
	a, err := NewParser().Parse(block, SourceLocation{})
	require.NoError(t, err)

	require.Len(t, a.Parameters, 1)
	assert.Equal(t, "second", a.Parameters[0].Description)
	assert.Equal(t, "integer", a.Parameters[0].Type)
}

func TestParser_MalformedBlocksDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"non numeric status", "@summary ok\n@responseBody abc - nope"},
		{"four digit status", "@responseBody 2000"},
		{"missing parameter name", "@paramPath - @type(integer)"},
		{"operation id with spaces", "@operationId get users"},
		{"empty request body", "@requestBody application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewParser().Parse(tt.block, SourceLocation{File: "x.go", Line: 3})
			assert.Error(t, err)
			assert.Equal(t, OperationAnnotation{Malformed: true}, a)

			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestParser_ErrorLocationPointsAtTag(t *testing.T) {
	_, err := NewParser().ParseStrict("@summary fine\n\n@responseBody nope", SourceLocation{File: "a.go", Line: 5, Column: 1})
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 7, syntaxErr.Location().Line)
	assert.Equal(t, "responseBody", syntaxErr.Tag)
}

func TestParser_BlockCommentMarkers(t *testing.T) {
	block := "/*\n * @summary From a block comment\n * @operationId fromBlock\n */"
	a, err := NewParser().Parse(block, SourceLocation{})
	require.NoError(t, err)
	assert.Equal(t, "From a block comment", a.Summary)
	assert.Equal(t, "fromBlock", a.OperationID)
}

func TestParser_EmptyBlock(t *testing.T) {
	a, err := NewParser().Parse("Index lists things.", SourceLocation{})
	require.NoError(t, err)
	assert.True(t, a.IsEmpty())
	assert.False(t, a.Malformed)
}
