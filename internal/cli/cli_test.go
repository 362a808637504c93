package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoswagger/pkg/routes"
)

const fixtureController = `package controllers

type UsersController struct{}

// @summary List users
// @paramQuery page - Page number - @type(integer)
func (c *UsersController) Index() {}

func (c *UsersController) Show() {}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newFixtureApp(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/app\n\ngo 1.22\n")
	writeFile(t, filepath.Join(root, "controllers", "users.go"), fixtureController)
	return root
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadRoutesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yml")
	writeFile(t, path, `
- pattern: /users
  methods: [get]
  handler: {kind: string, ref: UsersController.index}
- pattern: /users
  methods: [head]
  handler: {kind: string, ref: UsersController.index}
- pattern: /users/:id
  methods: [GET]
  middleware: [auth]
  handler: {kind: bound, namespace: controllers, receiver: UsersController, method: Show}
- pattern: /reports
  methods: [GET]
  handler: {kind: object, modulePath: "#controllers/reports", method: Index}
- pattern: /health
  methods: [GET]
  handler: {kind: symbol, name: "example.com/app/handlers.Health"}
- pattern: /
  methods: [GET]
`)

	resolved := 0
	rts, err := LoadRoutesFile(path, func() (string, error) {
		resolved++
		return "example.com/app", nil
	})
	require.NoError(t, err)
	require.Len(t, rts, 5)

	assert.Equal(t, []string{"GET", "HEAD"}, rts[0].Methods)
	assert.Equal(t, routes.StringReference("UsersController.index"), rts[0].Handler)
	assert.Equal(t, routes.BoundMethod{Namespace: "controllers", Receiver: "UsersController", Method: "Show"}, rts[1].Handler)
	assert.Equal(t, []string{"auth"}, rts[1].Middleware)
	assert.Equal(t, routes.ObjectReference{ModulePath: "#controllers/reports", Method: "Index"}, rts[2].Handler)
	assert.Equal(t, routes.BoundMethod{Namespace: "handlers", Method: "Health"}, rts[3].Handler)
	assert.Nil(t, rts[4].Handler)
	assert.Equal(t, 1, resolved)
}

func TestLoadRoutesFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	writeFile(t, path, `[{"pattern": "/users/{id:int}", "methods": ["GET"], "handler": {"kind": "string", "ref": "UsersController.show"}}]`)

	rts, err := LoadRoutesFile(path, nil)
	require.NoError(t, err)
	require.Len(t, rts, 1)
	assert.Equal(t, "/users/{id:int}", rts[0].Pattern)
}

func TestLoadRoutesFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not a list", "pattern: /users"},
		{"missing pattern", "- methods: [GET]"},
		{"missing methods", "- pattern: /users"},
		{"unknown kind", "- pattern: /users\n  methods: [GET]\n  handler: {kind: lambda}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "routes.yml")
			writeFile(t, path, tt.content)

			_, err := LoadRoutesFile(path, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUsage)
		})
	}

	_, err := LoadRoutesFile(filepath.Join(t.TempDir(), "missing.yml"), nil)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestModuleResolver(t *testing.T) {
	root := newFixtureApp(t)
	resolver := NewModuleResolver()

	module, err := resolver.ResolveModuleName("", filepath.Join(root, "controllers"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", module)

	module, err = resolver.ResolveModuleName("example.com/override", root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/override", module)
}

func TestGenerateCommand_WritesDocuments(t *testing.T) {
	root := newFixtureApp(t)
	out := filepath.Join(t.TempDir(), "docs")
	routesPath := filepath.Join(root, "routes.yml")
	writeFile(t, routesPath, `
- pattern: /users
  methods: [GET]
  handler: {kind: string, ref: UsersController.index}
- pattern: /users/:id
  methods: [GET]
  middleware: [auth]
  handler: {kind: symbol, name: "example.com/app/controllers.(*UsersController).Show-fm"}
`)

	output, err := runCLI(t, "generate", "--routes", routesPath, "--root", root, "--out", out, "--title", "Fixture API")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Generation Complete!")

	data, err := os.ReadFile(filepath.Join(out, "swagger.json"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "swagger.yml"))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Fixture API", doc["info"].(map[string]interface{})["title"])
	assert.Equal(t, "1.0.0", doc["info"].(map[string]interface{})["version"])

	paths := doc["paths"].(map[string]interface{})
	list := paths["users"].(map[string]interface{})["get"].(map[string]interface{})
	assert.Equal(t, "List users (controllers/UsersController::index)", list["summary"])

	show := paths["users/{id}"].(map[string]interface{})["get"].(map[string]interface{})
	assert.Equal(t, "Get a single instance of users (controllers/UsersController::Show)", show["summary"])
}

func TestGenerateCommand_ReportsProblemsAndSkipsForeignHandlers(t *testing.T) {
	root := newFixtureApp(t)
	writeFile(t, filepath.Join(root, "controllers", "broken.go"), `package controllers

type BrokenController struct{}

// @responseBody 2000
func (c *BrokenController) Show() {}
`)
	out := filepath.Join(t.TempDir(), "docs")
	routesPath := filepath.Join(root, "routes.yml")
	writeFile(t, routesPath, `
- pattern: /broken
  methods: [GET]
  handler: {kind: string, ref: BrokenController.show}
- pattern: /metrics
  methods: [GET]
  handler: {kind: symbol, name: "github.com/other/lib/metrics.Handler"}
`)

	output, err := runCLI(t, "generate", "--routes", routesPath, "--root", root, "--out", out, "--title", "Fixture API", "--format", "json")
	require.NoError(t, err, output)
	assert.Contains(t, output, "1 handler comment(s) could not be read")
	assert.Contains(t, output, "  - ")
	assert.Contains(t, output, "broken.go")

	data, err := os.ReadFile(filepath.Join(out, "swagger.json"))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	metrics := doc["paths"].(map[string]interface{})["metrics"].(map[string]interface{})["get"].(map[string]interface{})
	assert.Equal(t, "(route definition)", metrics["summary"])
}

func TestGenerateCommand_ConfigFile(t *testing.T) {
	root := newFixtureApp(t)
	out := filepath.Join(t.TempDir(), "docs")
	routesPath := filepath.Join(root, "routes.yml")
	writeFile(t, routesPath, `
- pattern: /users
  methods: [GET]
  handler: {kind: string, ref: UsersController.index}
- pattern: /internal/metrics
  methods: [GET]
`)
	configPath := filepath.Join(root, "autoswagger.yml")
	writeFile(t, configPath, "title: Configured\nversion: 2.1.0\nignore: [\"/internal*\"]\nformat: json\nroutes: "+routesPath+"\npath: "+root+"\nout: "+out+"\n")

	output, err := runCLI(t, "--config", configPath, "--quiet", "generate")
	require.NoError(t, err, output)

	assert.NoFileExists(t, filepath.Join(out, "swagger.yml"))
	data, err := os.ReadFile(filepath.Join(out, "swagger.json"))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "2.1.0", doc["info"].(map[string]interface{})["version"])
	assert.NotContains(t, doc["paths"], "internal/metrics")
}

func TestGenerateCommand_FlagsOverrideConfig(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "autoswagger.yml")
	writeFile(t, configPath, "title: From file\nformat: json\nroutes: a.yml\ntagIndex: 2\n")

	var captured *GenerateConfig
	generateRunner = func(_ *cobra.Command, cfg *GenerateConfig) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { generateRunner = runGenerate })

	_, err := runCLI(t, "--config", configPath, "generate", "--title", "From flag", "--format", "YAML", "--snake-case=false")
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, "From flag", captured.Title)
	assert.Equal(t, FormatYAML, captured.Format)
	assert.Equal(t, "a.yml", captured.Routes)
	assert.Equal(t, 2, captured.TagIndex)
	require.NotNil(t, captured.SnakeCase)
	assert.False(t, *captured.SnakeCase)
}

func TestGenerateCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing routes", []string{"generate", "--title", "API"}},
		{"missing title", []string{"generate", "--routes", "routes.yml"}},
		{"bad format", []string{"generate", "--routes", "r.yml", "--title", "API", "--format", "xml"}},
		{"verbose and quiet", []string{"-v", "-q", "generate", "--routes", "r.yml", "--title", "API"}},
		{"unknown flag", []string{"generate", "--nope"}},
		{"missing config", []string{"--config", "/does/not/exist.yml", "generate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUsage)
		})
	}
}

func TestGenerateCommand_MissingHandlerSource(t *testing.T) {
	root := t.TempDir()
	routesPath := filepath.Join(root, "routes.yml")
	writeFile(t, routesPath, "- pattern: /users\n  methods: [GET]\n  handler: {kind: string, ref: UsersController.index}\n")

	output, err := runCLI(t, "generate", "--routes", routesPath, "--root", root, "--out", root, "--title", "API")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsage)
	assert.Contains(t, output, "Generation failed")
	assert.NoFileExists(t, filepath.Join(root, "swagger.json"))
}
