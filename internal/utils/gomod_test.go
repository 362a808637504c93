package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoModParser_ParseModuleName(t *testing.T) {
	dir := t.TempDir()
	goMod := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(goMod, []byte("module github.com/acme/shop\n\ngo 1.22\n"), 0o644))

	p := NewGoModParser()
	name, err := p.ParseModuleName(goMod)
	require.NoError(t, err)
	assert.Equal(t, "github.com/acme/shop", name)
}

func TestGoModParser_RejectsOtherFiles(t *testing.T) {
	p := NewGoModParser()
	_, err := p.ParseModuleName("/tmp/main.go")
	assert.Error(t, err)
}

func TestGoModParser_MissingModuleDirective(t *testing.T) {
	dir := t.TempDir()
	goMod := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(goMod, []byte("go 1.22\n"), 0o644))

	_, err := NewGoModParser().ParseModuleName(goMod)
	assert.ErrorContains(t, err, "no module declaration")
}

func TestGoModParser_FindGoModFileWalksUp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/app\n"), 0o644))
	nested := filepath.Join(dir, "internal", "controllers")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := NewGoModParser().FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "go.mod"), found)
}
