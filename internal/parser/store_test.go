package parser

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoswagger/internal/annotations"
	"github.com/toyz/autoswagger/internal/errors"
)

const usersController = `package controllers

type UsersController struct{}

// Index lists users.
//
// @summary List users
// @paramQuery page - Page number - @type(integer)
// @responseBody 200 - <User[]>
func (c *UsersController) Index() {}

// @summary Custom
// @responseBody 200 - Custom desc - @summary(Custom)
func (c *UsersController) Show() {}

// Update has only prose documentation.
func (c *UsersController) Update() {}

func (c *UsersController) Destroy() {}

/*
@operationId createUser
@requestBody <CreateUser>
*/
func Create() {}

// @responseBody abc - broken
func (c *UsersController) Broken() {}
`

const postsController = `package controllers

type PostsController struct{}

// @summary List posts
func (p PostsController) Index() {}
`

func writeSource(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeSource(t, root, "controllers/users_controller.go", usersController)
	writeSource(t, root, "controllers/posts_controller.go", postsController)
	writeSource(t, root, "controllers/users_controller_test.go", "package controllers\n\n// @summary ignored\nfunc TestX() {}\n")
	return root
}

func TestStore_AnnotationsForFile(t *testing.T) {
	root := newFixture(t)
	store := NewStore(nil, nil)

	docs, err := store.Annotations(filepath.Join(root, "controllers", "users_controller.go"))
	require.NoError(t, err)

	assert.Contains(t, docs, "UsersController.Index")
	assert.Contains(t, docs, "UsersController.Show")
	assert.Contains(t, docs, "Create")
	assert.Contains(t, docs, "UsersController.Broken")
	assert.NotContains(t, docs, "UsersController.Update")
	assert.NotContains(t, docs, "UsersController.Destroy")

	index := docs["UsersController.Index"]
	assert.Equal(t, "List users", index.Summary)
	require.Len(t, index.Parameters, 1)
	assert.Equal(t, "integer", index.Parameters[0].Type)

	assert.Equal(t, "createUser", docs["Create"].OperationID)
	assert.Equal(t, annotations.OperationAnnotation{Malformed: true}, docs["UsersController.Broken"])
}

func TestStore_ExtensionlessSource(t *testing.T) {
	root := newFixture(t)
	store := NewStore(nil, nil)

	a, ok, err := store.Lookup(filepath.Join(root, "controllers", "users_controller"), "index")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "List users", a.Summary)
}

func TestStore_PackageDirectoryWithReceiverHint(t *testing.T) {
	root := newFixture(t)
	store := NewStore(nil, nil)

	users, ok, err := store.Lookup(filepath.Join(root, "controllers", "UsersController"), "index")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "List users", users.Summary)

	posts, ok, err := store.Lookup(filepath.Join(root, "controllers", "PostsController"), "Index")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "List posts", posts.Summary)
}

func TestStore_PackageDirectory(t *testing.T) {
	root := newFixture(t)
	store := NewStore(nil, nil)

	docs, err := store.Annotations(filepath.Join(root, "controllers"))
	require.NoError(t, err)
	assert.Contains(t, docs, "PostsController.Index")
	assert.Contains(t, docs, "UsersController.Index")
	assert.NotContains(t, docs, "TestX")
}

func TestStore_MissingActionIsNotAnError(t *testing.T) {
	root := newFixture(t)
	store := NewStore(nil, nil)

	_, ok, err := store.Lookup(filepath.Join(root, "controllers", "UsersController"), "destroy")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Lookup(filepath.Join(root, "controllers", "UsersController"), "")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MalformedAnnotationIsCollected(t *testing.T) {
	root := newFixture(t)
	collector := errors.NewCollector(0)
	store := NewStore(nil, collector)

	a, ok, err := store.Lookup(filepath.Join(root, "controllers", "users_controller.go"), "Broken")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, a.Malformed)
	assert.True(t, a.IsEmpty())

	require.Len(t, collector.Errors(), 1)
	assert.Equal(t, errors.SyntaxErrorCode, collector.Errors()[0].ErrorCode())
}

func TestStore_UnreadableSourceIsFatal(t *testing.T) {
	store := NewStore(nil, nil)

	_, _, err := store.Lookup(filepath.Join(t.TempDir(), "missing", "UsersController"), "show")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.FileSystemErrorCode))

	_, err = store.Annotations(filepath.Join(t.TempDir(), "nope.go"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.FileSystemErrorCode))
}

func TestStore_SyntaxErrorsKeepEarlierDeclarations(t *testing.T) {
	root := t.TempDir()
	path := writeSource(t, root, "broken.go", "package broken\n\n// @summary Survives\nfunc Show() {}\n\nfunc oops( {\n")

	collector := errors.NewCollector(0)
	store := NewStore(nil, collector)

	a, ok, err := store.Lookup(path, "show")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Survives", a.Summary)
	assert.Len(t, collector.Errors(), 1)
}

func TestStore_ParsesEachSourceOnce(t *testing.T) {
	root := newFixture(t)
	store := NewStore(nil, nil)
	source := filepath.Join(root, "controllers", "users_controller.go")

	var wg sync.WaitGroup
	results := make([]map[string]annotations.OperationAnnotation, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			docs, err := store.Annotations(source)
			assert.NoError(t, err)
			results[i] = docs
		}(i)
	}
	wg.Wait()

	for _, docs := range results[1:] {
		assert.Equal(t, results[0], docs)
	}

	sources, files := store.Stats()
	assert.Equal(t, 1, sources)
	assert.Equal(t, 1, files)
}

func TestMatchAction(t *testing.T) {
	docs := map[string]annotations.OperationAnnotation{
		"UsersController.Show": {Summary: "method"},
		"PostsController.Show": {Summary: "other"},
		"show":                 {Summary: "func"},
	}

	key, ok := matchAction(docs, "UsersController", "Show")
	assert.True(t, ok)
	assert.Equal(t, "UsersController.Show", key)

	key, ok = matchAction(docs, "UsersController", "SHOW")
	assert.True(t, ok)
	assert.Equal(t, "UsersController.Show", key)

	key, ok = matchAction(docs, "", "show")
	assert.True(t, ok)
	assert.Equal(t, "show", key)

	_, ok = matchAction(docs, "CommentsController", "Index")
	assert.False(t, ok)
}
