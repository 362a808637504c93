package utils

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
)

// FileReader reads and parses Go source files, caching results by cleaned path
type FileReader struct {
	fileSet      *token.FileSet
	astCache     *Cache[string, parsedFile]
	contentCache *Cache[string, []byte]
}

// parsedFile keeps a (possibly partial) AST with the syntax error that cut it short
type parsedFile struct {
	file *ast.File
	err  error
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		fileSet:      token.NewFileSet(),
		astCache:     NewCache[string, parsedFile](),
		contentCache: NewCache[string, []byte](),
	}
}

// ParseGoFile parses a Go source file with comments. A file with syntax
// errors still yields the partial AST the parser produced alongside the
// error; only an unreadable file returns a nil AST.
func (fr *FileReader) ParseGoFile(filePath string) (*ast.File, error) {
	cleanPath := filepath.Clean(filePath)

	if cached, exists := fr.astCache.Get(cleanPath); exists {
		return cached.file, cached.err
	}

	content, err := fr.ReadFile(cleanPath)
	if err != nil {
		return nil, err
	}

	file, err := parser.ParseFile(fr.fileSet, cleanPath, content, parser.ParseComments)
	if err != nil {
		err = fmt.Errorf("failed to parse Go file %s: %w", filepath.Base(cleanPath), err)
	}
	if file == nil {
		return nil, err
	}

	fr.astCache.Set(cleanPath, parsedFile{file: file, err: err})
	return file, err
}

// ReadFile reads a file with caching
func (fr *FileReader) ReadFile(filePath string) ([]byte, error) {
	cleanPath := filepath.Clean(filePath)

	if cached, exists := fr.contentCache.Get(cleanPath); exists {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", cleanPath, err)
	}

	fr.contentCache.Set(cleanPath, content)
	return content, nil
}

// Position resolves a token position against the reader's file set
func (fr *FileReader) Position(pos token.Pos) token.Position {
	return fr.fileSet.Position(pos)
}

// CacheStats reports how many files have been parsed and read
func (fr *FileReader) CacheStats() (astFiles, contentFiles int) {
	return fr.astCache.Size(), fr.contentCache.Size()
}
