package fileops

import (
	"os"
	"path/filepath"

	"github.com/toyz/autoswagger/internal/errors"
)

// FileOps wraps the file system calls the generator makes so every failure
// surfaces as a FileSystemError carrying the offending path.
type FileOps struct{}

// NewFileOps creates a new FileOps instance
func NewFileOps() *FileOps {
	return &FileOps{}
}

// WriteFile writes content to a file, creating parent directories as needed
func (fo *FileOps) WriteFile(filePath string, content []byte, perm os.FileMode) error {
	cleanPath := filepath.Clean(filePath)

	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapFileSystemError("create directory for", cleanPath, err)
		}
	}

	if err := os.WriteFile(cleanPath, content, perm); err != nil {
		return errors.WrapFileSystemError("write", cleanPath, err)
	}
	return nil
}

// IsDir checks if a path exists and is a directory
func (fo *FileOps) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile checks if a path exists and is a regular file
func (fo *FileOps) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
