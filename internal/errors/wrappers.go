package errors

import "fmt"

// WrapFileSystemError reports a failed read, walk or write of path
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	err := Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s file '%s'", operation, path), cause)
	err.Op, err.Subject = operation, path
	return err
}

// WrapConfigurationError reports invalid generator options or an unusable go.mod
func WrapConfigurationError(item, operation string, cause error) *BaseError {
	err := Wrap(ConfigurationErrorCode, fmt.Sprintf("failed to %s configuration '%s'", operation, item), cause)
	err.Op, err.Subject = operation, item
	return err
}

// WrapGenerateError reports a document that could not be rendered
func WrapGenerateError(item string, cause error) *BaseError {
	err := Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", item), cause)
	err.Op, err.Subject = "generate", item
	return err
}
