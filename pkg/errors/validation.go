package errors

import (
	"strings"
	"unicode"
)

// ValidateInputPath validates a dataset path given on the command line.
// Existence is not checked here; opening the file reports IO_ERROR.
func ValidateInputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "input path contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputName validates a chart output file name from configuration.
// It must be a simple basename: charts are always written inside the
// configured output directory.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 255 characters
//   - No control characters or null bytes
//   - No path separators and no parent references
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "output file name cannot be empty")
	}

	const maxNameLength = 255
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidConfig, "output file name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "output file name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidConfig, "output file name cannot contain path separators: %q", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidConfig, "output file name cannot be %q", name)
	}

	return nil
}
