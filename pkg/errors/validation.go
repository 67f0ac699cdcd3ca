package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxKeyLength bounds keys accepted from untrusted input (URLs, CLI flags).
const maxKeyLength = 1024

// ValidateKey validates a node or edge key received from outside the process.
// The graph engine itself accepts any string; this check guards the HTTP and
// CLI surfaces.
//
// Rejected keys:
//   - empty keys
//   - keys longer than 1024 bytes
//   - keys containing control characters or null bytes
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidKey, "key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid control characters")
		}
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed values.
// Comparison is case-insensitive.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}

// ValidatePath validates a file path passed on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if filepath.Base(path) == "." || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidInput, "path must name a file: %q", path)
	}

	return nil
}
