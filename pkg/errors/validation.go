package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ValidateDocumentName validates a gallery document name.
// Names appear in file paths for the file-backed store, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ParseValue parses a single tree value from user input.
// Only integers are accepted; the engine's key type is int.
func ParseValue(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, New(ErrCodeInvalidValue, "not an integer: %q", raw)
	}
	return v, nil
}

// ParseValues parses a list of tree values, accepting both separate
// arguments and comma-separated lists ("50,30,70").
func ParseValues(args []string) ([]int, error) {
	var values []int
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			if strings.TrimSpace(field) == "" {
				continue
			}
			v, err := ParseValue(field)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, New(ErrCodeInvalidValue, "no values given")
	}
	return values, nil
}
