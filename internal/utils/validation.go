package utils

import (
	"fmt"
	"slices"
	"strings"
)

// ValidatePathIsNotTraversal rejects paths carrying a ".." element, with
// either separator, so uploaded file names cannot escape their directory.
func ValidatePathIsNotTraversal(path string) error {
	elements := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if slices.Contains(elements, "..") {
		return fmt.Errorf("path %q contains a traversal pattern", path)
	}
	return nil
}
