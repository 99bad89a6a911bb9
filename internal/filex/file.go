// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold the file at path.
// A bare file name needs nothing and is accepted as is.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return dir, nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}
