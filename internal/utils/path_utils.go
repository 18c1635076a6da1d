// Package utils holds small path helpers shared by the preprocessor.
package utils

import (
	"path/filepath"
)

// ResolveImportPath resolves a relative #use path against a base directory.
// An absolute path, or any path when baseDir is "" or ".", is returned as is.
func ResolveImportPath(baseDir, importPath string) string {
	if len(importPath) > 0 && !filepath.IsAbs(importPath) {
		if baseDir != "." && baseDir != "" {
			return filepath.Join(baseDir, importPath)
		}
	}
	return importPath
}
