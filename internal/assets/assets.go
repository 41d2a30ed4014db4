// Package assets maps table names to the files a set reads and writes.
package assets

import (
	"path/filepath"
	"strings"
)

const (
	TextExt    = ".txt"
	DataExt    = ".bytes"
	StringsExt = ".strings"
	CodeExt    = ".go"

	// LockPrefix starts the lock files spreadsheet editors leave next to open documents.
	LockPrefix = "~$"
)

// Text returns the exported table path for name.
func Text(dir, name string) string {
	return filepath.Join(dir, name+TextExt)
}

// Data returns the row file path for name.
func Data(dir, name string) string {
	return filepath.Join(dir, name+DataExt)
}

// Strings returns the string asset path for name.
func Strings(dir, name string) string {
	return filepath.Join(dir, name+StringsExt)
}

// Code returns the generated source path for name, or "" when dir is empty.
func Code(dir, name string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, strings.ToLower(name)+CodeExt)
}

// Name returns the table name of a file: its base name up to the first dot.
func Name(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// IsLockFile reports whether path is an editor lock file.
func IsLockFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), LockPrefix)
}
