// Package collection reads and writes the JSON table lists that pin which
// tables a set compiles, and discovers tables when no list exists.
package collection

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/internal/assets"
)

// Load reads a JSON array of table names. An empty file yields no names.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, "read collection", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, errors.WithFile(errors.Wrap(errors.PhaseConfig, errors.KindConfiguration, err, "decode collection"), path)
	}
	return names, nil
}

// Write stores names as an indented JSON array, creating parent directories.
func Write(path string, names []string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.IO(errors.PhaseWrite, "create collection directory", dir, err)
		}
	}
	if names == nil {
		names = []string{}
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return errors.Wrap(errors.PhaseWrite, errors.KindInvalidData, err, "encode collection")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.IO(errors.PhaseWrite, "write collection", path, err)
	}
	return nil
}

// Discover returns the sorted names of the .txt tables in dir, skipping
// editor lock files.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, "discover tables", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || assets.IsLockFile(e.Name()) || !strings.EqualFold(filepath.Ext(e.Name()), assets.TextExt) {
			continue
		}
		names = append(names, assets.Name(e.Name()))
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}
