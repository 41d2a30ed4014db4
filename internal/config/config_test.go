package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/processor"
)

const project = `
jobs = 3

[[set]]
name = "DataTables"
source = "Excels/DataTables"
output = "Assets/DataTables"
code = "Scripts"
package = "tables"
encoding = "gb2312"
strings = true

  [set.layout]
  default_value_row = 4
  content_start_row = 5

[[set]]
kind = "Dictionary"
source = "/abs/Dictionaries"
key_column = 1
value_column = 2
`

func TestDecode(t *testing.T) {
	cfg, err := Decode(project, "/proj")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Jobs != 3 || len(cfg.Sets) != 2 {
		t.Fatalf("cfg = %+v", cfg)
	}

	tables := cfg.Sets[0]
	if tables.Kind != KindTable || tables.Package != "tables" || !tables.Strings {
		t.Errorf("tables = %+v", tables)
	}
	if tables.Source != filepath.Join("/proj", "Excels/DataTables") || tables.Code != filepath.Join("/proj", "Scripts") {
		t.Errorf("paths not resolved: %q %q", tables.Source, tables.Code)
	}
	if tables.Encoding == nil {
		t.Error("encoding not resolved")
	}
	want := processor.DefaultLayout()
	want.DefaultValueRow = 4
	want.ContentStartRow = 5
	if tables.Layout != want {
		t.Errorf("layout = %+v, want %+v", tables.Layout, want)
	}

	dict := cfg.Sets[1]
	if dict.Kind != KindDictionary || dict.Name != "Dictionaries" || dict.Output != "/abs/Dictionaries" {
		t.Errorf("dictionary = %+v", dict)
	}
	if dict.KeyColumn != 1 || dict.ValueColumn != 2 || dict.Package != "data" {
		t.Errorf("dictionary columns = %d,%d", dict.KeyColumn, dict.ValueColumn)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", "jobs = "},
		{"no sets", "jobs = 1"},
		{"no source", "[[set]]\nname = \"x\""},
		{"bad kind", "[[set]]\nsource = \"a\"\nkind = \"sheet\""},
		{"bad encoding", "[[set]]\nsource = \"a\"\nencoding = \"klingon\""},
		{"duplicate names", "[[set]]\nsource = \"a\"\n[[set]]\nsource = \"b/a\""},
		{"dictionary code", "[[set]]\nsource = \"a\"\nkind = \"dictionary\"\ncode = \"c\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.text, ""); !errors.IsKind(err, errors.KindConfiguration) {
				t.Errorf("got %v, want configuration error", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sets[0].Output != filepath.Join(dir, "Assets/DataTables") {
		t.Errorf("output = %q", cfg.Sets[0].Output)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.IsKind(err, errors.KindConfiguration) {
		t.Errorf("missing file: %v", err)
	}
}

func TestSingle(t *testing.T) {
	cfg := Single("in", "out", "")
	if len(cfg.Sets) != 1 || cfg.Sets[0].Layout != processor.DefaultLayout() || cfg.Jobs < 1 {
		t.Errorf("cfg = %+v", cfg)
	}
}
