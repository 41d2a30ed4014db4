package collection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/datatable/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Hero.txt", "Item.TXT", "~$Hero.txt", "notes.md", filepath.Join("sub", "Scene.txt")} {
		touch(t, filepath.Join(dir, name))
	}

	got, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "Hero,Item" {
		t.Errorf("Discover = %v", got)
	}

	if _, err := Discover(filepath.Join(dir, "none")); !errors.IsKind(err, errors.KindIO) {
		t.Errorf("missing dir: %v", err)
	}
}

func TestWriteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Configs", "DataTableCollection.json")
	if err := Write(path, []string{"Hero", "Item"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Join(got, ",") != "Hero,Item" {
		t.Errorf("Load = %v", got)
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	touch(t, empty)
	if names, err := Load(empty); err != nil || names != nil {
		t.Errorf("empty collection: %v, %v", names, err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.IsKind(err, errors.KindConfiguration) {
		t.Errorf("bad json: %v", err)
	}
}
