package datatable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/datatable/codegen"
	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/processor"
	"github.com/wippyai/datatable/rowfile"
)

const itemTable = "#\tItem\t\t\n" +
	"#\tId\tName\tPrice\n" +
	"#\tint\tstring\tint\n" +
	"#\tkey\tdisplay\tgold\n" +
	"\t1\tSword\t100\n" +
	"\t2\tShield\t80\n" +
	"\t3\tSword\t120\n"

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "Item.txt", itemTable)
	out := Outputs{
		Data:       filepath.Join(dir, "Item.bytes"),
		Strings:    filepath.Join(dir, "Item.strings"),
		Code:       filepath.Join(dir, "item.go"),
		CodeParams: codegen.Params{Package: "tables"},
	}

	res, err := Compile(src, out, processor.DefaultLayout())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Table != "Item" || res.Stats.Written != 3 || res.Strings != 2 {
		t.Errorf("result = %+v", res)
	}

	strs, err := rowfile.ReadStringsFile(out.Strings)
	if err != nil {
		t.Fatal(err)
	}
	records, err := rowfile.ReadFile(out.Data)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, rec := range records {
		r := rowfile.NewRowReader(rec, strs)
		if _, err := r.ID(); err != nil {
			t.Fatal(err)
		}
		name, err := r.String()
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, name)
	}
	if strings.Join(names, ",") != "Sword,Shield,Sword" {
		t.Errorf("names = %v", names)
	}

	code, err := os.ReadFile(out.Code)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(code), "type Item struct") {
		t.Errorf("generated code:\n%s", code)
	}
}

func TestCompile_RemovesStaleOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "Broken.txt", "#\tBroken\n#\tId\tName\n")
	data := writeFile(t, dir, "Broken.bytes", "stale")
	strs := writeFile(t, dir, "Broken.strings", "stale")

	_, err := Compile(src, Outputs{Data: data, Strings: strs}, processor.DefaultLayout())
	if !errors.IsKind(err, errors.KindParse) {
		t.Fatalf("got %v, want parse error", err)
	}
	for _, path := range []string{data, strs} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s survived a failed compile", filepath.Base(path))
		}
	}
}

func TestCompile_RequiresData(t *testing.T) {
	if _, err := Compile("x.txt", Outputs{}, processor.DefaultLayout()); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("got %v", err)
	}
}
