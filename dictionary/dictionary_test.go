package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/rowfile"
)

func writeText(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const configText = "#\tDefault Config\t\t\n" +
	"#\tKey\tValue\tNote\n" +
	"\tGame.Id\t1\tgame id\n" +
	"\n" +
	"\t\t7\tno key\n" +
	"#\tScene.Menu\t2\tdisabled\n" +
	"\tScene.Menu\t\"3\"\tmenu scene\n" +
	"\tGame.Id\t9\toverride\n"

func TestNew(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p, err := New(writeText(t, "DefaultConfig.txt", configText), nil, 1, 2, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []rowfile.Pair{
		{Key: "Game.Id", Value: "1"},
		{Key: "Scene.Menu", Value: "3"},
		{Key: "Game.Id", Value: "9"},
	}
	if p.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", p.Len(), len(want))
	}
	for i, w := range want {
		got, err := p.Entry(i)
		if err != nil || got != w {
			t.Errorf("Entry(%d) = %+v, %v, want %+v", i, got, err, w)
		}
	}
	if _, err := p.Entry(3); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("Entry(3): %v", err)
	}
	if v, ok := p.Lookup("Game.Id"); !ok || v != "9" {
		t.Errorf("Lookup(Game.Id) = %q, %v, want last value 9", v, ok)
	}
	if p.Duplicates() != 1 || logs.FilterMessage("duplicate dictionary key").Len() != 1 {
		t.Errorf("duplicates = %d, logged %d", p.Duplicates(), logs.FilterMessage("duplicate dictionary key").Len())
	}
}

func TestNew_Failures(t *testing.T) {
	path := writeText(t, "d.txt", "a\tb\nc\n")

	tests := []struct {
		name string
		path string
		key  int
		val  int
		kind errors.Kind
	}{
		{"short row", path, 0, 1, errors.KindParse},
		{"negative column", path, -1, 1, errors.KindConfiguration},
		{"same columns", path, 1, 1, errors.KindConfiguration},
		{"missing file", filepath.Join(t.TempDir(), "none.txt"), 0, 1, errors.KindConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.path, nil, tt.key, tt.val); !errors.IsKind(err, tt.kind) {
				t.Errorf("got %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestGenerateDataFile(t *testing.T) {
	p, err := New(writeText(t, "Default.txt", "Hello\tBonjour\nBye\tAu revoir\n"), nil, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "Default.bytes")
	if err := p.GenerateDataFile(out); err != nil {
		t.Fatalf("GenerateDataFile: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	pairs, err := rowfile.ReadDictionary(f)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, pr := range pairs {
		got = append(got, pr.Key+"="+pr.Value)
	}
	if strings.Join(got, ";") != "Hello=Bonjour;Bye=Au revoir" {
		t.Errorf("pairs = %q", got)
	}

	bad := filepath.Join(t.TempDir(), "nodir", "x.bytes")
	if err := p.GenerateDataFile(bad); !errors.IsKind(err, errors.KindIO) {
		t.Errorf("unwritable path: %v", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("failed generation left a file")
	}
}
