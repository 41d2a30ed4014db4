package codec

import (
	"testing"

	"github.com/wippyai/datatable/errors"
)

func TestDefaultLookup(t *testing.T) {
	reg := Default()
	tests := []struct {
		typeText string
		keyword  string
	}{
		{"int", "int"},
		{"Int32", "int"},
		{" INT ", "int"},
		{"System.Int32", "int"},
		{"string", "string"},
		{"Boolean", "bool"},
		{"single", "float"},
		{"double", "double"},
		{"Vector3", "vector3"},
		{"UnityEngine.Color32", "color32"},
		{"DateTime", "datetime"},
		{"id", "id"},
		{"#", "comment"},
		{"", "comment"},
		{"comment", "comment"},
		{"int[]", "int[]"},
		{"List<string>", "string[]"},
		{"float32[]", "float[]"},
	}

	for _, tt := range tests {
		t.Run(tt.typeText, func(t *testing.T) {
			c, err := reg.Lookup(tt.typeText)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tt.typeText, err)
			}
			if c.Keyword() != tt.keyword {
				t.Errorf("Lookup(%q) = %q, want %q", tt.typeText, c.Keyword(), tt.keyword)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Default().Lookup("matrix4x4")
	if !errors.IsKind(err, errors.KindUnknownType) {
		t.Fatalf("expected unknown_type error, got %v", err)
	}
}

func TestRegistryFlags(t *testing.T) {
	reg := Default()
	if !reg.ID().IsID() || reg.ID().Keyword() != "id" {
		t.Errorf("ID() = %q", reg.ID().Keyword())
	}
	if !reg.Comment().IsComment() {
		t.Error("Comment() is not a comment codec")
	}

	system := map[string]bool{
		"bool": true, "int": true, "string": true, "double": true,
		"vector3": false, "datetime": false, "int[]": false, "id": false,
	}
	for kw, want := range system {
		c, err := reg.Lookup(kw)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", kw, err)
		}
		if c.IsSystem() != want {
			t.Errorf("%s IsSystem = %v, want %v", kw, c.IsSystem(), want)
		}
	}
}

func TestRegistryKeywordsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, kw := range Default().Keywords() {
		if seen[kw] {
			t.Errorf("duplicate keyword %q", kw)
		}
		seen[kw] = true
	}
	if len(Default().Codecs()) != len(Builtin()) {
		t.Errorf("registry has %d codecs, builtin %d", len(Default().Codecs()), len(Builtin()))
	}
}

type percentCodec struct {
	*IntCodec
}

func (percentCodec) Keyword() string       { return "percent" }
func (percentCodec) TypeStrings() []string { return []string{"percent", "pct"} }

func TestRegistryWith(t *testing.T) {
	reg, err := Default().With(percentCodec{NewUint8Codec()})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	c, err := reg.Lookup("PCT")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if c.Keyword() != "percent" {
		t.Errorf("keyword = %q", c.Keyword())
	}
	if _, err := Default().Lookup("pct"); err == nil {
		t.Error("With mutated the default registry")
	}
}

func TestNewRegistryErrors(t *testing.T) {
	tests := []struct {
		name   string
		codecs []Codec
	}{
		{"duplicate type string", []Codec{NewIDCodec(), NewCommentCodec(), NewInt32Codec(), NewInt32Codec()}},
		{"missing id", []Codec{NewCommentCodec(), NewInt32Codec()}},
		{"missing comment", []Codec{NewIDCodec(), NewInt32Codec()}},
		{"duplicate id", []Codec{NewIDCodec(), NewCommentCodec(), idAlias{NewIDCodec()}}},
		{"nil", []Codec{NewIDCodec(), NewCommentCodec(), nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.codecs...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

type idAlias struct {
	*IDCodec
}

func (idAlias) Keyword() string       { return "key" }
func (idAlias) TypeStrings() []string { return []string{"key"} }
