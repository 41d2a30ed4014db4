// Package config loads tablec project files.
//
// A project file is TOML. Each [[set]] names a directory of exported tables,
// where their compiled assets go and how they are laid out:
//
//	jobs = 4
//
//	[[set]]
//	name = "DataTables"
//	source = "Excels/DataTables"
//	output = "Assets/DataTables"
//	code = "Scripts/DataTables"
//	package = "tables"
//	encoding = "gb2312"
//	strings = true
//
//	  [set.layout]
//	  name_row = 1
//	  type_row = 2
//	  comment_row = 3
//	  content_start_row = 4
//	  id_column = 1
//
//	[[set]]
//	name = "Dictionaries"
//	kind = "dictionary"
//	source = "Excels/Dictionaries"
//	output = "Assets/Localization"
//	key_column = 0
//	value_column = 1
//
// Relative paths resolve against the directory holding the project file.
package config

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/encoding"

	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/processor"
)

// FileName is the project file looked up by default.
const FileName = "tablec.toml"

// Kind selects the compiler used for a set.
type Kind string

const (
	KindTable      Kind = "table"
	KindDictionary Kind = "dictionary"
)

type fileConfig struct {
	Jobs int       `toml:"jobs"`
	Sets []fileSet `toml:"set"`
}

type fileSet struct {
	Name          string     `toml:"name"`
	Kind          string     `toml:"kind"`
	Source        string     `toml:"source"`
	Output        string     `toml:"output"`
	Code          string     `toml:"code"`
	Template      string     `toml:"template"`
	Package       string     `toml:"package"`
	Collection    string     `toml:"collection"`
	Encoding      string     `toml:"encoding"`
	CodeEncoding  string     `toml:"code_encoding"`
	Strings       bool       `toml:"strings"`
	CommentMarker string     `toml:"comment_marker"`
	Layout        fileLayout `toml:"layout"`
	KeyColumn     *int       `toml:"key_column"`
	ValueColumn   *int       `toml:"value_column"`
}

type fileLayout struct {
	NameRow         *int `toml:"name_row"`
	TypeRow         *int `toml:"type_row"`
	DefaultValueRow *int `toml:"default_value_row"`
	CommentRow      *int `toml:"comment_row"`
	ContentStartRow *int `toml:"content_start_row"`
	IDColumn        *int `toml:"id_column"`
}

// Set is one group of tables compiled the same way.
type Set struct {
	Name string
	Kind Kind

	Source     string // directory holding the exported .txt tables
	Output     string // directory receiving .bytes and .strings assets
	Code       string // directory receiving generated code; empty disables code
	Template   string // code template file; empty uses the built-in template
	Collection string // JSON list of table names; empty discovers Source

	Package       string
	Strings       bool
	CommentMarker string

	Layout      processor.Layout
	KeyColumn   int
	ValueColumn int

	Encoding     encoding.Encoding // nil means UTF-8
	CodeEncoding encoding.Encoding
}

// Config is a loaded project.
type Config struct {
	Jobs int
	Sets []Set
}

// Load reads the project file at path.
func Load(path string) (*Config, error) {
	var raw fileConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, errors.WithFile(errors.Wrap(errors.PhaseConfig, errors.KindConfiguration, err, "decode project file"), path)
	}
	cfg, err := build(raw, filepath.Dir(path))
	if err != nil {
		return nil, errors.WithFile(err, path)
	}
	return cfg, nil
}

// Decode parses project text. Relative paths resolve against dir.
func Decode(text, dir string) (*Config, error) {
	var raw fileConfig
	if _, err := toml.Decode(text, &raw); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindConfiguration, err, "decode project text")
	}
	return build(raw, dir)
}

// Single describes one table set from command line values.
func Single(source, output, code string) *Config {
	return &Config{
		Jobs: runtime.NumCPU(),
		Sets: []Set{{
			Name:        filepath.Base(source),
			Kind:        KindTable,
			Source:      source,
			Output:      output,
			Code:        code,
			Package:     "data",
			Strings:     true,
			Layout:      processor.DefaultLayout(),
			ValueColumn: 1,
		}},
	}
}

func build(raw fileConfig, dir string) (*Config, error) {
	cfg := &Config{Jobs: raw.Jobs}
	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.NumCPU()
	}
	if len(raw.Sets) == 0 {
		return nil, errors.Configuration("project defines no [[set]]")
	}

	names := make(map[string]bool)
	for i, fs := range raw.Sets {
		s, err := buildSet(fs, dir)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindConfiguration, err, "set "+setLabel(fs, i))
		}
		if names[s.Name] {
			return nil, errors.Configuration("set name %q is used twice", s.Name)
		}
		names[s.Name] = true
		cfg.Sets = append(cfg.Sets, s)
	}
	return cfg, nil
}

func setLabel(fs fileSet, i int) string {
	if name := strings.TrimSpace(fs.Name); name != "" {
		return name
	}
	return "#" + strconv.Itoa(i)
}

func buildSet(fs fileSet, dir string) (Set, error) {
	s := Set{
		Name:          strings.TrimSpace(fs.Name),
		Kind:          Kind(strings.ToLower(strings.TrimSpace(fs.Kind))),
		Source:        resolve(dir, fs.Source),
		Output:        resolve(dir, fs.Output),
		Code:          resolve(dir, fs.Code),
		Template:      resolve(dir, fs.Template),
		Collection:    resolve(dir, fs.Collection),
		Package:       strings.TrimSpace(fs.Package),
		Strings:       fs.Strings,
		CommentMarker: fs.CommentMarker,
		Layout:        processor.DefaultLayout(),
		ValueColumn:   1,
	}
	if s.Kind == "" {
		s.Kind = KindTable
	}
	if s.Kind != KindTable && s.Kind != KindDictionary {
		return Set{}, errors.Configuration("kind %q is not table or dictionary", fs.Kind)
	}
	if s.Source == "" {
		return Set{}, errors.Configuration("source directory is required")
	}
	if s.Output == "" {
		s.Output = s.Source
	}
	if s.Name == "" {
		s.Name = filepath.Base(s.Source)
	}
	if s.Package == "" {
		s.Package = "data"
	}
	if s.Kind == KindDictionary && s.Code != "" {
		return Set{}, errors.Configuration("dictionary sets do not generate code")
	}

	l := &s.Layout
	setInt(&l.NameRow, fs.Layout.NameRow)
	setInt(&l.TypeRow, fs.Layout.TypeRow)
	setInt(&l.DefaultValueRow, fs.Layout.DefaultValueRow)
	setInt(&l.CommentRow, fs.Layout.CommentRow)
	setInt(&l.ContentStartRow, fs.Layout.ContentStartRow)
	setInt(&l.IDColumn, fs.Layout.IDColumn)
	setInt(&s.KeyColumn, fs.KeyColumn)
	setInt(&s.ValueColumn, fs.ValueColumn)

	var err error
	if s.Encoding, err = processor.LookupEncoding(fs.Encoding); err != nil {
		return Set{}, err
	}
	if s.CodeEncoding, err = processor.LookupEncoding(fs.CodeEncoding); err != nil {
		return Set{}, err
	}
	return s, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func resolve(dir, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
