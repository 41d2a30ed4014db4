// Package codegen is the default code emission hook. It turns a processed
// table into a Go row type with a decoder built on rowfile.RowReader.
package codegen

import (
	_ "embed"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"unicode"

	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/processor"
)

// Template placeholders.
const (
	PackagePlaceholder = "__DATA_TABLE_PACKAGE__"
	NamePlaceholder    = "__DATA_TABLE_NAME__"
	CommentPlaceholder = "__DATA_TABLE_COMMENT__"
	ImportsPlaceholder = "__DATA_TABLE_IMPORTS__"
	FieldsPlaceholder  = "__DATA_TABLE_FIELDS__"
	ParserPlaceholder  = "__DATA_TABLE_PARSER__"
)

const rowfileImport = "github.com/wippyai/datatable/rowfile"

// DefaultTemplate is the built-in Go template.
//
//go:embed template.go.tmpl
var DefaultTemplate string

// Params is the user data Generator expects.
type Params struct {
	Package  string // defaults to "data"
	TypeName string // defaults to the exported table name
	Comment  string
	// SkipFormat leaves the output unformatted, for templates that are not Go.
	SkipFormat bool
}

// Generator implements processor.CodeGenerator. userData may be a Params,
// a *Params or nil.
func Generator(p *processor.Processor, code *strings.Builder, userData any) error {
	var params Params
	switch v := userData.(type) {
	case Params:
		params = v
	case *Params:
		if v != nil {
			params = *v
		}
	case nil:
	default:
		return errors.InvalidInput(errors.PhaseGenerate, fmt.Sprintf("unexpected user data %T", userData))
	}

	typeName := params.TypeName
	if typeName == "" {
		typeName = Identifier(p.TableName())
	}
	if !token.IsIdentifier(typeName) {
		return errors.InvalidInput(errors.PhaseGenerate, fmt.Sprintf("type name %q is not a Go identifier", typeName))
	}
	pkg := params.Package
	if pkg == "" {
		pkg = "data"
	}
	comment := params.Comment
	if comment == "" {
		comment = fmt.Sprintf("is a row of the %s data table.", p.TableName())
	}

	fields, parser, imports, err := columns(p)
	if err != nil {
		return err
	}

	out := strings.NewReplacer(
		PackagePlaceholder, pkg,
		NamePlaceholder, typeName,
		CommentPlaceholder, comment,
		ImportsPlaceholder, imports,
		FieldsPlaceholder, fields,
		ParserPlaceholder, parser,
	).Replace(code.String())

	if !params.SkipFormat {
		src, err := format.Source([]byte(out))
		if err != nil {
			return errors.Wrap(errors.PhaseGenerate, errors.KindInvalidData, err, "format generated code")
		}
		out = string(src)
	}

	code.Reset()
	code.WriteString(out)
	return nil
}

func columns(p *processor.Processor) (fields, parser, imports string, err error) {
	var f, ps strings.Builder
	used := make(map[string]int)
	needTime := false

	for _, c := range p.Columns() {
		if c.IsComment {
			continue
		}
		name := Identifier(c.Name)
		if name == "" {
			return "", "", "", errors.New(errors.PhaseGenerate, errors.KindInvalidInput).
				File(p.FileName()).
				ColumnIndex(c.Index).
				Column(c.Name, c.Keyword()).
				Detail("column name has no identifier characters").
				Build()
		}
		if prev, ok := used[name]; ok {
			return "", "", "", errors.New(errors.PhaseGenerate, errors.KindInvalidInput).
				File(p.FileName()).
				ColumnIndex(c.Index).
				Column(c.Name, c.Keyword()).
				Detail("field %s already generated for column %d", name, prev).
				Build()
		}
		used[name] = c.Index

		goType := c.Codec.GoType()
		if strings.HasPrefix(goType, "time.") {
			needTime = true
		}
		if c.Comment != "" {
			fmt.Fprintf(&f, "\t// %s %s\n", name, oneLine(c.Comment))
		}
		fmt.Fprintf(&f, "\t%s %s\n", name, goType)
		fmt.Fprintf(&ps, "\tif row.%s, err = r.%s(); err != nil {\n\t\treturn nil, err\n\t}\n", name, c.Codec.ReadMethod())
	}

	var imp strings.Builder
	if needTime {
		imp.WriteString("\t\"time\"\n\n")
	}
	fmt.Fprintf(&imp, "\t%q", rowfileImport)
	return strings.TrimSuffix(f.String(), "\n"), strings.TrimSuffix(ps.String(), "\n"), imp.String(), nil
}

// Identifier converts a column or table name into an exported Go identifier.
// Characters that cannot appear in an identifier separate words.
func Identifier(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	s := b.String()
	if s != "" && unicode.IsDigit([]rune(s)[0]) {
		s = "F" + s
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
