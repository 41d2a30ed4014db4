package codec

import (
	"github.com/wippyai/datatable/binary"
	"github.com/wippyai/datatable/rowfile"
)

// Context gives codecs access to table-wide state while encoding.
type Context interface {
	// StringIndex returns the interned index of s, or false when s is not interned.
	StringIndex(s string) (int, bool)
}

// Codec is the per-type encoding capability bound to a column.
type Codec interface {
	// Keyword is the canonical lowercase type keyword.
	Keyword() string
	// GoType is the Go type used for this column in generated accessors.
	GoType() string
	// TypeStrings lists every type-row spelling that selects this codec.
	TypeStrings() []string
	// ReadMethod names the rowfile.RowReader method that decodes the value.
	ReadMethod() string

	IsID() bool
	IsSystem() bool
	IsComment() bool

	// Encode parses raw and appends its encoding to w.
	Encode(ctx Context, w *binary.Writer, raw string) error
	// Decode reads one value written by Encode.
	Decode(r *rowfile.RowReader) (any, error)
}

// Interner is implemented by codecs whose cells hold interned strings.
type Interner interface {
	// InternStrings returns the strings a raw cell contributes to the intern table.
	InternStrings(raw string) []string
}

type info struct {
	keyword     string
	goType      string
	readMethod  string
	typeStrings []string
	system      bool
}

func (i info) Keyword() string       { return i.keyword }
func (i info) GoType() string        { return i.goType }
func (i info) ReadMethod() string    { return i.readMethod }
func (i info) TypeStrings() []string { return i.typeStrings }
func (i info) IsID() bool            { return false }
func (i info) IsSystem() bool        { return i.system }
func (i info) IsComment() bool       { return false }
