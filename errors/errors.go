package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // reading and decoding source text
	PhaseParse    Phase = "parse"    // grid construction
	PhaseConfig   Phase = "config"   // layout and project configuration
	PhaseSchema   Phase = "schema"   // column and codec resolution
	PhaseEncode   Phase = "encode"   // text cell to binary
	PhaseDecode   Phase = "decode"   // binary to value
	PhaseQuery    Phase = "query"    // processor accessors
	PhaseWrite    Phase = "write"    // data and string asset output
	PhaseGenerate Phase = "generate" // code emission
	PhaseBatch    Phase = "batch"    // multi-table driving
)

// Kind categorizes the error
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindParse         Kind = "parse"
	KindUnknownType   Kind = "unknown_type"
	KindCellEncoding  Kind = "cell_encoding"
	KindIO            Kind = "io"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindState         Kind = "state"
	KindInvalidInput  Kind = "invalid_input"
	KindInvalidData   Kind = "invalid_data"
)

// Error is the structured error type used throughout the compiler
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	File    string
	Name    string
	Keyword string
	Detail  string
	Row     int
	Column  int
	hasRow  bool
	hasCol  bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.File != "" || e.hasRow || e.hasCol {
		b.WriteString(" at ")
		b.WriteString(e.location())
	}

	if e.Name != "" || e.Keyword != "" {
		b.WriteString(" (")
		switch {
		case e.Name != "" && e.Keyword != "":
			b.WriteString(e.Name)
			b.WriteByte(' ')
			b.WriteString(e.Keyword)
		case e.Name != "":
			b.WriteString(e.Name)
		default:
			b.WriteString(e.Keyword)
		}
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if raw, ok := e.Value.(string); ok && e.Kind == KindCellEncoding {
		b.WriteString(" raw=")
		b.WriteString(strconv.Quote(raw))
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

func (e *Error) location() string {
	parts := make([]string, 0, 3)
	if e.File != "" {
		parts = append(parts, e.File)
	}
	if e.hasRow {
		parts = append(parts, "row "+strconv.Itoa(e.Row))
	}
	if e.hasCol {
		parts = append(parts, "column "+strconv.Itoa(e.Column))
	}
	return strings.Join(parts, ", ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// HasCell reports whether the error carries a row and column.
func (e *Error) HasCell() bool {
	return e.hasRow && e.hasCol
}

// IsKind reports whether any *Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// File sets the source or output file name
func (b *Builder) File(name string) *Builder {
	b.err.File = name
	return b
}

// Row sets the raw row index
func (b *Builder) Row(row int) *Builder {
	b.err.Row = row
	b.err.hasRow = true
	return b
}

// Cell sets the raw row and column indices
func (b *Builder) Cell(row, column int) *Builder {
	b.err.Row = row
	b.err.Column = column
	b.err.hasRow = true
	b.err.hasCol = true
	return b
}

// ColumnIndex sets only the raw column index
func (b *Builder) ColumnIndex(column int) *Builder {
	b.err.Column = column
	b.err.hasCol = true
	return b
}

// Column sets the column name and type keyword
func (b *Builder) Column(name, keyword string) *Builder {
	b.err.Name = name
	b.err.Keyword = keyword
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Configuration creates a configuration error for bad constructor or project settings
func Configuration(format string, args ...any) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindConfiguration,
		Detail: fmt.Sprintf(format, args...),
	}
}

// ShapeMismatch creates a parse error for a row whose cell count differs from row 0
func ShapeMismatch(file string, row, want, got int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindParse,
		File:   file,
		Row:    row,
		hasRow: true,
		Detail: fmt.Sprintf("raw column count is %d, but row %d has %d", want, row, got),
		Value:  got,
	}
}

// UnknownType creates an error for a type keyword with no registered codec
func UnknownType(keyword string) *Error {
	return &Error{
		Phase:   PhaseSchema,
		Kind:    KindUnknownType,
		Keyword: keyword,
		Detail:  fmt.Sprintf("no codec registered for type %q", keyword),
		Value:   keyword,
	}
}

// CellEncoding creates an error for a raw cell that cannot be encoded
func CellEncoding(keyword, raw string, cause error) *Error {
	return &Error{
		Phase:   PhaseEncode,
		Kind:    KindCellEncoding,
		Keyword: keyword,
		Value:   raw,
		Cause:   cause,
	}
}

// IO creates an I/O error for a file operation
func IO(phase Phase, op, path string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		File:   path,
		Detail: op,
		Cause:  cause,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, what string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("%s %d out of range (length %d)", what, index, length),
		Value:  index,
	}
}

// State creates an error for an operation invoked in the wrong processor state
func State(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindState,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// WithFile returns a copy of err with File set when err is an *Error without one.
// Other errors are wrapped as KindInvalidData.
func WithFile(err error, file string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.File != "" {
			return err
		}
		cp := *e
		cp.File = file
		return &cp
	}
	return &Error{Phase: PhaseLoad, Kind: KindInvalidData, File: file, Cause: err}
}
