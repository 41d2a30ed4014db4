package processor

import (
	"slices"

	"github.com/wippyai/datatable/errors"
)

// RawRowCount returns the number of rows, header and comment rows included.
func (p *Processor) RawRowCount() int {
	return len(p.rows)
}

// RawColumnCount returns the number of cells in every row.
func (p *Processor) RawColumnCount() int {
	if len(p.rows) == 0 {
		return 0
	}
	return len(p.rows[0])
}

// ContentStartRow returns the index of the first data row.
func (p *Processor) ContentStartRow() int {
	return p.layout.ContentStartRow
}

// IDColumn returns the index of the id column.
func (p *Processor) IDColumn() int {
	return p.layout.IDColumn
}

// StringCount returns the number of interned strings.
func (p *Processor) StringCount() int {
	return p.strings.Len()
}

func (p *Processor) checkRow(row int) error {
	if row < 0 || row >= len(p.rows) {
		return errors.WithFile(errors.OutOfBounds(errors.PhaseQuery, "raw row", row, len(p.rows)), p.file)
	}
	return nil
}

func (p *Processor) column(col int) (*Column, error) {
	if col < 0 || col >= len(p.columns) {
		return nil, errors.WithFile(errors.OutOfBounds(errors.PhaseQuery, "raw column", col, len(p.columns)), p.file)
	}
	return &p.columns[col], nil
}

// Column returns a copy of the column at col.
func (p *Processor) Column(col int) (Column, error) {
	c, err := p.column(col)
	if err != nil {
		return Column{}, err
	}
	return *c, nil
}

// Columns returns a copy of every column in order.
func (p *Processor) Columns() []Column {
	return slices.Clone(p.columns)
}

// IsIDColumn reports whether col is the id column.
func (p *Processor) IsIDColumn(col int) (bool, error) {
	c, err := p.column(col)
	if err != nil {
		return false, err
	}
	return c.IsID, nil
}

// IsCommentRow reports whether the first cell of row starts with the comment marker.
func (p *Processor) IsCommentRow(row int) (bool, error) {
	if err := p.checkRow(row); err != nil {
		return false, err
	}
	return p.isCommentRow(row), nil
}

// IsCommentColumn reports whether col is excluded from the output.
func (p *Processor) IsCommentColumn(col int) (bool, error) {
	c, err := p.column(col)
	if err != nil {
		return false, err
	}
	return c.IsComment, nil
}

// Name returns the column name. The id column is always named "Id".
func (p *Processor) Name(col int) (string, error) {
	c, err := p.column(col)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

// IsSystem reports whether the column's type is a built-in language type.
func (p *Processor) IsSystem(col int) (bool, error) {
	c, err := p.column(col)
	if err != nil {
		return false, err
	}
	return c.IsSystem, nil
}

// GoType returns the Go type generated code uses for the column.
func (p *Processor) GoType(col int) (string, error) {
	c, err := p.column(col)
	if err != nil {
		return "", err
	}
	return c.Codec.GoType(), nil
}

// Keyword returns the canonical type keyword of the column.
func (p *Processor) Keyword(col int) (string, error) {
	c, err := p.column(col)
	if err != nil {
		return "", err
	}
	return c.Keyword(), nil
}

// TypeText returns the type cell as written in the source.
func (p *Processor) TypeText(col int) (string, error) {
	c, err := p.column(col)
	if err != nil {
		return "", err
	}
	return c.TypeText, nil
}

// DefaultValue returns the column default, or "" without a default value row.
func (p *Processor) DefaultValue(col int) (string, error) {
	c, err := p.column(col)
	if err != nil {
		return "", err
	}
	return c.DefaultValue, nil
}

// Comment returns the column comment, or "" without a comment row.
func (p *Processor) Comment(col int) (string, error) {
	c, err := p.column(col)
	if err != nil {
		return "", err
	}
	return c.Comment, nil
}

// Value returns the raw cell at row, col.
func (p *Processor) Value(row, col int) (string, error) {
	if err := p.checkRow(row); err != nil {
		return "", err
	}
	if _, err := p.column(col); err != nil {
		return "", err
	}
	return p.rows[row][col], nil
}

// String returns the interned string at index.
func (p *Processor) String(index int) (string, error) {
	s, err := p.strings.At(index)
	if err != nil {
		return "", errors.WithFile(err, p.file)
	}
	return s, nil
}

// StringIndex returns the interned index of s. It implements codec.Context.
func (p *Processor) StringIndex(s string) (int, bool) {
	return p.strings.Index(s)
}

// Strings returns the interned strings in index order.
func (p *Processor) Strings() []string {
	return p.strings.Strings()
}

// StringCounts returns the occurrence count of each interned string in index order.
func (p *Processor) StringCounts() []int {
	entries := p.strings.Entries()
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Count
	}
	return out
}
