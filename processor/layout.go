package processor

import (
	"github.com/wippyai/datatable/errors"
)

// NoRow marks an absent optional header row.
const NoRow = -1

// Layout locates the header rows and the id column of a table.
type Layout struct {
	NameRow         int
	TypeRow         int
	DefaultValueRow int // NoRow when the table has no default values
	CommentRow      int // NoRow when the table has no column comments
	ContentStartRow int
	IDColumn        int
}

// DefaultLayout is the conventional layout: a title row, then name, type and
// comment rows, data from row 4, and a leading comment column before the id.
func DefaultLayout() Layout {
	return Layout{
		NameRow:         1,
		TypeRow:         2,
		DefaultValueRow: NoRow,
		CommentRow:      3,
		ContentStartRow: 4,
		IDColumn:        1,
	}
}

// HasDefaultValueRow reports whether the layout names a default value row.
func (l Layout) HasDefaultValueRow() bool {
	return l.DefaultValueRow >= 0
}

// HasCommentRow reports whether the layout names a comment row.
func (l Layout) HasCommentRow() bool {
	return l.CommentRow >= 0
}

// validate checks the layout against a grid of rows x columns.
func (l Layout) validate(rows, columns int) error {
	switch {
	case l.NameRow < 0:
		return errors.Configuration("name row '%d' is invalid", l.NameRow)
	case l.TypeRow < 0:
		return errors.Configuration("type row '%d' is invalid", l.TypeRow)
	case l.ContentStartRow < 0:
		return errors.Configuration("content start row '%d' is invalid", l.ContentStartRow)
	case l.IDColumn < 0:
		return errors.Configuration("id column '%d' is invalid", l.IDColumn)
	case l.NameRow >= rows:
		return errors.Configuration("name row '%d' >= raw row count '%d' is not allowed", l.NameRow, rows)
	case l.TypeRow >= rows:
		return errors.Configuration("type row '%d' >= raw row count '%d' is not allowed", l.TypeRow, rows)
	case l.HasDefaultValueRow() && l.DefaultValueRow >= rows:
		return errors.Configuration("default value row '%d' >= raw row count '%d' is not allowed", l.DefaultValueRow, rows)
	case l.HasCommentRow() && l.CommentRow >= rows:
		return errors.Configuration("comment row '%d' >= raw row count '%d' is not allowed", l.CommentRow, rows)
	case l.ContentStartRow > rows:
		return errors.Configuration("content start row '%d' > raw row count '%d' is not allowed", l.ContentStartRow, rows)
	case l.IDColumn >= columns:
		return errors.Configuration("id column '%d' >= raw column count '%d' is not allowed", l.IDColumn, columns)
	}
	return nil
}
