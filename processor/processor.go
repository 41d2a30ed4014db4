package processor

import (
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/datatable/codec"
	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/intern"
)

// IDColumnName is the fixed name reported for the id column.
const IDColumnName = "Id"

// Column describes one column of the table.
type Column struct {
	Index        int
	Name         string
	TypeText     string
	DefaultValue string
	Comment      string
	Codec        codec.Codec
	IsID         bool
	IsComment    bool
	IsSystem     bool
}

// Keyword returns the canonical type keyword.
func (c Column) Keyword() string {
	if c.Codec == nil {
		return ""
	}
	return c.Codec.Keyword()
}

// Processor holds one parsed table. It is not safe for concurrent use.
type Processor struct {
	file     string
	layout   Layout
	marker   string
	rows     [][]string
	columns  []Column
	strings  *intern.Table
	registry *codec.Registry
	log      *zap.Logger

	template  string
	generator CodeGenerator
}

// New loads, parses and validates the table at path.
func New(path string, layout Layout, opts ...Option) (*Processor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	text, err := ReadText(path, o.encoding)
	if err != nil {
		return nil, err
	}
	return build(path, text, layout, o)
}

// NewFromReader parses a table read from r. name identifies the table in
// errors and logs.
func NewFromReader(name string, r io.Reader, layout Layout, opts ...Option) (*Processor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	text, err := decodeText(name, r, o.encoding)
	if err != nil {
		return nil, err
	}
	return build(name, text, layout, o)
}

func build(file, text string, layout Layout, o options) (*Processor, error) {
	log := o.logger
	if log == nil {
		log = Logger()
	}
	p := &Processor{
		file:     file,
		layout:   layout,
		marker:   o.marker,
		registry: o.registry,
		log:      log.With(zap.String("file", file)),
	}

	lines := SplitLines(text)
	p.rows = make([][]string, len(lines))
	for i, line := range lines {
		cells := SplitCells(line)
		if i > 0 && len(cells) != len(p.rows[0]) {
			return nil, errors.ShapeMismatch(file, i, len(p.rows[0]), len(cells))
		}
		p.rows[i] = cells
	}

	if err := layout.validate(p.RawRowCount(), p.RawColumnCount()); err != nil {
		return nil, errors.WithFile(err, file)
	}
	if err := p.bindColumns(); err != nil {
		return nil, err
	}
	p.internStrings()

	p.log.Debug("data table parsed",
		zap.Int("rows", p.RawRowCount()),
		zap.Int("columns", p.RawColumnCount()),
		zap.Int("strings", p.strings.Len()))
	return p, nil
}

func (p *Processor) bindColumns() error {
	l := p.layout
	p.columns = make([]Column, p.RawColumnCount())
	for i := range p.columns {
		c := Column{
			Index:    i,
			Name:     p.rows[l.NameRow][i],
			TypeText: p.rows[l.TypeRow][i],
		}
		if l.HasDefaultValueRow() {
			c.DefaultValue = p.rows[l.DefaultValueRow][i]
		}
		if l.HasCommentRow() {
			c.Comment = p.rows[l.CommentRow][i]
		}

		if i == l.IDColumn {
			c.Name = IDColumnName
			c.Codec = p.registry.ID()
			c.IsID = true
		} else {
			cd, err := p.registry.Lookup(c.TypeText)
			if err != nil {
				return errors.New(errors.PhaseSchema, errors.KindUnknownType).
					File(p.file).
					ColumnIndex(i).
					Column(c.Name, c.TypeText).
					Value(c.TypeText).
					Detail("column type '%s' is not supported", c.TypeText).
					Cause(err).
					Build()
			}
			c.Codec = cd
		}

		c.IsComment = strings.TrimSpace(c.Name) == "" || c.Codec.IsComment()
		c.IsSystem = c.Codec.IsSystem()
		p.columns[i] = c
	}
	return nil
}

// internStrings collects every string cell of the data rows.
func (p *Processor) internStrings() {
	b := intern.NewBuilder()
	for row := p.layout.ContentStartRow; row < len(p.rows); row++ {
		if p.isCommentRow(row) {
			continue
		}
		for i := range p.columns {
			c := &p.columns[i]
			if c.Codec.IsComment() {
				continue
			}
			in, ok := c.Codec.(codec.Interner)
			if !ok {
				continue
			}
			for _, s := range in.InternStrings(p.rows[row][i]) {
				b.Add(s)
			}
		}
	}
	p.strings = b.Build()
}

func (p *Processor) isCommentRow(row int) bool {
	return strings.HasPrefix(p.rows[row][0], p.marker)
}

// FileName returns the path or name the table was loaded from.
func (p *Processor) FileName() string {
	return p.file
}

// TableName returns the file name without directory and extension.
func (p *Processor) TableName() string {
	base := filepath.Base(p.file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Layout returns the layout the table was parsed with.
func (p *Processor) Layout() Layout {
	return p.layout
}

// Registry returns the codec registry bound to the table.
func (p *Processor) Registry() *codec.Registry {
	return p.registry
}
