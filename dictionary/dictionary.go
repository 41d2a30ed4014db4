// Package dictionary compiles key/value tables such as localization
// dictionaries and configuration sheets into binary records.
//
// Each kept line becomes one record: a 7-bit encoded byte length, then the
// key and the value as 7-bit length-prefixed UTF-8 strings. Blank lines,
// lines whose first cell starts with "#" and lines with a blank key are
// skipped.
package dictionary

import (
	"bufio"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/wippyai/datatable/binary"
	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/processor"
	"github.com/wippyai/datatable/rowfile"
)

// Option configures a Processor.
type Option func(*Processor)

// WithLogger logs through l instead of processor.Logger().
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// WithCommentMarker sets the prefix that marks a comment line.
func WithCommentMarker(marker string) Option {
	return func(p *Processor) {
		if marker != "" {
			p.marker = marker
		}
	}
}

// Processor holds the entries of one dictionary file.
type Processor struct {
	file    string
	marker  string
	log     *zap.Logger
	entries []rowfile.Pair
	dups    int
}

// New loads the dictionary at path, taking keys from keyColumn and values
// from valueColumn.
func New(path string, enc encoding.Encoding, keyColumn, valueColumn int, opts ...Option) (*Processor, error) {
	if keyColumn < 0 || valueColumn < 0 {
		return nil, errors.Configuration("dictionary columns (%d, %d) are invalid", keyColumn, valueColumn)
	}
	if keyColumn == valueColumn {
		return nil, errors.Configuration("key and value column are both %d", keyColumn)
	}
	text, err := processor.ReadText(path, enc)
	if err != nil {
		return nil, err
	}

	p := &Processor{file: path, marker: processor.DefaultCommentMarker, log: processor.Logger()}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(zap.String("file", path))

	need := max(keyColumn, valueColumn) + 1
	seen := make(map[string]int)
	for row, line := range processor.SplitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := processor.SplitCells(line)
		if strings.HasPrefix(cells[0], p.marker) {
			continue
		}
		if len(cells) < need {
			return nil, errors.New(errors.PhaseParse, errors.KindParse).
				File(path).
				Row(row).
				Value(len(cells)).
				Detail("row %d has %d cells, need at least %d", row, len(cells), need).
				Build()
		}
		key := strings.TrimSpace(cells[keyColumn])
		if key == "" {
			continue
		}
		if first, ok := seen[key]; ok {
			p.dups++
			p.log.Warn("duplicate dictionary key", zap.String("key", key), zap.Int("row", row), zap.Int("first", first))
		} else {
			seen[key] = row
		}
		p.entries = append(p.entries, rowfile.Pair{Key: key, Value: cells[valueColumn]})
	}
	return p, nil
}

// FileName returns the source path.
func (p *Processor) FileName() string {
	return p.file
}

// Len returns the number of entries.
func (p *Processor) Len() int {
	return len(p.entries)
}

// Duplicates returns how many entries repeat an earlier key.
func (p *Processor) Duplicates() int {
	return p.dups
}

// Entry returns the entry at i in file order.
func (p *Processor) Entry(i int) (rowfile.Pair, error) {
	if i < 0 || i >= len(p.entries) {
		return rowfile.Pair{}, errors.WithFile(errors.OutOfBounds(errors.PhaseQuery, "dictionary entry", i, len(p.entries)), p.file)
	}
	return p.entries[i], nil
}

// Lookup returns the value of key. Later entries override earlier ones.
func (p *Processor) Lookup(key string) (string, bool) {
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i].Key == key {
			return p.entries[i].Value, true
		}
	}
	return "", false
}

// WriteData writes every entry as one record and returns the bytes written.
func (p *Processor) WriteData(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	rec := binary.NewWriter()
	var n int64
	var prefix []byte
	for _, e := range p.entries {
		rec.Reset()
		rec.WriteString(e.Key)
		rec.WriteString(e.Value)
		prefix = binary.AppendLEB128u(prefix[:0], uint32(rec.Len()))
		if _, err := bw.Write(prefix); err != nil {
			return n, errors.IO(errors.PhaseWrite, "write", p.file, err)
		}
		if _, err := bw.Write(rec.Bytes()); err != nil {
			return n, errors.IO(errors.PhaseWrite, "write", p.file, err)
		}
		n += int64(len(prefix) + rec.Len())
	}
	if err := bw.Flush(); err != nil {
		return n, errors.IO(errors.PhaseWrite, "flush", p.file, err)
	}
	return n, nil
}

// GenerateDataFile writes the dictionary to path. On failure nothing is
// left at path.
func (p *Processor) GenerateDataFile(path string) error {
	if path == "" {
		return errors.InvalidInput(errors.PhaseWrite, "output file name is invalid")
	}
	f, err := os.Create(path)
	if err != nil {
		p.log.Error("generate dictionary file failure", zap.String("output", path), zap.Error(err))
		return errors.IO(errors.PhaseWrite, "create", path, err)
	}
	n, err := p.WriteData(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.IO(errors.PhaseWrite, "close", path, cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		p.log.Error("generate dictionary file failure", zap.String("output", path), zap.Error(err))
		return err
	}
	p.log.Info("generate dictionary file success",
		zap.String("output", path),
		zap.Int("entries", len(p.entries)),
		zap.Int64("bytes", n))
	return nil
}
