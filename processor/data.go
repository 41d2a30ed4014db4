package processor

import (
	"bufio"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/datatable/binary"
	"github.com/wippyai/datatable/errors"
)

// Stats summarizes one data write.
type Stats struct {
	Rows      int // data rows considered, comment rows excluded
	Written   int
	Omitted   int
	Defaulted int // cells replaced by their column default
	Bytes     int64
}

// RowBytes encodes the data row at row. A non-nil error means the row is
// omitted from the output; the returned bytes are never a partial record.
func (p *Processor) RowBytes(row int) ([]byte, error) {
	if err := p.checkRow(row); err != nil {
		return nil, err
	}
	if row < p.layout.ContentStartRow {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			File(p.file).
			Row(row).
			Detail("row %d is a header row, content starts at %d", row, p.layout.ContentStartRow).
			Build()
	}
	if p.isCommentRow(row) {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			File(p.file).
			Row(row).
			Detail("row %d is a comment row", row).
			Build()
	}
	w := binary.NewWriter()
	if _, err := p.encodeRow(w, row); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// encodeRow appends the encoded cells of row to w and returns how many cells
// fell back to their default. On error w holds nothing of the row.
func (p *Processor) encodeRow(w *binary.Writer, row int) (int, error) {
	start := w.Len()
	defaulted := 0
	for i := range p.columns {
		c := &p.columns[i]
		if c.IsComment {
			continue
		}
		raw := p.rows[row][i]
		mark := w.Len()
		err := c.Codec.Encode(p, w, raw)
		if err == nil {
			continue
		}
		w.Truncate(mark)

		if c.IsID || c.DefaultValue == "" {
			p.log.Error("parse raw value failure",
				zap.Int("row", row), zap.Int("column", i),
				zap.String("name", c.Name), zap.String("type", c.Keyword()),
				zap.String("value", raw), zap.Error(err))
			w.Truncate(start)
			return 0, p.cellError(row, c, raw, err, "parse raw value failure")
		}

		p.log.Warn("parse raw value failure, using default value",
			zap.Int("row", row), zap.Int("column", i),
			zap.String("name", c.Name), zap.String("type", c.Keyword()),
			zap.String("value", raw), zap.String("default", c.DefaultValue), zap.Error(err))
		if derr := c.Codec.Encode(p, w, c.DefaultValue); derr != nil {
			p.log.Error("parse default value failure",
				zap.Int("row", row), zap.Int("column", i),
				zap.String("name", c.Name), zap.String("type", c.Keyword()),
				zap.String("default", c.DefaultValue), zap.Error(derr))
			w.Truncate(start)
			return 0, p.cellError(row, c, c.DefaultValue, derr, "parse default value failure")
		}
		defaulted++
	}
	return defaulted, nil
}

func (p *Processor) cellError(row int, c *Column, raw string, cause error, detail string) error {
	return errors.New(errors.PhaseEncode, errors.KindCellEncoding).
		File(p.file).
		Cell(row, c.Index).
		Column(c.Name, c.Keyword()).
		Value(raw).
		Cause(cause).
		Detail("%s", detail).
		Build()
}

// WriteData writes one length-prefixed record per encodable data row.
// Rows that fail to encode are logged and counted as omitted.
func (p *Processor) WriteData(w io.Writer) (Stats, error) {
	var stats Stats
	bw := bufio.NewWriter(w)
	rec := binary.NewWriter()
	var prefix []byte

	for row := p.layout.ContentStartRow; row < len(p.rows); row++ {
		if p.isCommentRow(row) {
			continue
		}
		stats.Rows++
		rec.Reset()
		defaulted, err := p.encodeRow(rec, row)
		if err != nil {
			stats.Omitted++
			continue
		}
		stats.Defaulted += defaulted

		prefix = binary.AppendLEB128u(prefix[:0], uint32(rec.Len()))
		if _, err := bw.Write(prefix); err != nil {
			return stats, errors.IO(errors.PhaseWrite, "write", p.file, err)
		}
		if _, err := bw.Write(rec.Bytes()); err != nil {
			return stats, errors.IO(errors.PhaseWrite, "write", p.file, err)
		}
		stats.Written++
		stats.Bytes += int64(len(prefix) + rec.Len())
	}
	if err := bw.Flush(); err != nil {
		return stats, errors.IO(errors.PhaseWrite, "flush", p.file, err)
	}
	return stats, nil
}

// GenerateDataFile writes the row file to path. On failure nothing is left
// at path.
func (p *Processor) GenerateDataFile(path string) (Stats, error) {
	if path == "" {
		return Stats{}, errors.InvalidInput(errors.PhaseWrite, "output file name is invalid")
	}
	var stats Stats
	err := writeFile(path, func(w io.Writer) error {
		var err error
		stats, err = p.WriteData(w)
		return err
	})
	if err != nil {
		p.log.Error("generate data file failure", zap.String("output", path), zap.Error(err))
		return stats, err
	}
	p.log.Info("generate data file success",
		zap.String("output", path),
		zap.Int("rows", stats.Rows),
		zap.Int("written", stats.Written),
		zap.Int("omitted", stats.Omitted),
		zap.Int64("bytes", stats.Bytes))
	return stats, nil
}

// GenerateStringFile writes the interned strings to path in index order.
func (p *Processor) GenerateStringFile(path string) error {
	if path == "" {
		return errors.InvalidInput(errors.PhaseWrite, "output file name is invalid")
	}
	return writeFile(path, func(w io.Writer) error {
		if _, err := p.strings.WriteTo(w); err != nil {
			return errors.IO(errors.PhaseWrite, "write", path, err)
		}
		return nil
	})
}

// writeFile creates path, runs fill and closes the file. The file is removed
// when fill or close fails.
func writeFile(path string, fill func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.IO(errors.PhaseWrite, "create", path, err)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return errors.IO(errors.PhaseWrite, "close", path, err)
	}
	return nil
}
