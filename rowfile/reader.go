package rowfile

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/wippyai/datatable/binary"
	dterrors "github.com/wippyai/datatable/errors"
)

// Reader iterates the records of a row file.
type Reader struct {
	r     *bufio.Reader
	count int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the payload of the next record. It returns io.EOF after the
// last record and io.ErrUnexpectedEOF when a record is cut short.
func (r *Reader) Next() ([]byte, error) {
	length, err := binary.ReadLEB128u(r.r)
	if err != nil {
		return nil, err
	}
	var payload bytes.Buffer
	if _, err := io.CopyN(&payload, r.r, int64(length)); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r.count++
	return payload.Bytes(), nil
}

// Count returns the number of records returned so far.
func (r *Reader) Count() int {
	return r.count
}

// ReadAll returns every record payload in r.
func ReadAll(r io.Reader) ([][]byte, error) {
	rr := NewReader(r)
	var out [][]byte
	for {
		rec, err := rr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, dterrors.New(dterrors.PhaseDecode, dterrors.KindInvalidData).
				Row(rr.Count()).
				Detail("read record").
				Cause(err).
				Build()
		}
		out = append(out, rec)
	}
}

// ReadFile returns every record payload in the file at path.
func ReadFile(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dterrors.IO(dterrors.PhaseDecode, "open", path, err)
	}
	defer f.Close()
	return ReadAll(f)
}

// ReadStrings reads a string asset.
func ReadStrings(r io.Reader) ([]string, error) {
	br := binary.NewReader(bufio.NewReader(r))
	count, err := br.ReadU32()
	if err != nil {
		return nil, dterrors.Wrap(dterrors.PhaseDecode, dterrors.KindInvalidData, err, "read string count")
	}
	var out []string
	for i := uint32(0); i < count; i++ {
		s, err := br.ReadString()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, dterrors.Wrap(dterrors.PhaseDecode, dterrors.KindInvalidData, err, "read string")
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadStringsFile reads the string asset at path.
func ReadStringsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dterrors.IO(dterrors.PhaseDecode, "open", path, err)
	}
	defer f.Close()
	return ReadStrings(f)
}

// ReadDictionary reads every entry of a dictionary file.
func ReadDictionary(r io.Reader) ([]Pair, error) {
	records, err := ReadAll(r)
	if err != nil {
		return nil, err
	}
	out := make([]Pair, 0, len(records))
	for i, rec := range records {
		rr := binary.NewBytesReader(rec)
		key, err := rr.ReadString()
		if err != nil {
			return nil, dterrors.New(dterrors.PhaseDecode, dterrors.KindInvalidData).Row(i).Detail("read key").Cause(err).Build()
		}
		value, err := rr.ReadString()
		if err != nil {
			return nil, dterrors.New(dterrors.PhaseDecode, dterrors.KindInvalidData).Row(i).Detail("read value").Cause(err).Build()
		}
		out = append(out, Pair{Key: key, Value: value})
	}
	return out, nil
}
