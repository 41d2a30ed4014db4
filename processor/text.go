package processor

import (
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/wippyai/datatable/errors"
)

const utf8BOM = "\ufeff"

// LookupEncoding resolves an encoding label such as "utf-8", "gb2312" or
// "windows-1252". An empty label yields nil, which means UTF-8.
func LookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindConfiguration, err, "unknown text encoding "+label)
	}
	return enc, nil
}

// ReadText loads a file and decodes it with enc, or as UTF-8 when enc is nil.
// A leading byte order mark is dropped.
func ReadText(path string, enc encoding.Encoding) (string, error) {
	if path == "" {
		return "", errors.Configuration("data table file name is invalid")
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.PhaseConfig, errors.KindConfiguration).
				File(path).
				Detail("data table file '%s' does not exist", path).
				Cause(err).
				Build()
		}
		return "", errors.IO(errors.PhaseLoad, "open", path, err)
	}
	defer f.Close()
	return decodeText(path, f, enc)
}

func decodeText(name string, r io.Reader, enc encoding.Encoding) (string, error) {
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.IO(errors.PhaseLoad, "read", name, err)
	}
	return strings.TrimPrefix(string(data), utf8BOM), nil
}

// encodeText converts UTF-8 text to enc for writing.
func encodeText(text string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return []byte(text), nil
	}
	out, err := enc.NewEncoder().String(text)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// SplitLines splits on CRLF, LF and lone CR. A trailing line break does not
// start another row.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// SplitCells splits a line on tabs and trims double quotes from every cell.
func SplitCells(line string) []string {
	cells := strings.Split(line, "\t")
	for i, c := range cells {
		cells[i] = strings.Trim(c, `"`)
	}
	return cells
}
