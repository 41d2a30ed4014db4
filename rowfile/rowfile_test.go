package rowfile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wippyai/datatable/binary"
	dterrors "github.com/wippyai/datatable/errors"
)

func records(payloads ...[]byte) []byte {
	var out []byte
	for _, p := range payloads {
		out = binary.AppendLEB128u(out, uint32(len(p)))
		out = append(out, p...)
	}
	return out
}

func TestReader_Next(t *testing.T) {
	data := records([]byte{1, 2, 3}, nil, []byte{9})
	r := NewReader(bytes.NewReader(data))

	want := [][]byte{{1, 2, 3}, {}, {9}}
	for i, w := range want {
		got, err := r.Next()
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if !bytes.Equal(got, w) {
			t.Errorf("record %d = %v, want %v", i, got, w)
		}
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("after last record: %v, want io.EOF", err)
	}
	if r.Count() != 3 {
		t.Errorf("Count = %d, want 3", r.Count())
	}
}

func TestReader_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short payload", []byte{5, 1, 2}},
		{"cut length prefix", []byte{0x80}},
		{"second record cut", append(records([]byte{1}), 3, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(tt.data))
			var err error
			for err == nil {
				_, err = r.Next()
			}
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("got %v, want io.ErrUnexpectedEOF", err)
			}

			_, err = ReadAll(bytes.NewReader(tt.data))
			if !dterrors.IsKind(err, dterrors.KindInvalidData) {
				t.Errorf("ReadAll: got %v, want invalid_data", err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.bytes")
	if err := os.WriteFile(path, records([]byte{1}, []byte{2, 3}), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !bytes.Equal(got[1], []byte{2, 3}) {
		t.Errorf("ReadFile = %v", got)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "none")); !dterrors.IsKind(err, dterrors.KindIO) {
		t.Errorf("missing file: %v", err)
	}
}

func TestReadStrings(t *testing.T) {
	got, err := ReadStrings(bytes.NewReader([]byte{2, 2, 'b', 'b', 1, 'a'}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "bb" || got[1] != "a" {
		t.Errorf("ReadStrings = %q", got)
	}

	empty, err := ReadStrings(bytes.NewReader([]byte{0}))
	if err != nil || len(empty) != 0 {
		t.Errorf("empty asset: %q, %v", empty, err)
	}

	for _, data := range [][]byte{{}, {2, 1, 'a'}, {1, 3, 'a'}} {
		if _, err := ReadStrings(bytes.NewReader(data)); !dterrors.IsKind(err, dterrors.KindInvalidData) {
			t.Errorf("ReadStrings(% x): got %v, want invalid_data", data, err)
		}
	}
}

func TestCorruptLengths(t *testing.T) {
	huge := []byte{0xff, 0xff, 0xff, 0xff, 0x0f}

	tests := []struct {
		name string
		read func(data []byte) error
		data []byte
	}{
		{"string count", func(d []byte) error { _, err := ReadStrings(bytes.NewReader(d)); return err }, huge},
		{"string length", func(d []byte) error { _, err := ReadStrings(bytes.NewReader(d)); return err }, append([]byte{1}, huge...)},
		{"record length", func(d []byte) error { _, err := ReadAll(bytes.NewReader(d)); return err }, append(append([]byte{}, huge...), 1, 2)},
		{"dictionary record", func(d []byte) error { _, err := ReadDictionary(bytes.NewReader(d)); return err }, append(append([]byte{}, huge...), 'k')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(tt.data)
			if !dterrors.IsKind(err, dterrors.KindInvalidData) {
				t.Fatalf("got %v, want invalid_data", err)
			}
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("got %v, want io.ErrUnexpectedEOF in chain", err)
			}
		})
	}
}

func TestReadDictionary(t *testing.T) {
	entry := func(k, v string) []byte {
		w := binary.NewWriter()
		w.WriteString(k)
		w.WriteString(v)
		return w.Bytes()
	}
	data := records(entry("Game.Title", "Star Force"), entry("Empty", ""))
	got, err := ReadDictionary(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	want := []Pair{{"Game.Title", "Star Force"}, {"Empty", ""}}
	if len(got) != len(want) {
		t.Fatalf("got %d pairs", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	bad := records([]byte{3, 'k'})
	if _, err := ReadDictionary(bytes.NewReader(bad)); !dterrors.IsKind(err, dterrors.KindInvalidData) {
		t.Errorf("bad record: %v", err)
	}
}

func TestRowReader_Fields(t *testing.T) {
	id := int32(-7)
	w := binary.NewWriter()
	w.WriteU32(uint32(id))
	w.Bool(true)
	w.Byte(200)
	w.Byte(0xFE)
	w.WriteU16LE(uint16(0xFFFF))
	w.WriteU32LE(1)
	w.WriteU64LE(uint64(1700000000000))
	w.WriteFloat64(2.5)
	w.WriteRune('龍')
	for _, f := range []float32{1, 2, 3} {
		w.WriteFloat32(f)
	}
	w.WriteBytes([]byte{255, 128, 0, 64})
	w.WriteU32(2)
	w.WriteU32LE(1)
	w.WriteU32LE(0)

	r := NewRowReader(w.Bytes(), []string{"zero", "one"})

	if v, err := r.ID(); err != nil || v != -7 {
		t.Errorf("ID = %d, %v", v, err)
	}
	if v, err := r.Bool(); err != nil || !v {
		t.Errorf("Bool = %v, %v", v, err)
	}
	if v, err := r.Byte(); err != nil || v != 200 {
		t.Errorf("Byte = %d, %v", v, err)
	}
	if v, err := r.SByte(); err != nil || v != -2 {
		t.Errorf("SByte = %d, %v", v, err)
	}
	if v, err := r.Int16(); err != nil || v != -1 {
		t.Errorf("Int16 = %d, %v", v, err)
	}
	if v, err := r.String(); err != nil || v != "one" {
		t.Errorf("String = %q, %v", v, err)
	}
	if v, err := r.DateTime(); err != nil || !v.Equal(time.UnixMilli(1700000000000)) || v.Location() != time.UTC {
		t.Errorf("DateTime = %v, %v", v, err)
	}
	if v, err := r.Float64(); err != nil || v != 2.5 {
		t.Errorf("Float64 = %v, %v", v, err)
	}
	if v, err := r.Char(); err != nil || v != '龍' {
		t.Errorf("Char = %q, %v", v, err)
	}
	if v, err := r.Vector3(); err != nil || v != (Vector3{1, 2, 3}) {
		t.Errorf("Vector3 = %+v, %v", v, err)
	}
	if v, err := r.Color32(); err != nil || v != (Color32{255, 128, 0, 64}) {
		t.Errorf("Color32 = %+v, %v", v, err)
	}
	if v, err := r.Strings(); err != nil || len(v) != 2 || v[0] != "one" || v[1] != "zero" {
		t.Errorf("Strings = %q, %v", v, err)
	}
	if err := r.Done(); err != nil {
		t.Errorf("Done: %v", err)
	}
	if r.Position() != len(w.Bytes()) {
		t.Errorf("Position = %d, want %d", r.Position(), len(w.Bytes()))
	}
}

func TestRowReader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		strs  []string
		read  func(r *RowReader) error
		check func(error) bool
	}{
		{
			name:  "truncated int32",
			data:  []byte{1, 2},
			read:  func(r *RowReader) error { _, err := r.Int32(); return err },
			check: func(err error) bool { return errors.Is(err, io.ErrUnexpectedEOF) },
		},
		{
			name:  "empty record",
			data:  nil,
			read:  func(r *RowReader) error { _, err := r.ID(); return err },
			check: func(err error) bool { return errors.Is(err, io.ErrUnexpectedEOF) },
		},
		{
			name:  "string without table",
			data:  []byte{0, 0, 0, 0},
			read:  func(r *RowReader) error { _, err := r.String(); return err },
			check: func(err error) bool { return dterrors.IsKind(err, dterrors.KindState) },
		},
		{
			name:  "string index out of range",
			data:  []byte{5, 0, 0, 0},
			strs:  []string{"a"},
			read:  func(r *RowReader) error { _, err := r.String(); return err },
			check: func(err error) bool { return dterrors.IsKind(err, dterrors.KindOutOfBounds) },
		},
		{
			name:  "array longer than record",
			data:  []byte{100, 1},
			read:  func(r *RowReader) error { _, err := r.Bools(); return err },
			check: func(err error) bool { return dterrors.IsKind(err, dterrors.KindOutOfBounds) },
		},
		{
			name:  "trailing bytes",
			data:  []byte{1, 9},
			read:  func(r *RowReader) error { _, _ = r.ID(); return r.Done() },
			check: func(err error) bool { return dterrors.IsKind(err, dterrors.KindInvalidData) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewRowReader(tt.data, tt.strs))
			if err == nil || !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}
