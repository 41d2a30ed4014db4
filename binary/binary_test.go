package binary

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(bytes.NewReader(data))

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	if r.Remaining() != 0 {
		t.Errorf("Remaining: got %d, want 0", r.Remaining())
	}

	_, err := r.ReadByte()
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReaderReadBytes(t *testing.T) {
	r := NewBytesReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	got, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("ReadBytes: got %v, want [1 2 3]", got)
	}

	_, err = r.ReadBytes(10)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Bool(true)
	w.Bool(false)
	w.Byte(0xab)
	w.WriteU16LE(0xbeef)
	w.WriteU32LE(0xdeadbeef)
	w.WriteU64LE(math.MaxUint64 - 1)
	w.WriteFloat32(1.5)
	w.WriteFloat64(-2.25)
	w.WriteU32(300)
	w.WriteString("héllo")
	w.WriteRune('世')
	w.WriteRune('A')

	r := NewBytesReader(w.Bytes())

	if v, err := r.ReadBool(); err != nil || !v {
		t.Errorf("ReadBool: %v %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || v {
		t.Errorf("ReadBool: %v %v", v, err)
	}
	if v, err := r.ReadByte(); err != nil || v != 0xab {
		t.Errorf("ReadByte: %x %v", v, err)
	}
	if v, err := r.ReadU16LE(); err != nil || v != 0xbeef {
		t.Errorf("ReadU16LE: %x %v", v, err)
	}
	if v, err := r.ReadU32LE(); err != nil || v != 0xdeadbeef {
		t.Errorf("ReadU32LE: %x %v", v, err)
	}
	if v, err := r.ReadU64LE(); err != nil || v != math.MaxUint64-1 {
		t.Errorf("ReadU64LE: %x %v", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 1.5 {
		t.Errorf("ReadFloat32: %v %v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != -2.25 {
		t.Errorf("ReadFloat64: %v %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 300 {
		t.Errorf("ReadU32: %v %v", v, err)
	}
	if v, err := r.ReadString(); err != nil || v != "héllo" {
		t.Errorf("ReadString: %q %v", v, err)
	}
	if v, err := r.ReadRune(); err != nil || v != '世' {
		t.Errorf("ReadRune: %q %v", v, err)
	}
	if v, err := r.ReadRune(); err != nil || v != 'A' {
		t.Errorf("ReadRune: %q %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining: %d", r.Remaining())
	}
}

func TestWriterResetAndTruncate(t *testing.T) {
	w := NewWriter()
	w.WriteU32LE(1)
	w.WriteU32LE(2)
	w.Truncate(4)
	if w.Len() != 4 {
		t.Fatalf("Len after Truncate: %d", w.Len())
	}
	w.Reset()
	if w.Len() != 0 {
		t.Fatalf("Len after Reset: %d", w.Len())
	}
}

func TestReaderReadStringInvalid(t *testing.T) {
	r := NewBytesReader([]byte{0x02, 0xff, 0xfe})
	if _, err := r.ReadString(); err == nil {
		t.Error("expected error for invalid UTF-8")
	}

	r = NewBytesReader([]byte{0x05, 'a'})
	if _, err := r.ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderReadBytesCorruptLength(t *testing.T) {
	tests := []struct {
		name string
		r    *Reader
		want error
	}{
		{"bytes reader short", NewBytesReader([]byte{1, 2}), io.ErrUnexpectedEOF},
		{"bytes reader empty", NewBytesReader(nil), io.EOF},
		{"stream short", NewReader(bufio.NewReader(bytes.NewReader([]byte{1, 2}))), io.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.r.ReadBytes(math.MaxInt32); !errors.Is(err, tt.want) {
				t.Errorf("ReadBytes = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := NewBytesReader([]byte{1}).ReadBytes(-1); err == nil {
		t.Error("negative length should fail")
	}
}
