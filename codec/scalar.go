package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wippyai/datatable/binary"
	"github.com/wippyai/datatable/rowfile"
)

// BoolCodec encodes a boolean as one byte.
type BoolCodec struct {
	info
}

// NewBoolCodec creates the bool codec.
func NewBoolCodec() *BoolCodec {
	return &BoolCodec{info{
		keyword:     "bool",
		goType:      "bool",
		readMethod:  "Bool",
		typeStrings: []string{"bool", "boolean", "system.boolean"},
		system:      true,
	}}
}

// Encode implements Codec.
func (c *BoolCodec) Encode(_ Context, w *binary.Writer, raw string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	w.Bool(v)
	return nil
}

// Decode implements Codec.
func (c *BoolCodec) Decode(r *rowfile.RowReader) (any, error) {
	return r.Bool()
}

// IntCodec encodes a fixed-width little-endian integer.
type IntCodec struct {
	info
	bits   int
	signed bool
}

func newIntCodec(keyword, goType, readMethod string, bits int, signed bool, aliases ...string) *IntCodec {
	return &IntCodec{
		info: info{
			keyword:     keyword,
			goType:      goType,
			readMethod:  readMethod,
			typeStrings: append([]string{keyword}, aliases...),
			system:      true,
		},
		bits:   bits,
		signed: signed,
	}
}

// NewInt8Codec creates the sbyte codec.
func NewInt8Codec() *IntCodec {
	return newIntCodec("sbyte", "int8", "SByte", 8, true, "int8", "system.sbyte")
}

// NewUint8Codec creates the byte codec.
func NewUint8Codec() *IntCodec {
	return newIntCodec("byte", "uint8", "Byte", 8, false, "uint8", "system.byte")
}

// NewInt16Codec creates the short codec.
func NewInt16Codec() *IntCodec {
	return newIntCodec("short", "int16", "Int16", 16, true, "int16", "system.int16")
}

// NewUint16Codec creates the ushort codec.
func NewUint16Codec() *IntCodec {
	return newIntCodec("ushort", "uint16", "UInt16", 16, false, "uint16", "system.uint16")
}

// NewInt32Codec creates the int codec.
func NewInt32Codec() *IntCodec {
	return newIntCodec("int", "int32", "Int32", 32, true, "int32", "system.int32")
}

// NewUint32Codec creates the uint codec.
func NewUint32Codec() *IntCodec {
	return newIntCodec("uint", "uint32", "UInt32", 32, false, "uint32", "system.uint32")
}

// NewInt64Codec creates the long codec.
func NewInt64Codec() *IntCodec {
	return newIntCodec("long", "int64", "Int64", 64, true, "int64", "system.int64")
}

// NewUint64Codec creates the ulong codec.
func NewUint64Codec() *IntCodec {
	return newIntCodec("ulong", "uint64", "UInt64", 64, false, "uint64", "system.uint64")
}

// Encode implements Codec.
func (c *IntCodec) Encode(_ Context, w *binary.Writer, raw string) error {
	raw = strings.TrimSpace(raw)
	var u uint64
	if c.signed {
		v, err := strconv.ParseInt(raw, 10, c.bits)
		if err != nil {
			return err
		}
		u = uint64(v)
	} else {
		v, err := strconv.ParseUint(raw, 10, c.bits)
		if err != nil {
			return err
		}
		u = v
	}
	switch c.bits {
	case 8:
		w.Byte(byte(u))
	case 16:
		w.WriteU16LE(uint16(u))
	case 32:
		w.WriteU32LE(uint32(u))
	default:
		w.WriteU64LE(u)
	}
	return nil
}

// Decode implements Codec.
func (c *IntCodec) Decode(r *rowfile.RowReader) (any, error) {
	switch {
	case c.bits == 8 && c.signed:
		return r.SByte()
	case c.bits == 8:
		return r.Byte()
	case c.bits == 16 && c.signed:
		return r.Int16()
	case c.bits == 16:
		return r.UInt16()
	case c.bits == 32 && c.signed:
		return r.Int32()
	case c.bits == 32:
		return r.UInt32()
	case c.signed:
		return r.Int64()
	default:
		return r.UInt64()
	}
}

// FloatCodec encodes an IEEE-754 float.
type FloatCodec struct {
	info
	bits int
}

// NewFloat32Codec creates the float codec.
func NewFloat32Codec() *FloatCodec {
	return &FloatCodec{
		info: info{
			keyword:     "float",
			goType:      "float32",
			readMethod:  "Float32",
			typeStrings: []string{"float", "float32", "single", "system.single"},
			system:      true,
		},
		bits: 32,
	}
}

// NewFloat64Codec creates the double codec.
func NewFloat64Codec() *FloatCodec {
	return &FloatCodec{
		info: info{
			keyword:     "double",
			goType:      "float64",
			readMethod:  "Float64",
			typeStrings: []string{"double", "float64", "system.double"},
			system:      true,
		},
		bits: 64,
	}
}

// Encode implements Codec.
func (c *FloatCodec) Encode(_ Context, w *binary.Writer, raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), c.bits)
	if err != nil {
		return err
	}
	if c.bits == 32 {
		w.WriteFloat32(float32(v))
	} else {
		w.WriteFloat64(v)
	}
	return nil
}

// Decode implements Codec.
func (c *FloatCodec) Decode(r *rowfile.RowReader) (any, error) {
	if c.bits == 32 {
		return r.Float32()
	}
	return r.Float64()
}

// CharCodec encodes a single character as UTF-8.
type CharCodec struct {
	info
}

// NewCharCodec creates the char codec.
func NewCharCodec() *CharCodec {
	return &CharCodec{info{
		keyword:     "char",
		goType:      "rune",
		readMethod:  "Char",
		typeStrings: []string{"char", "rune", "system.char"},
		system:      true,
	}}
}

// Encode implements Codec.
func (c *CharCodec) Encode(_ Context, w *binary.Writer, raw string) error {
	if utf8.RuneCountInString(raw) != 1 {
		return fmt.Errorf("char: want exactly one character, got %d", utf8.RuneCountInString(raw))
	}
	r, size := utf8.DecodeRuneInString(raw)
	if r == utf8.RuneError && size == 1 {
		return fmt.Errorf("char: invalid UTF-8")
	}
	w.WriteRune(r)
	return nil
}

// Decode implements Codec.
func (c *CharCodec) Decode(r *rowfile.RowReader) (any, error) {
	return r.Char()
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// DateTimeCodec encodes a timestamp as int64 Unix milliseconds in UTC.
type DateTimeCodec struct {
	info
}

// NewDateTimeCodec creates the datetime codec.
func NewDateTimeCodec() *DateTimeCodec {
	return &DateTimeCodec{info{
		keyword:     "datetime",
		goType:      "time.Time",
		readMethod:  "DateTime",
		typeStrings: []string{"datetime", "system.datetime"},
	}}
}

// ParseDateTime parses raw with the accepted layouts. Values without a zone are UTC.
func ParseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("datetime: cannot parse %q", raw)
}

// Encode implements Codec.
func (c *DateTimeCodec) Encode(_ Context, w *binary.Writer, raw string) error {
	t, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	w.WriteU64LE(uint64(t.UnixMilli()))
	return nil
}

// Decode implements Codec.
func (c *DateTimeCodec) Decode(r *rowfile.RowReader) (any, error) {
	return r.DateTime()
}
