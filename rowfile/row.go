package rowfile

import (
	"errors"
	"io"
	"time"

	"github.com/wippyai/datatable/binary"
	dterrors "github.com/wippyai/datatable/errors"
)

// RowReader decodes the fields of one record payload.
type RowReader struct {
	r       *binary.Reader
	strings []string
}

// NewRowReader creates a RowReader over payload. strs is the table's string
// asset; it may be nil when the row holds no string columns.
func NewRowReader(payload []byte, strs []string) *RowReader {
	return &RowReader{r: binary.NewBytesReader(payload), strings: strs}
}

// Done reports an error when unread bytes remain in the record.
func (r *RowReader) Done() error {
	if n := r.r.Remaining(); n > 0 {
		return dterrors.InvalidData(dterrors.PhaseDecode, "trailing bytes in record")
	}
	return nil
}

// Position returns the number of payload bytes consumed.
func (r *RowReader) Position() int {
	return r.r.Position()
}

func fieldErr(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ID reads a row id.
func (r *RowReader) ID() (int32, error) {
	v, err := r.r.ReadU32()
	return int32(v), fieldErr(err)
}

// Bool reads a boolean.
func (r *RowReader) Bool() (bool, error) {
	v, err := r.r.ReadBool()
	return v, fieldErr(err)
}

// Byte reads an unsigned 8-bit integer.
func (r *RowReader) Byte() (uint8, error) {
	v, err := r.r.ReadByte()
	return v, fieldErr(err)
}

// SByte reads a signed 8-bit integer.
func (r *RowReader) SByte() (int8, error) {
	v, err := r.r.ReadByte()
	return int8(v), fieldErr(err)
}

// Int16 reads a little-endian int16.
func (r *RowReader) Int16() (int16, error) {
	v, err := r.r.ReadU16LE()
	return int16(v), fieldErr(err)
}

// UInt16 reads a little-endian uint16.
func (r *RowReader) UInt16() (uint16, error) {
	v, err := r.r.ReadU16LE()
	return v, fieldErr(err)
}

// Int32 reads a little-endian int32.
func (r *RowReader) Int32() (int32, error) {
	v, err := r.r.ReadU32LE()
	return int32(v), fieldErr(err)
}

// UInt32 reads a little-endian uint32.
func (r *RowReader) UInt32() (uint32, error) {
	v, err := r.r.ReadU32LE()
	return v, fieldErr(err)
}

// Int64 reads a little-endian int64.
func (r *RowReader) Int64() (int64, error) {
	v, err := r.r.ReadU64LE()
	return int64(v), fieldErr(err)
}

// UInt64 reads a little-endian uint64.
func (r *RowReader) UInt64() (uint64, error) {
	v, err := r.r.ReadU64LE()
	return v, fieldErr(err)
}

// Float32 reads a little-endian float32.
func (r *RowReader) Float32() (float32, error) {
	v, err := r.r.ReadFloat32()
	return v, fieldErr(err)
}

// Float64 reads a little-endian float64.
func (r *RowReader) Float64() (float64, error) {
	v, err := r.r.ReadFloat64()
	return v, fieldErr(err)
}

// Char reads one UTF-8 encoded rune.
func (r *RowReader) Char() (rune, error) {
	v, err := r.r.ReadRune()
	return v, fieldErr(err)
}

// DateTime reads Unix milliseconds as a UTC time.
func (r *RowReader) DateTime() (time.Time, error) {
	v, err := r.Int64()
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(v).UTC(), nil
}

// StringIndex reads a raw string index.
func (r *RowReader) StringIndex() (int32, error) {
	return r.Int32()
}

// String reads a string index and resolves it through the string asset.
func (r *RowReader) String() (string, error) {
	idx, err := r.StringIndex()
	if err != nil {
		return "", err
	}
	return r.resolve(idx)
}

func (r *RowReader) resolve(idx int32) (string, error) {
	if r.strings == nil {
		return "", dterrors.State(dterrors.PhaseDecode, "no string table attached")
	}
	if idx < 0 || int(idx) >= len(r.strings) {
		return "", dterrors.OutOfBounds(dterrors.PhaseDecode, "string index", int(idx), len(r.strings))
	}
	return r.strings[idx], nil
}

func (r *RowReader) floats(dst []float32) error {
	for i := range dst {
		v, err := r.Float32()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// Vector2 reads two float32 components.
func (r *RowReader) Vector2() (Vector2, error) {
	var f [2]float32
	err := r.floats(f[:])
	return Vector2{f[0], f[1]}, err
}

// Vector3 reads three float32 components.
func (r *RowReader) Vector3() (Vector3, error) {
	var f [3]float32
	err := r.floats(f[:])
	return Vector3{f[0], f[1], f[2]}, err
}

// Vector4 reads four float32 components.
func (r *RowReader) Vector4() (Vector4, error) {
	var f [4]float32
	err := r.floats(f[:])
	return Vector4{f[0], f[1], f[2], f[3]}, err
}

// Quaternion reads x, y, z, w.
func (r *RowReader) Quaternion() (Quaternion, error) {
	var f [4]float32
	err := r.floats(f[:])
	return Quaternion{f[0], f[1], f[2], f[3]}, err
}

// Color reads r, g, b, a float channels.
func (r *RowReader) Color() (Color, error) {
	var f [4]float32
	err := r.floats(f[:])
	return Color{f[0], f[1], f[2], f[3]}, err
}

// Color32 reads r, g, b, a byte channels.
func (r *RowReader) Color32() (Color32, error) {
	b, err := r.r.ReadBytes(4)
	if err != nil {
		return Color32{}, fieldErr(err)
	}
	return Color32{b[0], b[1], b[2], b[3]}, nil
}

// Rect reads x, y, width, height.
func (r *RowReader) Rect() (Rect, error) {
	var f [4]float32
	err := r.floats(f[:])
	return Rect{f[0], f[1], f[2], f[3]}, err
}

func (r *RowReader) count() (int, error) {
	n, err := r.r.ReadU32()
	if err != nil {
		return 0, fieldErr(err)
	}
	if rem := r.r.Remaining(); rem >= 0 && int(n) > rem {
		return 0, dterrors.OutOfBounds(dterrors.PhaseDecode, "array length", int(n), rem)
	}
	return int(n), nil
}

func readArray[T any](r *RowReader, elem func() (T, error)) ([]T, error) {
	n, err := r.count()
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		if out[i], err = elem(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Bools reads a length-prefixed bool array.
func (r *RowReader) Bools() ([]bool, error) {
	return readArray(r, r.Bool)
}

// Int32s reads a length-prefixed int32 array.
func (r *RowReader) Int32s() ([]int32, error) {
	return readArray(r, r.Int32)
}

// Int64s reads a length-prefixed int64 array.
func (r *RowReader) Int64s() ([]int64, error) {
	return readArray(r, r.Int64)
}

// Float32s reads a length-prefixed float32 array.
func (r *RowReader) Float32s() ([]float32, error) {
	return readArray(r, r.Float32)
}

// Float64s reads a length-prefixed float64 array.
func (r *RowReader) Float64s() ([]float64, error) {
	return readArray(r, r.Float64)
}

// StringIndices reads a length-prefixed array of string indices.
func (r *RowReader) StringIndices() ([]int32, error) {
	return readArray(r, r.StringIndex)
}

// Strings reads a length-prefixed string array and resolves every element.
func (r *RowReader) Strings() ([]string, error) {
	return readArray(r, r.String)
}
