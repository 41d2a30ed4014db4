package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/datatable/binary"
	"github.com/wippyai/datatable/rowfile"
)

// ElementSeparator splits the components of vectors, colors and arrays.
const ElementSeparator = ","

func splitElements(raw string) []string {
	return strings.Split(raw, ElementSeparator)
}

// VectorCodec encodes a fixed number of comma separated float32 components.
type VectorCodec struct {
	info
	decode func(r *rowfile.RowReader) (any, error)
	size   int
}

func newVectorCodec(keyword, goType, readMethod string, size int, decode func(r *rowfile.RowReader) (any, error)) *VectorCodec {
	return &VectorCodec{
		info: info{
			keyword:     keyword,
			goType:      goType,
			readMethod:  readMethod,
			typeStrings: []string{keyword, "unityengine." + keyword},
		},
		size:   size,
		decode: decode,
	}
}

// NewVector2Codec creates the vector2 codec.
func NewVector2Codec() *VectorCodec {
	return newVectorCodec("vector2", "rowfile.Vector2", "Vector2", 2, func(r *rowfile.RowReader) (any, error) { return r.Vector2() })
}

// NewVector3Codec creates the vector3 codec.
func NewVector3Codec() *VectorCodec {
	return newVectorCodec("vector3", "rowfile.Vector3", "Vector3", 3, func(r *rowfile.RowReader) (any, error) { return r.Vector3() })
}

// NewVector4Codec creates the vector4 codec.
func NewVector4Codec() *VectorCodec {
	return newVectorCodec("vector4", "rowfile.Vector4", "Vector4", 4, func(r *rowfile.RowReader) (any, error) { return r.Vector4() })
}

// NewQuaternionCodec creates the quaternion codec.
func NewQuaternionCodec() *VectorCodec {
	return newVectorCodec("quaternion", "rowfile.Quaternion", "Quaternion", 4, func(r *rowfile.RowReader) (any, error) { return r.Quaternion() })
}

// NewColorCodec creates the color codec.
func NewColorCodec() *VectorCodec {
	return newVectorCodec("color", "rowfile.Color", "Color", 4, func(r *rowfile.RowReader) (any, error) { return r.Color() })
}

// NewRectCodec creates the rect codec.
func NewRectCodec() *VectorCodec {
	return newVectorCodec("rect", "rowfile.Rect", "Rect", 4, func(r *rowfile.RowReader) (any, error) { return r.Rect() })
}

// Size returns the component count.
func (c *VectorCodec) Size() int {
	return c.size
}

// Encode implements Codec.
func (c *VectorCodec) Encode(_ Context, w *binary.Writer, raw string) error {
	parts := splitElements(raw)
	if len(parts) != c.size {
		return fmt.Errorf("%s: want %d components, got %d", c.keyword, c.size, len(parts))
	}
	values := make([]float32, c.size)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return fmt.Errorf("%s component %d: %w", c.keyword, i, err)
		}
		values[i] = float32(v)
	}
	for _, v := range values {
		w.WriteFloat32(v)
	}
	return nil
}

// Decode implements Codec.
func (c *VectorCodec) Decode(r *rowfile.RowReader) (any, error) {
	return c.decode(r)
}

// Color32Codec encodes four comma separated byte channels.
type Color32Codec struct {
	info
}

// NewColor32Codec creates the color32 codec.
func NewColor32Codec() *Color32Codec {
	return &Color32Codec{info{
		keyword:     "color32",
		goType:      "rowfile.Color32",
		readMethod:  "Color32",
		typeStrings: []string{"color32", "unityengine.color32"},
	}}
}

// Encode implements Codec.
func (c *Color32Codec) Encode(_ Context, w *binary.Writer, raw string) error {
	parts := splitElements(raw)
	if len(parts) != 4 {
		return fmt.Errorf("color32: want 4 channels, got %d", len(parts))
	}
	var channels [4]byte
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return fmt.Errorf("color32 channel %d: %w", i, err)
		}
		channels[i] = byte(v)
	}
	w.WriteBytes(channels[:])
	return nil
}

// Decode implements Codec.
func (c *Color32Codec) Decode(r *rowfile.RowReader) (any, error) {
	return r.Color32()
}

// ArrayCodec encodes a comma separated list of element values, prefixed by
// a 7-bit encoded element count. An empty cell is an empty array.
type ArrayCodec struct {
	info
	elem   Codec
	decode func(r *rowfile.RowReader) (any, error)
}

func newArrayCodec(elem Codec, goType, readMethod string, decode func(r *rowfile.RowReader) (any, error)) *ArrayCodec {
	var types []string
	for _, s := range elem.TypeStrings() {
		types = append(types, s+"[]", "list<"+s+">")
	}
	return &ArrayCodec{
		info: info{
			keyword:     elem.Keyword() + "[]",
			goType:      goType,
			readMethod:  readMethod,
			typeStrings: types,
		},
		elem:   elem,
		decode: decode,
	}
}

// NewBoolArrayCodec creates the bool[] codec.
func NewBoolArrayCodec() *ArrayCodec {
	return newArrayCodec(NewBoolCodec(), "[]bool", "Bools", func(r *rowfile.RowReader) (any, error) { return r.Bools() })
}

// NewInt32ArrayCodec creates the int[] codec.
func NewInt32ArrayCodec() *ArrayCodec {
	return newArrayCodec(NewInt32Codec(), "[]int32", "Int32s", func(r *rowfile.RowReader) (any, error) { return r.Int32s() })
}

// NewInt64ArrayCodec creates the long[] codec.
func NewInt64ArrayCodec() *ArrayCodec {
	return newArrayCodec(NewInt64Codec(), "[]int64", "Int64s", func(r *rowfile.RowReader) (any, error) { return r.Int64s() })
}

// NewFloat32ArrayCodec creates the float[] codec.
func NewFloat32ArrayCodec() *ArrayCodec {
	return newArrayCodec(NewFloat32Codec(), "[]float32", "Float32s", func(r *rowfile.RowReader) (any, error) { return r.Float32s() })
}

// NewFloat64ArrayCodec creates the double[] codec.
func NewFloat64ArrayCodec() *ArrayCodec {
	return newArrayCodec(NewFloat64Codec(), "[]float64", "Float64s", func(r *rowfile.RowReader) (any, error) { return r.Float64s() })
}

// NewStringArrayCodec creates the string[] codec. The decoded value holds
// string indices.
func NewStringArrayCodec() *ArrayCodec {
	return newArrayCodec(NewStringCodec(), "[]string", "Strings", func(r *rowfile.RowReader) (any, error) { return r.StringIndices() })
}

// Elem returns the element codec.
func (c *ArrayCodec) Elem() Codec {
	return c.elem
}

func (c *ArrayCodec) elements(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return splitElements(raw)
}

// Encode implements Codec.
func (c *ArrayCodec) Encode(ctx Context, w *binary.Writer, raw string) error {
	parts := c.elements(raw)
	mark := w.Len()
	w.WriteU32(uint32(len(parts)))
	for i, p := range parts {
		if err := c.elem.Encode(ctx, w, p); err != nil {
			w.Truncate(mark)
			return fmt.Errorf("%s element %d: %w", c.keyword, i, err)
		}
	}
	return nil
}

// Decode implements Codec.
func (c *ArrayCodec) Decode(r *rowfile.RowReader) (any, error) {
	return c.decode(r)
}

// InternStrings implements Interner when the element type is interned.
func (c *ArrayCodec) InternStrings(raw string) []string {
	in, ok := c.elem.(Interner)
	if !ok {
		return nil
	}
	var out []string
	for _, p := range c.elements(raw) {
		out = append(out, in.InternStrings(p)...)
	}
	return out
}
