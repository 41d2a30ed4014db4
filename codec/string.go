package codec

import (
	"fmt"

	"github.com/wippyai/datatable/binary"
	"github.com/wippyai/datatable/rowfile"
)

// StringCodec encodes a cell as the int32 index of its interned value.
type StringCodec struct {
	info
}

// NewStringCodec creates the string codec.
func NewStringCodec() *StringCodec {
	return &StringCodec{info{
		keyword:     "string",
		goType:      "string",
		readMethod:  "String",
		typeStrings: []string{"string", "system.string"},
		system:      true,
	}}
}

// Encode implements Codec.
func (c *StringCodec) Encode(ctx Context, w *binary.Writer, raw string) error {
	idx, err := lookupString(ctx, raw)
	if err != nil {
		return err
	}
	w.WriteU32LE(uint32(idx))
	return nil
}

// Decode implements Codec. The value is the raw int32 index.
func (c *StringCodec) Decode(r *rowfile.RowReader) (any, error) {
	return r.StringIndex()
}

// InternStrings implements Interner.
func (c *StringCodec) InternStrings(raw string) []string {
	return []string{raw}
}

func lookupString(ctx Context, raw string) (int32, error) {
	if ctx == nil {
		return 0, fmt.Errorf("string: no string table for %q", raw)
	}
	idx, ok := ctx.StringIndex(raw)
	if !ok {
		return 0, fmt.Errorf("string: %q is not interned", raw)
	}
	return int32(idx), nil
}
