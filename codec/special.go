package codec

import (
	"errors"
	"strconv"
	"strings"

	"github.com/wippyai/datatable/binary"
	"github.com/wippyai/datatable/rowfile"
)

// IDCodec encodes the id column as a 7-bit encoded int32.
type IDCodec struct {
	info
}

// NewIDCodec creates the id pseudo-type codec.
func NewIDCodec() *IDCodec {
	return &IDCodec{info{
		keyword:     "id",
		goType:      "int32",
		readMethod:  "ID",
		typeStrings: []string{"id"},
	}}
}

// IsID implements Codec.
func (c *IDCodec) IsID() bool { return true }

// Encode implements Codec.
func (c *IDCodec) Encode(_ Context, w *binary.Writer, raw string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return err
	}
	w.WriteU32(uint32(int32(v)))
	return nil
}

// Decode implements Codec.
func (c *IDCodec) Decode(r *rowfile.RowReader) (any, error) {
	return r.ID()
}

// ErrCommentColumn is returned when a comment column is asked to encode.
var ErrCommentColumn = errors.New("codec: comment columns carry no data")

// CommentCodec marks a column that is excluded from the binary output.
type CommentCodec struct {
	info
}

// NewCommentCodec creates the comment pseudo-type codec.
func NewCommentCodec() *CommentCodec {
	return &CommentCodec{info{
		keyword:     "comment",
		typeStrings: []string{"", "#", "comment"},
	}}
}

// IsComment implements Codec.
func (c *CommentCodec) IsComment() bool { return true }

// Encode implements Codec. Comment columns are skipped before encoding, so
// reaching this is a caller bug.
func (c *CommentCodec) Encode(Context, *binary.Writer, string) error {
	return ErrCommentColumn
}

// Decode implements Codec.
func (c *CommentCodec) Decode(*rowfile.RowReader) (any, error) {
	return nil, ErrCommentColumn
}
