// Package codec converts raw text cells into their binary encoding.
//
// Every column of a table is bound to one Codec, chosen by the keyword in the
// table's type row. A Codec knows its canonical keyword, the Go type that
// represents its values, and whether it marks the id column, a comment column
// or a system (built-in scalar) type.
//
// # Registry
//
// Registry maps lowercase type strings to codecs. It is immutable once built:
//
//	reg := codec.Default()              // built-in codecs
//	c, err := reg.Lookup("Vector3")     // case-insensitive
//
// Extend it by building a new registry:
//
//	reg, err := codec.Default().With(myCodec)
//
// # Encoding
//
// Encode parses one cell and appends its bytes to a binary.Writer, or returns
// an error and leaves the caller to decide on a fallback. The string codec does
// not write text: it resolves the cell through Context.StringIndex and writes
// the int32 index of the interned value.
//
// Codecs that contribute strings to the intern table implement Interner.
package codec
