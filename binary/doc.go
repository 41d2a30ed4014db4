// Package binary provides the low-level byte encoding shared by the datatable
// compiler and its runtime reader.
//
// Integers that describe sizes, counts and ids use the 7-bit group variable
// length encoding (unsigned LEB128): the low seven bits of each byte carry
// data, least significant group first, and the high bit marks continuation.
// Fixed-width numbers are little-endian; floats are IEEE-754 bit patterns.
// Strings are a varint byte length followed by UTF-8 bytes.
//
// Writer appends to an in-memory buffer and never fails. Reader wraps an
// io.ByteReader, tracks its position and reports truncation as
// io.ErrUnexpectedEOF once at least one byte of a value has been consumed.
package binary
