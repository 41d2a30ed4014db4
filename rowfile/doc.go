// Package rowfile reads the files produced by the datatable compiler.
//
// A row file has no header. It is a sequence of records, each a LEB128 byte
// length followed by that many payload bytes:
//
//	record := varint(len) payload[len]
//
// The payload holds the encoded cells of one row in column order, comment
// columns excluded. RowReader decodes a payload field by field; the generated
// accessors call the RowReader method named by each column codec.
//
// String cells hold an int32 index into the table's string asset, a separate
// file loaded with ReadStrings:
//
//	asset := varint(count) { varint(len) utf8[len] }*
//
// Dictionary files produced by the dictionary processor use the same record
// framing with a payload of two length-prefixed strings (key, value).
package rowfile
