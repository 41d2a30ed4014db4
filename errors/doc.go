// Package errors provides structured error types for the datatable compiler.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the cell context needed to locate a problem in a source
// table: file name, raw row, raw column, column name, type keyword and raw value.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindCellEncoding).
//		File("Hero.txt").
//		Cell(7, 3).
//		Column("Speed", "float").
//		Value("fast").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Configuration("name row %d >= raw row count %d", 9, 4)
//	err := errors.OutOfBounds(errors.PhaseQuery, "raw column", 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
// Kinds map onto the compiler's failure policy: configuration, parse and
// unknown_type errors abort one table; cell_encoding errors omit one row;
// io errors are reported and never retried.
package errors
