// Package datatable compiles tab-separated spreadsheet exports into compact
// binary row files.
//
// A table is a text grid whose leading rows describe the columns (name, type,
// optional default value, optional comment) and whose remaining rows carry
// data. Every data row becomes one length-prefixed record; string cells are
// interned into a shared table and stored as indices.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	datatable/           Root package with the single-table Compile entry point
//	├── processor/       Table parsing, validation, interning and row assembly
//	├── codec/           Per-type cell codecs and the type keyword registry
//	├── intern/          Frequency-ordered string intern table
//	├── binary/          LEB128 and little-endian primitives
//	├── rowfile/         Runtime reader for row, string and dictionary files
//	├── dictionary/      Key/value dictionary compiler
//	├── codegen/         Default code emission hook producing Go row types
//	├── errors/          Structured error types
//	├── internal/        Project configuration and the batch driver
//	└── cmd/tablec/      Command line compiler
//
// # Quick Start
//
// Compile one table with the default layout:
//
//	res, err := datatable.Compile("Hero.txt", datatable.Outputs{
//	    Data:    "Hero.bytes",
//	    Strings: "Hero.strings",
//	}, processor.DefaultLayout())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Stats.Written, "rows")
//
// Read it back at runtime:
//
//	strs, _ := rowfile.ReadStringsFile("Hero.strings")
//	records, _ := rowfile.ReadFile("Hero.bytes")
//	for _, rec := range records {
//	    r := rowfile.NewRowReader(rec, strs)
//	    id, _ := r.ID()
//	    name, _ := r.String()
//	    _ = id
//	    _ = name
//	}
//
// # Failure Handling
//
// Configuration, parse and unknown type errors abort a table. A cell that
// fails to encode falls back to its column default, or drops the row. A
// failed compile never leaves an output file behind.
package datatable
