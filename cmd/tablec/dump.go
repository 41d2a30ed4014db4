package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/datatable/processor"
	"github.com/wippyai/datatable/rowfile"
)

// dump prints every record of a row file. With the source table the cells
// are decoded per column; otherwise the payloads are printed in hex.
func dump(w io.Writer, dataFile, tableFile, stringsFile string) error {
	records, err := rowfile.ReadFile(dataFile)
	if err != nil {
		return err
	}

	var strs []string
	if stringsFile != "" {
		if strs, err = rowfile.ReadStringsFile(stringsFile); err != nil {
			return err
		}
	}

	var columns []processor.Column
	if tableFile != "" {
		p, err := processor.New(tableFile, processor.DefaultLayout())
		if err != nil {
			return err
		}
		for _, c := range p.Columns() {
			if !c.IsComment {
				columns = append(columns, c)
			}
		}
	}

	fmt.Fprintf(w, "%s: %d records\n", dataFile, len(records))
	for i, rec := range records {
		if len(columns) == 0 {
			fmt.Fprintf(w, "%4d  % x\n", i, rec)
			continue
		}
		r := rowfile.NewRowReader(rec, strs)
		cells := make([]string, 0, len(columns))
		for _, c := range columns {
			v, err := c.Codec.Decode(r)
			if err != nil {
				return fmt.Errorf("record %d column %s: %w", i, c.Name, err)
			}
			cells = append(cells, c.Name+"="+formatValue(v, c, strs))
		}
		if err := r.Done(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		fmt.Fprintf(w, "%4d  %s\n", i, strings.Join(cells, "  "))
	}
	return nil
}

// formatValue resolves string indices when the string asset is loaded.
func formatValue(v any, c processor.Column, strs []string) string {
	lookup := func(idx int32) string {
		if idx >= 0 && int(idx) < len(strs) {
			return fmt.Sprintf("%q", strs[idx])
		}
		return fmt.Sprintf("#%d", idx)
	}
	switch c.Codec.ReadMethod() {
	case "String":
		if idx, ok := v.(int32); ok {
			return lookup(idx)
		}
	case "Strings":
		if idxs, ok := v.([]int32); ok {
			out := make([]string, len(idxs))
			for i, idx := range idxs {
				out[i] = lookup(idx)
			}
			return "[" + strings.Join(out, " ") + "]"
		}
	}
	return fmt.Sprint(v)
}
