// Package intern deduplicates string cell values into a shared table.
//
// A Builder tallies every occurrence of every string; Build orders the
// distinct values by occurrence count (most frequent first) and breaks ties
// by ordinal byte-wise comparison, so the most common strings get the
// smallest indices. The position of a value in the resulting Table is its
// runtime reference.
//
// The Table is not part of the row file. WriteTo produces the separate string
// asset that runtime readers load to resolve indices back to text.
package intern
