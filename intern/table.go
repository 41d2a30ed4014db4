package intern

import (
	"bufio"
	"cmp"
	"io"
	"slices"

	"github.com/wippyai/datatable/binary"
	"github.com/wippyai/datatable/errors"
)

// Builder collects string occurrences.
// The zero value is ready to use.
type Builder struct {
	counts map[string]int
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{counts: make(map[string]int)}
}

// Add records one occurrence of s.
func (b *Builder) Add(s string) {
	if b.counts == nil {
		b.counts = make(map[string]int)
	}
	b.counts[s]++
}

// Len returns the number of distinct strings seen so far.
func (b *Builder) Len() int {
	return len(b.counts)
}

// Build returns the ordered Table. The Builder may keep collecting afterwards;
// the returned Table does not change.
func (b *Builder) Build() *Table {
	entries := make([]Entry, 0, len(b.counts))
	for s, n := range b.counts {
		entries = append(entries, Entry{Value: s, Count: n})
	}
	slices.SortFunc(entries, compareEntries)

	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Value] = i
	}
	return &Table{entries: entries, index: index}
}

// count descending, then value ascending
func compareEntries(a, b Entry) int {
	if c := cmp.Compare(b.Count, a.Count); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// Entry is one distinct string and how many cells hold it.
type Entry struct {
	Value string
	Count int
}

// Table is an immutable ordered set of interned strings.
type Table struct {
	entries []Entry
	index   map[string]int
}

// Len returns the number of interned strings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// At returns the string with index i.
func (t *Table) At(i int) (string, error) {
	if i < 0 || i >= t.Len() {
		return "", errors.OutOfBounds(errors.PhaseQuery, "string index", i, t.Len())
	}
	return t.entries[i].Value, nil
}

// Index returns the index of s. The boolean is false when s was never interned.
func (t *Table) Index(s string) (int, bool) {
	if t == nil {
		return -1, false
	}
	i, ok := t.index[s]
	if !ok {
		return -1, false
	}
	return i, true
}

// Count returns how many cells held s.
func (t *Table) Count(s string) int {
	i, ok := t.Index(s)
	if !ok {
		return 0
	}
	return t.entries[i].Count
}

// Strings returns the interned values in index order.
func (t *Table) Strings() []string {
	out := make([]string, t.Len())
	for i := range out {
		out[i] = t.entries[i].Value
	}
	return out
}

// Entries returns a copy of the ordered entries.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return slices.Clone(t.entries)
}

// WriteTo writes the string asset: a LEB128 count followed by every value as a
// LEB128 byte length and its UTF-8 bytes, in index order.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	head := binary.AppendLEB128u(nil, uint32(t.Len()))
	m, err := bw.Write(head)
	n += int64(m)
	if err != nil {
		return n, err
	}

	var scratch []byte
	for i := 0; i < t.Len(); i++ {
		v := t.entries[i].Value
		scratch = binary.AppendLEB128u(scratch[:0], uint32(len(v)))
		m, err = bw.Write(scratch)
		n += int64(m)
		if err != nil {
			return n, err
		}
		m, err = bw.WriteString(v)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
