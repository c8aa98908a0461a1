// Package index builds and owns the global UnrealScript symbol table.
//
// The table is produced by a full scan of a package tree and replaced
// wholesale on every rebuild. There is no merging and no incremental
// update: a rebuild either publishes a complete new table or leaves the
// previous one in place.
package index

import "sort"

// ClassRecord holds one indexed class: its owning package and the
// declared member names in file declaration order. Duplicates in the
// member lists are permitted and preserved. Records are never mutated
// after the scan that created them completes.
type ClassRecord struct {
	Package   string
	Name      string
	Functions []string
	Variables []string
}

// Table maps class name to its record. A Table is populated by exactly
// one scan and is read-only afterwards, so concurrent readers need no
// locking.
type Table struct {
	classes map[string]*ClassRecord
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{classes: make(map[string]*ClassRecord)}
}

// put inserts or overwrites a record. Last write wins on name collision.
func (t *Table) put(rec *ClassRecord) {
	t.classes[rec.Name] = rec
}

// Class returns the record for a class name.
func (t *Table) Class(name string) (*ClassRecord, bool) {
	rec, ok := t.classes[name]
	return rec, ok
}

// Len returns the number of distinct classes in the table.
func (t *Table) Len() int {
	return len(t.classes)
}

// ClassNames returns all class names in sorted order.
func (t *Table) ClassNames() []string {
	names := make([]string, 0, len(t.classes))
	for name := range t.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classes returns all records sorted by class name.
func (t *Table) Classes() []*ClassRecord {
	records := make([]*ClassRecord, 0, len(t.classes))
	for _, name := range t.ClassNames() {
		records = append(records, t.classes[name])
	}
	return records
}
