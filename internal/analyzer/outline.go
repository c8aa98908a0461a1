// Package analyzer derives per-document structure from source text:
// a flat outline, semantic highlight spans, an encodable token stream
// and completion items. It never fails: any input text, well-formed or
// not, yields a (possibly empty) result.
package analyzer

import "ucindex/internal/uclang"

// OutlineEntry is one outline row: a class, function or state
// declaration on a single line. Entries are flat, in line order;
// functions are not nested under their class.
type OutlineEntry struct {
	Name string      `json:"name"`
	Kind uclang.Kind `json:"kind"`
	Line int         `json:"line"` // 0-indexed
}

// Outline classifies every line of the document and returns entries
// for class, function and state declarations. Variable declarations do
// not appear in the outline.
func Outline(text string) []OutlineEntry {
	var entries []OutlineEntry

	for i, line := range uclang.SplitLines(text) {
		m, ok := uclang.Classify(line)
		if !ok || m.Kind == uclang.KindVariable {
			continue
		}
		entries = append(entries, OutlineEntry{
			Name: m.Name,
			Kind: m.Kind,
			Line: i,
		})
	}

	return entries
}
