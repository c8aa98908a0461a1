package analyzer

import (
	"sort"

	"ucindex/internal/index"
	"ucindex/internal/uclang"
)

// Category is a semantic highlight category with a fixed token index.
type Category int

const (
	CategoryClass Category = iota
	CategoryFunction
	CategoryVariable
	CategoryParameter // reserved, unused by current logic
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryClass:
		return "class"
	case CategoryFunction:
		return "function"
	case CategoryVariable:
		return "variable"
	case CategoryParameter:
		return "parameter"
	}
	return "unknown"
}

// Span is one highlight token: line and start column are 0-indexed
// byte offsets, length is in bytes.
type Span struct {
	Line     int      `json:"line"`
	Col      int      `json:"col"`
	Length   int      `json:"length"`
	Category Category `json:"category"`
}

// Highlights scans the document and emits highlight spans in
// (line, column) order. Three sources feed each line:
//
//   - the declaration match itself (class name and optional parent as
//     class spans, function name as a function span, variable name as a
//     variable span);
//   - every non-overlapping occurrence of a class name from the symbol
//     table, as class spans;
//   - every non-overlapping occurrence of a variable declared earlier
//     in the document, as variable spans. Declared variables accumulate
//     in a class-scoped set cleared by the next class declaration and a
//     function-scoped set cleared by any class or function declaration.
//
// Occurrence search is plain substring matching with no word-boundary
// check, so a known name inside a longer token still produces a span.
// When two sources produce a span at the same column with the same
// length, only the first is kept (declarations before occurrences).
func Highlights(text string, table *index.Table) []Span {
	lines := uclang.SplitLines(text)
	classNames := table.ClassNames()

	classVars := make(map[string]struct{})
	funcVars := make(map[string]struct{})

	var spans []Span
	for i, line := range lines {
		var lineSpans []Span

		if m, ok := uclang.Classify(line); ok {
			switch m.Kind {
			case uclang.KindClass:
				lineSpans = append(lineSpans, Span{i, m.Col, len(m.Name), CategoryClass})
				if m.HasParent() {
					lineSpans = append(lineSpans, Span{i, m.ParentCol, len(m.Parent), CategoryClass})
				}
				classVars = make(map[string]struct{})
				funcVars = make(map[string]struct{})
			case uclang.KindFunction:
				lineSpans = append(lineSpans, Span{i, m.Col, len(m.Name), CategoryFunction})
				funcVars = make(map[string]struct{})
			case uclang.KindVariable:
				lineSpans = append(lineSpans, Span{i, m.Col, len(m.Name), CategoryVariable})
				classVars[m.Name] = struct{}{}
				funcVars[m.Name] = struct{}{}
			}
		}

		for _, name := range classNames {
			for _, col := range uclang.Occurrences(line, name) {
				lineSpans = append(lineSpans, Span{i, col, len(name), CategoryClass})
			}
		}

		for _, name := range scopedVars(classVars, funcVars) {
			for _, col := range uclang.Occurrences(line, name) {
				lineSpans = append(lineSpans, Span{i, col, len(name), CategoryVariable})
			}
		}

		spans = append(spans, mergeLineSpans(lineSpans)...)
	}

	return spans
}

// scopedVars returns the sorted union of the two in-scope variable sets.
func scopedVars(classVars, funcVars map[string]struct{}) []string {
	union := make(map[string]struct{}, len(classVars)+len(funcVars))
	for name := range classVars {
		union[name] = struct{}{}
	}
	for name := range funcVars {
		union[name] = struct{}{}
	}

	names := make([]string, 0, len(union))
	for name := range union {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mergeLineSpans orders one line's spans by column and drops exact
// positional duplicates, keeping the earliest-emitted span.
func mergeLineSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}

	type position struct{ col, length int }
	seen := make(map[position]bool, len(spans))
	merged := spans[:0]
	for _, s := range spans {
		pos := position{s.Col, s.Length}
		if seen[pos] {
			continue
		}
		seen[pos] = true
		merged = append(merged, s)
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Col < merged[b].Col
	})
	return merged
}
