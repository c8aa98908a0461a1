package analyzer

import (
	"ucindex/internal/index"
	"ucindex/internal/uclang"
)

// CompletionCategory tags a completion item by its source.
type CompletionCategory string

const (
	CompletionKeyword CompletionCategory = "keyword"
	CompletionType    CompletionCategory = "type"
	CompletionClass   CompletionCategory = "class"
)

// CompletionItem is one entry of the completion vocabulary.
type CompletionItem struct {
	Label    string             `json:"label"`
	Category CompletionCategory `json:"category"`
}

// Completions enumerates the known identifier vocabulary: the fixed
// language keywords, the fixed built-in type names, and every class
// currently in the symbol table.
func Completions(table *index.Table) []CompletionItem {
	items := make([]CompletionItem, 0, table.Len()+48)

	for _, kw := range uclang.Keywords() {
		items = append(items, CompletionItem{Label: kw, Category: CompletionKeyword})
	}
	for _, ty := range uclang.Types() {
		items = append(items, CompletionItem{Label: ty, Category: CompletionType})
	}
	for _, name := range table.ClassNames() {
		items = append(items, CompletionItem{Label: name, Category: CompletionClass})
	}

	return items
}
