package analyzer

import (
	"testing"

	"ucindex/internal/index"
)

func findItem(items []CompletionItem, label string) (CompletionItem, bool) {
	for _, item := range items {
		if item.Label == label {
			return item, true
		}
	}
	return CompletionItem{}, false
}

func TestCompletionsVocabulary(t *testing.T) {
	items := Completions(index.NewTable())

	kw, ok := findItem(items, "function")
	if !ok || kw.Category != CompletionKeyword {
		t.Errorf("expected keyword item for function, got %+v ok=%v", kw, ok)
	}
	ty, ok := findItem(items, "int")
	if !ok || ty.Category != CompletionType {
		t.Errorf("expected type item for int, got %+v ok=%v", ty, ok)
	}

	for _, item := range items {
		if item.Category == CompletionClass {
			t.Errorf("empty table produced class item %+v", item)
		}
	}
}

func TestCompletionsIncludeIndexedClasses(t *testing.T) {
	root := buildTree(t, map[string]string{
		"Core/Classes/Actor.uc":  "class Actor;",
		"Engine/Classes/Pawn.uc": "class Pawn extends Actor;",
	})
	idx := index.New(testCfg(), nil)
	table, err := idx.Rebuild(root)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	items := Completions(table)

	for _, name := range []string{"Actor", "Pawn"} {
		item, ok := findItem(items, name)
		if !ok || item.Category != CompletionClass {
			t.Errorf("expected class item for %s, got %+v ok=%v", name, item, ok)
		}
	}
}

func TestCompletionsFollowTableReplacement(t *testing.T) {
	full := buildTree(t, map[string]string{
		"Core/Classes/Actor.uc": "class Actor;",
	})
	empty := t.TempDir()

	idx := index.New(testCfg(), nil)
	if _, err := idx.Rebuild(full); err != nil {
		t.Fatalf("Rebuild(full) error = %v", err)
	}
	if _, ok := findItem(Completions(idx.Snapshot()), "Actor"); !ok {
		t.Fatal("Actor missing after full rebuild")
	}

	if _, err := idx.Rebuild(empty); err != nil {
		t.Fatalf("Rebuild(empty) error = %v", err)
	}
	if _, ok := findItem(Completions(idx.Snapshot()), "Actor"); ok {
		t.Error("Actor still offered after the table was replaced")
	}
}
