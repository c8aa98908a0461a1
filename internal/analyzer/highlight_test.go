package analyzer

import (
	"reflect"
	"testing"

	"ucindex/internal/index"
)

func TestHighlightsClassDeclaration(t *testing.T) {
	spans := Highlights("class Pawn extends Actor;", index.NewTable())

	want := []Span{
		{Line: 0, Col: 6, Length: 4, Category: CategoryClass},
		{Line: 0, Col: 19, Length: 5, Category: CategoryClass},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("spans = %+v, want %+v", spans, want)
	}
}

func TestHighlightsFunctionAndVariable(t *testing.T) {
	doc := "class Bot;\nfunction Think()\nvar int Health;"
	spans := Highlights(doc, index.NewTable())

	want := []Span{
		{Line: 0, Col: 6, Length: 3, Category: CategoryClass},
		{Line: 1, Col: 9, Length: 5, Category: CategoryFunction},
		{Line: 2, Col: 8, Length: 6, Category: CategoryVariable},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("spans = %+v, want %+v", spans, want)
	}
}

func TestHighlightsKnownClassOccurrences(t *testing.T) {
	root := buildTree(t, map[string]string{
		"Core/Classes/Actor.uc": "class Actor;",
	})
	idx := index.New(testCfg(), nil)
	table, err := idx.Rebuild(root)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	spans := Highlights("    SpawnActor(Actor);", table)

	// Substring search has no word-boundary check: both the token inside
	// SpawnActor and the standalone Actor are reported.
	want := []Span{
		{Line: 0, Col: 9, Length: 5, Category: CategoryClass},
		{Line: 0, Col: 15, Length: 5, Category: CategoryClass},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("spans = %+v, want %+v", spans, want)
	}
}

func TestHighlightsVariableOccurrencesSameLine(t *testing.T) {
	spans := Highlights("var int Health; // Health regen", index.NewTable())

	// Declaration span at the first occurrence, occurrence span at the
	// second; the duplicate occurrence at the declaration column is
	// dropped.
	want := []Span{
		{Line: 0, Col: 8, Length: 6, Category: CategoryVariable},
		{Line: 0, Col: 19, Length: 6, Category: CategoryVariable},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("spans = %+v, want %+v", spans, want)
	}
}

func TestHighlightsVariableScopes(t *testing.T) {
	doc := "class Bot;\n" +
		"var int Health;\n" + // class-scoped from here
		"function Think()\n" + // function scope resets, class scope survives
		"Health = 100;\n" + // still highlighted via class scope
		"class Other;\n" + // both scopes reset
		"Health = 0;\n" // no longer known

	spans := Highlights(doc, index.NewTable())

	var line3, line5 []Span
	for _, s := range spans {
		switch s.Line {
		case 3:
			line3 = append(line3, s)
		case 5:
			line5 = append(line5, s)
		}
	}

	if len(line3) != 1 || line3[0].Category != CategoryVariable || line3[0].Col != 0 {
		t.Errorf("line 3 spans = %+v, want one variable span at col 0", line3)
	}
	if len(line5) != 0 {
		t.Errorf("line 5 spans = %+v, want none after class reset", line5)
	}
}

func TestHighlightsFunctionScopeReset(t *testing.T) {
	// A variable declared after a function belongs to both sets; the
	// next function declaration clears only the function-scoped set, so
	// the name stays highlighted through the class-scoped set.
	doc := "class Bot;\n" +
		"function A()\n" +
		"var int Ammo;\n" +
		"function B()\n" +
		"Ammo = 5;"

	spans := Highlights(doc, index.NewTable())

	var last []Span
	for _, s := range spans {
		if s.Line == 4 {
			last = append(last, s)
		}
	}
	if len(last) != 1 || last[0].Category != CategoryVariable {
		t.Errorf("line 4 spans = %+v, want one variable span", last)
	}
}

func TestHighlightsColumnOrderMerged(t *testing.T) {
	root := buildTree(t, map[string]string{
		"Core/Classes/Actor.uc": "class Actor;",
	})
	table, err := index.New(testCfg(), nil).Rebuild(root)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	// Declaration span (Target) sits after the class occurrence (Actor):
	// the merged stream must still be in ascending column order.
	spans := Highlights("var Actor Target;", table)

	want := []Span{
		{Line: 0, Col: 4, Length: 5, Category: CategoryClass},
		{Line: 0, Col: 10, Length: 6, Category: CategoryVariable},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("spans = %+v, want %+v", spans, want)
	}

	for i := 1; i < len(spans); i++ {
		if spans[i].Line == spans[i-1].Line && spans[i].Col <= spans[i-1].Col {
			t.Errorf("spans not in ascending column order: %+v", spans)
		}
	}
}

func TestHighlightsEmptyAndGarbage(t *testing.T) {
	if spans := Highlights("", index.NewTable()); len(spans) != 0 {
		t.Errorf("empty document produced %d spans", len(spans))
	}
	if spans := Highlights("\x00\xff\x00\nplain text", index.NewTable()); len(spans) != 0 {
		t.Errorf("garbage document produced %d spans", len(spans))
	}
}
