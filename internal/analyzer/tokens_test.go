package analyzer

import (
	"reflect"
	"testing"

	"ucindex/internal/index"
)

func TestEncodeTokensDeltas(t *testing.T) {
	spans := []Span{
		{Line: 0, Col: 6, Length: 4, Category: CategoryClass},
		{Line: 0, Col: 19, Length: 5, Category: CategoryClass},
		{Line: 2, Col: 8, Length: 6, Category: CategoryVariable},
		{Line: 2, Col: 20, Length: 5, Category: CategoryFunction},
	}

	got := EncodeTokens(spans)
	want := []uint32{
		0, 6, 4, 0, 0, // first token: absolute position
		0, 13, 5, 0, 0, // same line: delta from previous start
		2, 8, 6, 2, 0, // new line: start is absolute again
		0, 12, 5, 1, 0,
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("EncodeTokens() = %v, want %v", got, want)
	}
}

func TestEncodeTokensEmpty(t *testing.T) {
	if got := EncodeTokens(nil); len(got) != 0 {
		t.Errorf("EncodeTokens(nil) = %v, want empty", got)
	}
}

func TestEncodeTokensFromHighlights(t *testing.T) {
	doc := "class Pawn extends Actor;\nvar int Health;"
	data := EncodeTokens(Highlights(doc, index.NewTable()))

	if len(data)%5 != 0 {
		t.Fatalf("token stream length %d is not a multiple of 5", len(data))
	}

	// Re-walk the deltas and check they reproduce ascending positions.
	line, col := 0, 0
	for i := 0; i < len(data); i += 5 {
		if data[i] > 0 {
			line += int(data[i])
			col = int(data[i+1])
		} else {
			col += int(data[i+1])
		}
		if data[i+2] == 0 {
			t.Errorf("token %d has zero length", i/5)
		}
		if data[i+3] > 3 {
			t.Errorf("token %d has category index %d out of range", i/5, data[i+3])
		}
	}
	if line != 1 {
		t.Errorf("final line = %d, want 1", line)
	}
}

func TestTokenCategoriesOrder(t *testing.T) {
	want := []string{"class", "function", "variable", "parameter"}
	if got := TokenCategories(); !reflect.DeepEqual(got, want) {
		t.Errorf("TokenCategories() = %v, want %v", got, want)
	}
}
