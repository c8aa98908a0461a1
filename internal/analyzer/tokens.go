package analyzer

// EncodeTokens converts highlight spans into the delta-encoded token
// stream consumed by editor hosts: five uint32 values per span
// (deltaLine, deltaStart, length, category, modifiers). Category
// indices are fixed: class=0, function=1, variable=2, parameter=3.
// Modifiers are always zero. Spans must already be ordered by line and
// column, which is what Highlights produces.
func EncodeTokens(spans []Span) []uint32 {
	data := make([]uint32, 0, len(spans)*5)

	prevLine, prevCol := 0, 0
	for _, s := range spans {
		deltaLine := s.Line - prevLine
		deltaStart := s.Col
		if deltaLine == 0 {
			deltaStart = s.Col - prevCol
		}

		data = append(data,
			uint32(deltaLine),
			uint32(deltaStart),
			uint32(s.Length),
			uint32(s.Category),
			0,
		)
		prevLine, prevCol = s.Line, s.Col
	}

	return data
}

// TokenCategories returns the category legend in fixed index order.
func TokenCategories() []string {
	return []string{
		CategoryClass.String(),
		CategoryFunction.String(),
		CategoryVariable.String(),
		CategoryParameter.String(),
	}
}
