// Package uclang recognizes UnrealScript declaration lines.
//
// Recognition is deliberately line-level pattern matching, not grammar
// parsing: four anchored case-insensitive patterns are tried in priority
// order and the first match wins. The patterns know nothing about block
// comments, string literals or multi-line declarations, so a line that
// merely resembles a declaration inside a comment will still match.
package uclang

import (
	"regexp"
	"strings"
)

// Kind identifies the declaration recognized on a line.
type Kind string

const (
	KindClass    Kind = "class"
	KindFunction Kind = "function"
	KindVariable Kind = "variable"
	KindState    Kind = "state"
)

// Match describes a declaration recognized on a single source line.
// Columns are byte offsets into the line.
type Match struct {
	Kind      Kind
	Name      string
	Col       int
	Parent    string // parent class name, class declarations only
	ParentCol int
}

// HasParent reports whether a class match carried an inheritance clause.
func (m Match) HasParent() bool {
	return m.Parent != ""
}

// Declaration patterns, anchored to optional leading whitespace.
// Order matters: the first pattern to match a line wins and later
// patterns are not attempted.
var (
	classRe    = regexp.MustCompile(`(?i)^[ \t]*class\s+(\w+)(?:\s+(?:extends|based\s+on)\s+(\w+))?`)
	functionRe = regexp.MustCompile(`(?i)^[ \t]*function\s+(\w+)`)
	varRe      = regexp.MustCompile(`(?i)^[ \t]*var\s+(\w+)\s+(\w+)`)
	stateRe    = regexp.MustCompile(`(?i)^[ \t]*state\s+(\w+)`)
)

// Classify matches one source line against the declaration patterns.
// The second return value is false when the line is not a declaration,
// which is the normal outcome for most lines.
func Classify(line string) (Match, bool) {
	if m := classRe.FindStringSubmatchIndex(line); m != nil {
		match := Match{
			Kind: KindClass,
			Name: line[m[2]:m[3]],
			Col:  m[2],
		}
		if m[4] >= 0 {
			match.Parent = line[m[4]:m[5]]
			match.ParentCol = m[4]
		}
		return match, true
	}

	if m := functionRe.FindStringSubmatchIndex(line); m != nil {
		return Match{Kind: KindFunction, Name: line[m[2]:m[3]], Col: m[2]}, true
	}

	// The var pattern captures type then identifier; the type token is
	// discarded and only the trailing identifier is kept.
	if m := varRe.FindStringSubmatchIndex(line); m != nil {
		return Match{Kind: KindVariable, Name: line[m[4]:m[5]], Col: m[4]}, true
	}

	if m := stateRe.FindStringSubmatchIndex(line); m != nil {
		return Match{Kind: KindState, Name: line[m[2]:m[3]], Col: m[2]}, true
	}

	return Match{}, false
}

// Occurrences returns the byte columns of every non-overlapping,
// left-to-right occurrence of needle in line. Plain substring search:
// there is no word-boundary check, so a needle that is a substring of a
// longer token is still reported.
func Occurrences(line, needle string) []int {
	if needle == "" {
		return nil
	}

	var cols []int
	start := 0
	for {
		i := strings.Index(line[start:], needle)
		if i < 0 {
			break
		}
		cols = append(cols, start+i)
		start += i + len(needle)
	}
	return cols
}
