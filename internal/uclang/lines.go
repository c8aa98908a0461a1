package uclang

import "strings"

// SplitLines splits source text into lines regardless of line-ending
// convention (LF, CRLF or bare CR).
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
