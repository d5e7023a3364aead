package parsefields

import "strings"

// Lines is the document's logical line sequence with bounds-checked
// lookahead.
type Lines []string

// SplitLines splits text on newlines.
func SplitLines(text string) Lines {
	if text == "" {
		return nil
	}
	return Lines(strings.Split(text, "\n"))
}

func (l Lines) Len() int { return len(l) }

// At returns line i and whether it exists.
func (l Lines) At(i int) (string, bool) {
	if i < 0 || i >= len(l) {
		return "", false
	}
	return l[i], true
}
