package subtitles

import "strings"

// Entry is one numbered, timed caption block.
//
// Start and End are carried verbatim from the source; they are never parsed
// into durations. Lines holds the raw caption lines in source order.
type Entry struct {
	Number int
	Start  string
	End    string
	Lines  []string
}

// NonEmptyLines returns the lines that contain at least one non-whitespace
// character, preserving order.
func (e *Entry) NonEmptyLines() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Lines))
	for _, line := range e.Lines {
		if isNonEmpty(line) {
			out = append(out, line)
		}
	}
	return out
}

// IsEmpty reports whether the entry has no meaningful caption text.
func (e *Entry) IsEmpty() bool {
	if e == nil {
		return true
	}
	for _, line := range e.Lines {
		if isNonEmpty(line) {
			return false
		}
	}
	return true
}

func (e *Entry) firstNonEmpty() (string, bool) {
	for _, line := range e.Lines {
		if isNonEmpty(line) {
			return line, true
		}
	}
	return "", false
}

func (e *Entry) lastNonEmpty() (string, bool) {
	for i := len(e.Lines) - 1; i >= 0; i-- {
		if isNonEmpty(e.Lines[i]) {
			return e.Lines[i], true
		}
	}
	return "", false
}

// dropFirstLine removes the first raw line, which may be whitespace-only even
// when the comparison matched a later non-empty line.
func (e *Entry) dropFirstLine() string {
	if len(e.Lines) == 0 {
		return ""
	}
	removed := e.Lines[0]
	if len(e.Lines) > 1 {
		e.Lines = e.Lines[1:]
	} else {
		e.Lines = nil
	}
	return removed
}

func isNonEmpty(line string) bool {
	return strings.TrimSpace(line) != ""
}
