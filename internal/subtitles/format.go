package subtitles

import (
	"strconv"
	"strings"
)

// Format renders entries as SRT text. Each block is followed by a blank
// separator and the blocks are joined with newlines, so non-empty output ends
// with a single newline after the last caption line. Timestamps and caption
// lines are written exactly as stored.
func Format(entries []*Entry) string {
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries)*4)
	for _, entry := range entries {
		lines = append(lines, strconv.Itoa(entry.Number))
		lines = append(lines, entry.Start+" --> "+entry.End)
		lines = append(lines, entry.Lines...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
