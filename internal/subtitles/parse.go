package subtitles

import (
	"regexp"
	"strconv"
	"strings"
)

var timingPattern = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})$`)

// Parse extracts subtitle entries from SRT text in source order.
//
// A block is an integer line, a timing line and one or more caption lines
// ending at an empty line or end of input. Content that does not form a block
// is skipped without error. Sequence numbers are stored as found.
func Parse(content string) []*Entry {
	lines := splitLines(content)
	entries := make([]*Entry, 0, len(lines)/4)
	for i := 0; i < len(lines); {
		entry, next, ok := parseBlock(lines, i)
		if !ok {
			i++
			continue
		}
		entries = append(entries, entry)
		i = next
	}
	return entries
}

func splitLines(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}

// parseBlock tries to read a block starting at lines[start]. It returns the
// index of the first line after the block.
func parseBlock(lines []string, start int) (*Entry, int, bool) {
	number, ok := parseNumber(lines[start])
	if !ok {
		return nil, 0, false
	}
	i := skipBlank(lines, start+1)
	if i >= len(lines) {
		return nil, 0, false
	}
	startTS, endTS, ok := parseTiming(lines[i])
	if !ok {
		return nil, 0, false
	}
	i = skipEmpty(lines, i+1)
	if i >= len(lines) || headerAt(lines, i) {
		return nil, 0, false
	}

	text := make([]string, 0, 2)
	for ; i < len(lines) && lines[i] != ""; i++ {
		text = append(text, lines[i])
	}
	return &Entry{
		Number: number,
		Start:  startTS,
		End:    endTS,
		Lines:  text,
	}, i, true
}

func parseNumber(line string) (int, bool) {
	value := strings.TrimSpace(line)
	if value == "" {
		return 0, false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	// Numbers are renumbered later; an index too large for int still marks
	// a block header.
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, true
	}
	return n, true
}

func parseTiming(line string) (string, string, bool) {
	match := timingPattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// headerAt reports whether lines[i] opens a new block, meaning the block
// before it carried no caption text.
func headerAt(lines []string, i int) bool {
	if _, ok := parseNumber(lines[i]); !ok {
		return false
	}
	j := skipBlank(lines, i+1)
	if j >= len(lines) {
		return false
	}
	_, _, ok := parseTiming(lines[j])
	return ok
}

func skipBlank(lines []string, i int) int {
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	return i
}

func skipEmpty(lines []string, i int) int {
	for i < len(lines) && lines[i] == "" {
		i++
	}
	return i
}
