package subtitles

// Convergence selects when DeepClean stops repeating duplicate-removal passes.
type Convergence string

const (
	// ConvergeCount stops as soon as a pass leaves the entry count unchanged,
	// or after MaxPasses passes.
	ConvergeCount Convergence = "count"
	// ConvergeContent stops when a pass trims nothing, or after MaxPasses
	// passes.
	ConvergeContent Convergence = "content"
)

// DefaultMaxPasses caps the number of duplicate-removal passes.
const DefaultMaxPasses = 5

// Removal describes one caption line trimmed from an entry, or an entry
// dropped because it no longer carries text.
type Removal struct {
	Pass    int    `json:"pass"`
	Number  int    `json:"number"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Line    string `json:"line,omitempty"`
	Dropped bool   `json:"dropped"`
	Reason  string `json:"reason"`
}

// Removal reasons.
const (
	ReasonDuplicateLine = "duplicate_line"
	ReasonEmptyEntry    = "empty_entry"
	ReasonAdvertisement = "advertisement"
)

// RemoveDuplicates runs a single duplicate-removal pass.
//
// Each entry after the first is compared with its predecessor as that
// predecessor entered the pass. When the predecessor's last non-empty line
// equals the entry's first non-empty line, the entry's first raw line is
// removed; entries left without text are dropped. Entries are modified in
// place.
func RemoveDuplicates(entries []*Entry) []*Entry {
	var stats CleanStats
	return removeDuplicates(entries, 1, &stats)
}

// DeepClean repeats RemoveDuplicates until the entry count is stable or
// DefaultMaxPasses passes have run, drops entries without text, and renumbers
// the rest from 1.
func DeepClean(entries []*Entry) []*Entry {
	cleaned, _ := NewCleaner(DefaultOptions(), nil).DeepClean(entries)
	return cleaned
}

func removeDuplicates(entries []*Entry, pass int, stats *CleanStats) []*Entry {
	if len(entries) == 0 {
		return []*Entry{}
	}
	result := make([]*Entry, 0, len(entries))
	result = append(result, entries[0])

	prevLast, prevHasText := entries[0].lastNonEmpty()
	for _, current := range entries[1:] {
		// Snapshot before trimming so the next comparison sees this entry as
		// it entered the pass.
		currentLast, currentHasText := current.lastNonEmpty()
		currentFirst, _ := current.firstNonEmpty()

		if prevHasText && currentHasText && currentFirst == prevLast {
			removed := current.dropFirstLine()
			stats.TrimmedLines++
			stats.Removals = append(stats.Removals, Removal{
				Pass:   pass,
				Number: current.Number,
				Start:  current.Start,
				End:    current.End,
				Line:   removed,
				Reason: ReasonDuplicateLine,
			})
			if current.IsEmpty() {
				stats.DroppedEntries++
				stats.Removals = append(stats.Removals, Removal{
					Pass:    pass,
					Number:  current.Number,
					Start:   current.Start,
					End:     current.End,
					Dropped: true,
					Reason:  ReasonEmptyEntry,
				})
				prevLast, prevHasText = currentLast, currentHasText
				continue
			}
		}
		result = append(result, current)
		prevLast, prevHasText = currentLast, currentHasText
	}
	return result
}

func dropEmpty(entries []*Entry, stats *CleanStats) []*Entry {
	kept := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsEmpty() {
			stats.DroppedEntries++
			stats.Removals = append(stats.Removals, Removal{
				Number:  entry.Number,
				Start:   entry.Start,
				End:     entry.End,
				Dropped: true,
				Reason:  ReasonEmptyEntry,
			})
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

// Renumber assigns contiguous sequence numbers starting at 1 in list order.
func Renumber(entries []*Entry) {
	for i, entry := range entries {
		entry.Number = i + 1
	}
}
