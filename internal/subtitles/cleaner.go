package subtitles

import (
	"log/slog"
	"regexp"
	"strings"

	"subclean/internal/logging"
)

var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

// Options controls the cleaning pipeline.
type Options struct {
	MaxPasses           int
	Convergence         Convergence
	StripAdvertisements bool
}

// DefaultOptions returns the standard five-pass, count-converging pipeline
// with advertisement stripping disabled.
func DefaultOptions() Options {
	return Options{
		MaxPasses:   DefaultMaxPasses,
		Convergence: ConvergeCount,
	}
}

// CleanStats reports the effects of subtitle cleanup operations.
type CleanStats struct {
	OriginalEntries       int       `json:"original_entries"`
	CleanedEntries        int       `json:"cleaned_entries"`
	Passes                int       `json:"passes"`
	TrimmedLines          int       `json:"trimmed_lines"`
	DroppedEntries        int       `json:"dropped_entries"`
	RemovedAdvertisements int       `json:"removed_advertisements"`
	Removals              []Removal `json:"removals,omitempty"`
}

// Cleaner runs the parse, dedupe, renumber and format pipeline.
type Cleaner struct {
	opts   Options
	logger *slog.Logger
}

// NewCleaner builds a cleaner. Zero option fields fall back to
// DefaultOptions; a nil logger discards output.
func NewCleaner(opts Options, logger *slog.Logger) *Cleaner {
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = DefaultMaxPasses
	}
	if opts.Convergence == "" {
		opts.Convergence = ConvergeCount
	}
	return &Cleaner{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "cleaner"),
	}
}

// Clean decodes raw SRT bytes, removes duplicated lines and returns the
// re-serialized text with statistics. OriginalEntries counts every parsed
// block, including any removed as advertisements.
func (c *Cleaner) Clean(raw []byte) (string, CleanStats) {
	entries := Parse(Decode(raw))
	original := len(entries)
	c.logger.Debug("parsed subtitle entries", logging.Int("entries", original), logging.Int("bytes", len(raw)))

	var ads []Removal
	if c.opts.StripAdvertisements {
		entries, ads = stripAdvertisements(entries)
	}

	cleaned, stats := c.DeepClean(entries)
	stats.OriginalEntries = original
	stats.RemovedAdvertisements = len(ads)
	stats.Removals = append(ads, stats.Removals...)

	c.logger.Info("subtitles cleaned",
		logging.Int("original_entries", stats.OriginalEntries),
		logging.Int("cleaned_entries", stats.CleanedEntries),
		logging.Int("trimmed_lines", stats.TrimmedLines),
		logging.Int("dropped_entries", stats.DroppedEntries),
		logging.Int("passes", stats.Passes),
	)
	return Format(cleaned), stats
}

// DeepClean repeats duplicate-removal passes according to the cleaner's
// convergence mode, never exceeding MaxPasses, drops entries left without text and renumbers the rest.
// Entries are modified in place.
func (c *Cleaner) DeepClean(entries []*Entry) ([]*Entry, CleanStats) {
	stats := CleanStats{OriginalEntries: len(entries)}
	cleaned := entries
	for {
		if stats.Passes >= c.opts.MaxPasses {
			c.logger.Debug("pass limit reached", logging.Int("max_passes", c.opts.MaxPasses))
			break
		}
		before := len(cleaned)
		trimmedBefore := stats.TrimmedLines
		removalsBefore := len(stats.Removals)
		cleaned = removeDuplicates(cleaned, stats.Passes+1, &stats)
		stats.Passes++
		for _, removal := range stats.Removals[removalsBefore:] {
			c.logger.Debug("duplicate removed",
				logging.Pass(removal.Pass),
				logging.Entry(removal.Number),
				logging.String("line", removal.Line),
				logging.String("reason", removal.Reason),
			)
		}
		c.logger.Debug("dedupe pass complete",
			logging.Pass(stats.Passes),
			logging.Int("entries_before", before),
			logging.Int("entries_after", len(cleaned)),
			logging.Int("trimmed", stats.TrimmedLines-trimmedBefore),
		)
		if c.opts.Convergence == ConvergeContent {
			if stats.TrimmedLines == trimmedBefore {
				break
			}
			continue
		}
		if len(cleaned) == before {
			break
		}
	}

	cleaned = dropEmpty(cleaned, &stats)
	Renumber(cleaned)
	stats.CleanedEntries = len(cleaned)
	return cleaned, stats
}

// Clean runs the default pipeline over raw SRT bytes.
func Clean(raw []byte) (string, CleanStats) {
	return NewCleaner(DefaultOptions(), nil).Clean(raw)
}

func stripAdvertisements(entries []*Entry) ([]*Entry, []Removal) {
	kept := make([]*Entry, 0, len(entries))
	var removed []Removal
	for _, entry := range entries {
		if entryIsAdvertisement(entry) {
			removed = append(removed, Removal{
				Number:  entry.Number,
				Start:   entry.Start,
				End:     entry.End,
				Line:    strings.Join(entry.NonEmptyLines(), " / "),
				Dropped: true,
				Reason:  ReasonAdvertisement,
			})
			continue
		}
		kept = append(kept, entry)
	}
	return kept, removed
}

func entryIsAdvertisement(entry *Entry) bool {
	lines := entry.NonEmptyLines()
	if len(lines) == 0 {
		return false
	}
	trimmed := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed = append(trimmed, strings.TrimSpace(line))
	}
	payload := strings.ToLower(strings.Join(trimmed, " "))
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}
