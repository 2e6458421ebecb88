package history

import "time"

// Run is one completed invocation of the cleaner.
type Run struct {
	ID                    int64         `json:"id"`
	RunID                 string        `json:"run_id"`
	StartedAt             time.Time     `json:"started_at"`
	InputPath             string        `json:"input_path"`
	OutputPath            string        `json:"output_path"`
	InputSHA256           string        `json:"input_sha256,omitempty"`
	Convergence           string        `json:"convergence"`
	OriginalEntries       int           `json:"original_entries"`
	CleanedEntries        int           `json:"cleaned_entries"`
	Passes                int           `json:"passes"`
	TrimmedLines          int           `json:"trimmed_lines"`
	DroppedEntries        int           `json:"dropped_entries"`
	RemovedAdvertisements int           `json:"removed_advertisements"`
	Duration              time.Duration `json:"duration_ns"`
}
