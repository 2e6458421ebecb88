// Package subtitles parses SRT subtitle text, removes caption lines that are
// repeated across consecutive entries, and renders the cleaned result.
//
// Auto-generated captions commonly roll: the last line of one entry reappears
// as the first line of the next. Cleaner repeats a single comparison pass
// until the entry count settles (or, optionally, until nothing changes),
// drops entries left without text, and renumbers the survivors from 1.
//
// Entries keep their raw caption lines exactly as parsed. Comparisons and
// emptiness checks use the non-empty view of those lines, while trimming
// always removes the first raw line.
package subtitles
