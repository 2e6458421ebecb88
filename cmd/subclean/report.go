package main

import (
	"io"
	"strconv"

	"subclean/internal/subtitles"
)

const maxReportTextWidth = 48

func renderRemovalReport(w io.Writer, removals []subtitles.Removal) string {
	if len(removals) == 0 {
		return "No lines removed."
	}
	rows := make([][]string, 0, len(removals))
	for _, removal := range removals {
		removed := removal.Line
		if removal.Dropped {
			removed = "(entry dropped)"
		}
		pass := "-"
		if removal.Pass > 0 {
			pass = strconv.Itoa(removal.Pass)
		}
		rows = append(rows, []string{
			pass,
			strconv.Itoa(removal.Number),
			removal.Start + " --> " + removal.End,
			truncate(removed, maxReportTextWidth),
			removal.Reason,
		})
	}
	return renderTable(w, []column{
		{title: "Pass", right: true},
		{title: "Entry", right: true},
		{title: "Timing"},
		{title: "Removed"},
		{title: "Reason"},
	}, rows)
}

func truncate(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}
