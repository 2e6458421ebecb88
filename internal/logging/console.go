package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// ColorEnabled reports whether w is a terminal that should receive ANSI
// colour. NO_COLOR disables colour regardless of the destination.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

var levelStyles = []struct {
	min    slog.Level
	label  string
	colors text.Colors
}{
	{slog.LevelError, "ERROR", text.Colors{text.FgRed, text.Bold}},
	{slog.LevelWarn, "WARN", text.Colors{text.FgYellow}},
	{slog.LevelInfo, "INFO", text.Colors{text.FgCyan}},
	{slog.LevelDebug, "DEBUG", text.Colors{text.FgHiBlack}},
}

// consoleHandler renders one header line per record followed by indented
// fields:
//
//	2026-01-02 15:04:05 DEBUG [cleaner] run 1a2b3c4d pass 2 – dedupe pass complete
//	    - trimmed: 1
type consoleHandler struct {
	out    *lockedWriter
	level  slog.Level
	source bool
	color  bool
	prefix string
	bound  []boundAttr
}

// boundAttr is an attribute added through With, remembered with the group
// prefix active at the time.
type boundAttr struct {
	prefix string
	attr   slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	header := map[string]string{}
	var fields []string
	for _, ba := range h.bound {
		h.collect(header, &fields, ba.prefix, ba.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.collect(header, &fields, h.prefix, a)
		return true
	})

	var b strings.Builder
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(ts.Local().Format(time.DateTime))
	b.WriteByte(' ')
	b.WriteString(h.levelLabel(r.Level))
	if c := header[FieldComponent]; c != "" {
		fmt.Fprintf(&b, " [%s]", c)
	}
	if id := header[FieldRunID]; id != "" {
		b.WriteString(" run ")
		b.WriteString(id[:min(8, len(id))])
	}
	for _, key := range []string{FieldPass, FieldEntry} {
		if v := header[key]; v != "" {
			fmt.Fprintf(&b, " %s %s", key, v)
		}
	}
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = "(no message)"
	}
	b.WriteString(" – ")
	b.WriteString(msg)
	if h.source {
		if src := r.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	b.WriteByte('\n')
	for _, f := range fields {
		b.WriteString("    - ")
		b.WriteString(f)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(h.out, b.String())
	return err
}

// collect routes header keys into header and renders every other attribute
// as a "key: value" line. Later values of a header key replace earlier ones.
func (h *consoleHandler) collect(header map[string]string, fields *[]string, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		next := prefix
		if a.Key != "" {
			next = prefix + a.Key + "."
		}
		for _, member := range a.Value.Group() {
			h.collect(header, fields, next, member)
		}
		return
	}
	if prefix == "" {
		switch a.Key {
		case FieldComponent, FieldRunID, FieldPass, FieldEntry:
			header[a.Key] = a.Value.String()
			return
		}
	}
	*fields = append(*fields, prefix+a.Key+": "+renderValue(a.Value))
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.bound = make([]boundAttr, 0, len(h.bound)+len(attrs))
	clone.bound = append(clone.bound, h.bound...)
	for _, a := range attrs {
		clone.bound = append(clone.bound, boundAttr{prefix: h.prefix, attr: a})
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *consoleHandler) levelLabel(level slog.Level) string {
	style := levelStyles[len(levelStyles)-1]
	for _, s := range levelStyles {
		if level >= s.min {
			style = s
			break
		}
	}
	if !h.color {
		return style.label
	}
	return style.colors.Sprint(style.label)
}

func renderValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().Round(time.Microsecond).String()
	case slog.KindTime:
		return v.Time().Local().Format(time.DateTime)
	case slog.KindString:
		s = v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		return v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
