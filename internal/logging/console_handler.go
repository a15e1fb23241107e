package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one human-oriented line per record, followed by
// indented hint and impact lines for warnings:
//
//	14:02:11 WARN  loader: session document skipped document=2020-07-03.json reason="decode json" run=1a2b3c4d
//	               hint: fix or remove the document and rerun
//	               impact: session excluded from attendance and deliberation totals
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []slog.Attr
	groups    []string
	addSource bool
	color     bool
}

const (
	consoleTimeLayout = "15:04:05"
	runIDDisplayLen   = 8
)

var continuationIndent = strings.Repeat(" ", len(consoleTimeLayout)+7)

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource, color bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource, color: color}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// consoleLine collects the parts of a record before rendering.
type consoleLine struct {
	component string
	runID     string
	hint      string
	impact    string
	fields    []kv
}

func (h *consoleHandler) split(record slog.Record) consoleLine {
	all := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	flattenAttrs(&all, h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&all, h.groups, attr)
		return true
	})

	var line consoleLine
	for _, f := range all {
		switch f.key {
		case FieldComponent:
			if line.component == "" {
				line.component = attrString(f.value)
			}
		case FieldRunID:
			line.runID = attrString(f.value)
		case FieldErrorHint:
			line.hint = attrString(f.value)
		case FieldImpact:
			line.impact = attrString(f.value)
		case FieldDocument:
			f.value = slog.StringValue(filepath.Base(attrString(f.value)))
			line.fields = append(line.fields, f)
		default:
			line.fields = append(line.fields, f)
		}
	}
	return line
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if record.Level < h.level.Level() {
		return nil
	}
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	line := h.split(record)

	var buf bytes.Buffer
	buf.Grow(128 + len(line.fields)*24)

	buf.WriteString(timestamp.Format(consoleTimeLayout))
	buf.WriteByte(' ')
	buf.WriteString(h.levelLabel(record.Level))
	buf.WriteByte(' ')
	if line.component != "" {
		buf.WriteString(line.component)
		buf.WriteString(": ")
	}
	if msg := strings.TrimSpace(record.Message); msg != "" {
		buf.WriteString(msg)
	} else {
		buf.WriteString("(no message)")
	}
	if h.addSource {
		if src := record.Source(); src != nil {
			buf.WriteString(" [")
			buf.WriteString(filepath.Base(src.File))
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(src.Line))
			buf.WriteByte(']')
		}
	}
	for _, f := range line.fields {
		if f.key == "" {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(f.key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(f.value))
	}
	if line.runID != "" {
		buf.WriteString(" run=")
		buf.WriteString(shortRunID(line.runID))
	}
	buf.WriteByte('\n')

	if record.Level >= slog.LevelWarn {
		if line.hint != "" {
			buf.WriteString(continuationIndent + "hint: " + line.hint + "\n")
		}
		if line.impact != "" {
			buf.WriteString(continuationIndent + "impact: " + line.impact + "\n")
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *consoleHandler) clone() *consoleHandler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	clone.groups = append([]string(nil), h.groups...)
	return &clone
}

func shortRunID(id string) string {
	if len(id) > runIDDisplayLen {
		return id[:runIDDisplayLen]
	}
	return id
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGray   = "\x1b[90m"
)

// levelLabel pads the label to five columns so messages line up.
func (h *consoleHandler) levelLabel(level slog.Level) string {
	var label, color string
	switch {
	case level >= slog.LevelError:
		label, color = "ERROR", ansiRed
	case level >= slog.LevelWarn:
		label, color = "WARN ", ansiYellow
	case level >= slog.LevelInfo:
		label = "INFO "
	default:
		label, color = "DEBUG", ansiGray
	}
	if h.color && color != "" {
		return color + label + ansiReset
	}
	return label
}

type kv struct {
	key   string
	value slog.Value
}

func flattenAttrs(dst *[]kv, prefix []string, attrs []slog.Attr) {
	for _, attr := range attrs {
		flattenAttr(dst, prefix, attr)
	}
}

func flattenAttr(dst *[]kv, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = append(append([]string(nil), prefix...), attr.Key)
		}
		flattenAttrs(dst, next, attr.Value.Group())
		return
	}
	key := attr.Key
	if len(prefix) > 0 {
		key = strings.Join(append(append([]string(nil), prefix...), key), ".")
		key = strings.TrimSuffix(key, ".")
	}
	*dst = append(*dst, kv{key: key, value: attr.Value})
}
