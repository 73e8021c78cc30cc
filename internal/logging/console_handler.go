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

// prettyHandler renders one line per record:
//
//	2001-09-11T13:46:00Z INFO [curation] master video #12 (1f0e3c2a) – form saved key=value
//
// The component, entity, record and session attributes form the subject and
// are not repeated as key=value pairs unless the record is a debug line.
type prettyHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []slog.Attr
	groups    []string
	addSource bool
}

func newPrettyHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &prettyHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, record slog.Record) error {
	if record.Level < h.level.Level() {
		return nil
	}

	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	kvs := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	flattenAttrs(&kvs, h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&kvs, h.groups, attr)
		return true
	})

	var subj subject
	verbose := record.Level < slog.LevelInfo
	shown := make([]kv, 0, len(kvs))
	for _, kv := range kvs {
		if subj.take(kv) && !verbose {
			continue
		}
		if kv.key == FieldComponent {
			continue
		}
		shown = append(shown, kv)
	}

	var buf bytes.Buffer
	buf.Grow(128 + len(shown)*24)

	buf.WriteString(timestamp.UTC().Format(time.RFC3339))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(record.Level))
	if subj.component != "" {
		buf.WriteString(" [")
		buf.WriteString(subj.component)
		buf.WriteByte(']')
	}
	if s := subj.String(); s != "" {
		buf.WriteByte(' ')
		buf.WriteString(s)
	}
	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}
	buf.WriteString(" – ")
	buf.WriteString(message)

	if h.addSource {
		if src := record.Source(); src != nil {
			buf.WriteString(" [")
			buf.WriteString(filepath.Base(src.File))
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(src.Line))
			buf.WriteByte(']')
		}
	}

	for _, kv := range shown {
		if kv.key == "" {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(kv.key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(kv.value))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

// subject collects the attributes that name what a line is about.
type subject struct {
	component string
	entity    string
	recordID  string
	sessionID string
}

// take records kv if it is a subject attribute and reports whether it was.
// The first occurrence of each key wins.
func (s *subject) take(kv kv) bool {
	var dst *string
	switch kv.key {
	case FieldComponent:
		dst = &s.component
	case FieldEntity:
		dst = &s.entity
	case FieldRecordID:
		dst = &s.recordID
	case FieldSessionID:
		dst = &s.sessionID
	default:
		return false
	}
	if *dst == "" {
		*dst = attrString(kv.value)
	}
	return true
}

// String formats the subject as "news network #3 (1f0e3c2a)". A zero
// record id reads as "new news network".
func (s subject) String() string {
	var b strings.Builder
	entity := strings.TrimSpace(s.entity)
	id := strings.TrimSpace(s.recordID)
	switch {
	case entity != "" && (id == "" || id == "0"):
		b.WriteString("new ")
		b.WriteString(entity)
	case entity != "":
		b.WriteString(entity)
		b.WriteString(" #")
		b.WriteString(id)
	case id != "" && id != "0":
		b.WriteString("#")
		b.WriteString(id)
	}
	if session := strings.TrimSpace(s.sessionID); session != "" {
		if len(session) > 8 {
			session = session[:8]
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("(")
		b.WriteString(session)
		b.WriteString(")")
	}
	return b.String()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *prettyHandler) clone() *prettyHandler {
	return &prettyHandler{
		mu:        h.mu,
		writer:    h.writer,
		level:     h.level,
		addSource: h.addSource,
		attrs:     append([]slog.Attr(nil), h.attrs...),
		groups:    append([]string(nil), h.groups...),
	}
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
	}
	*dst = append(*dst, kv{key: key, value: attr.Value})
}
