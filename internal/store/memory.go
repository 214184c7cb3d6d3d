// Package store holds the conversation memory: user identity, preferences, and
// a bounded history. Every mutation is written through to a Persister.
package store

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MaxHistory is the most entries the history keeps; older entries are evicted first.
const MaxHistory = 400

// TimeLayout is the timestamp format of history entries.
const TimeLayout = "2006-01-02 15:04:05"

// Role identifies who said a history entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one history line. Entries are never mutated after append.
type Entry struct {
	Time string `json:"time"`
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Record is the persisted shape of the memory.
type Record struct {
	UserName    *string        `json:"user_name"`
	Preferences map[string]any `json:"preferences"`
	History     []Entry        `json:"history"`
}

// NewRecord returns the empty default record.
func NewRecord() Record {
	return Record{Preferences: map[string]any{}, History: []Entry{}}
}

// normalize repairs a decoded record: nil collections become empty and the
// history is cut to the newest MaxHistory entries.
func (r Record) normalize() Record {
	if r.Preferences == nil {
		r.Preferences = map[string]any{}
	}
	if r.History == nil {
		r.History = []Entry{}
	}
	if len(r.History) > MaxHistory {
		r.History = r.History[len(r.History)-MaxHistory:]
	}
	return r
}

func (r Record) clone() Record {
	out := Record{
		Preferences: make(map[string]any, len(r.Preferences)),
		History:     append([]Entry{}, r.History...),
	}
	if r.UserName != nil {
		name := *r.UserName
		out.UserName = &name
	}
	for k, v := range r.Preferences {
		out.Preferences[k] = v
	}
	return out
}

// =============================================================================
// MEMORY (write-through)
// =============================================================================

// Memory is the in-process conversation memory. It is authoritative for the
// session: a failed save is logged and otherwise ignored.
type Memory struct {
	rec     Record
	backend Persister
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures a Memory.
type Option func(*Memory)

// WithClock sets the clock used to timestamp history entries.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// WithLogger sets the logger for absorbed load/save failures.
func WithLogger(l *zap.Logger) Option {
	return func(m *Memory) { m.logger = l }
}

// Open loads the record from backend. A missing or unreadable record falls
// back to the empty default; Open itself never fails.
func Open(backend Persister, opts ...Option) *Memory {
	m := &Memory{backend: backend, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}

	rec, err := backend.Load()
	switch {
	case err == nil:
		m.rec = rec.normalize()
		m.logger.Debug("memory loaded", zap.Int("history", len(m.rec.History)))
	case errors.Is(err, ErrNoRecord):
		m.rec = NewRecord()
		m.logger.Debug("no persisted memory, starting fresh")
	default:
		m.rec = NewRecord()
		m.logger.Warn("persisted memory unreadable, starting fresh", zap.Error(err))
	}
	return m
}

// UserName returns the stored name, or "" when unset.
func (m *Memory) UserName() string {
	if m.rec.UserName == nil {
		return ""
	}
	return *m.rec.UserName
}

// HasUserName reports whether a name is stored.
func (m *Memory) HasUserName() bool { return m.rec.UserName != nil }

// SetUserName stores name and persists.
func (m *Memory) SetUserName(name string) {
	m.rec.UserName = &name
	m.persist("set_user_name")
}

// Preference returns one preference value.
func (m *Memory) Preference(key string) (any, bool) {
	v, ok := m.rec.Preferences[key]
	return v, ok
}

// SetPreference stores a preference and persists.
func (m *Memory) SetPreference(key string, value any) {
	m.rec.Preferences[key] = value
	m.persist("set_preference")
}

// Append adds a history entry stamped with the current time, evicting the
// oldest entries beyond MaxHistory, and persists.
func (m *Memory) Append(role Role, text string) Entry {
	e := Entry{Time: m.now().Format(TimeLayout), Role: role, Text: text}
	m.rec.History = append(m.rec.History, e)
	if over := len(m.rec.History) - MaxHistory; over > 0 {
		m.rec.History = append([]Entry{}, m.rec.History[over:]...)
	}
	m.persist("append")
	return e
}

// History returns a copy of the history, oldest first.
func (m *Memory) History() []Entry {
	return append([]Entry{}, m.rec.History...)
}

// Recent returns a copy of the newest n entries.
func (m *Memory) Recent(n int) []Entry {
	h := m.rec.History
	if n < len(h) {
		h = h[len(h)-n:]
	}
	return append([]Entry{}, h...)
}

// Reset clears name, preferences, and history together and persists.
func (m *Memory) Reset() {
	m.rec = NewRecord()
	m.persist("reset")
}

// Snapshot returns a deep copy of the current record.
func (m *Memory) Snapshot() Record { return m.rec.clone() }

func (m *Memory) persist(op string) {
	if err := m.backend.Save(m.rec.clone()); err != nil {
		m.logger.Warn("failed to persist memory", zap.String("op", op), zap.Error(err))
	}
}

// FormatExport renders entries in the history export format,
// one "[time] ROLE: text" line per entry.
func FormatExport(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString("[" + e.Time + "] " + strings.ToUpper(string(e.Role)) + ": " + e.Text + "\n")
	}
	return sb.String()
}
