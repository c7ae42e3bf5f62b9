package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded moment of a round.
type SimLogEntry struct {
	Tick     int
	Agent    string // label e.g. "H0", "C2", or "--" for global entries
	Category string // an EventKind, or "brain" / "move"
	Key      string // specific detail within the category
	Value    string // human-readable detail
	Tile     TilePos
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] C1   brain             state            chase → evade
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-17s %-16s %s",
		e.Tick, e.Agent, e.Category, e.Key, e.Value)
}

// SimLog collects structured entries for tests and the headless report.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. In verbose mode per-tick agent positions are
// recorded as well.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(e SimLogEntry) {
	sl.entries = append(sl.entries, e)
}

// AddVerbose records e only in verbose mode.
func (sl *SimLog) AddVerbose(e SimLogEntry) {
	if sl.verbose {
		sl.Add(e)
	}
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching category and key; empty matches anything.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAgent returns entries for one agent label.
func (sl *SimLog) FilterAgent(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Agent == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match category and key.
func (sl *SimLog) Count(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if an entry matches category, key and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log, one entry per line.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange returns the log restricted to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// recordEvent turns a bus event into a log entry.
func (r *Round) recordEvent(e Event) {
	label := "--"
	if a := r.AgentByID(e.AgentID); a != nil {
		label = a.Label()
	}
	var key, value string
	switch e.Kind {
	case EventDevicePlaced, EventDeviceDetonated:
		key = fmt.Sprintf("device_%d", e.DeviceID)
		value = fmt.Sprintf("(%d,%d)", e.Tile.Col, e.Tile.Row)
	case EventBlockDestroyed, EventPowerUpCollected:
		key = e.PowerUp.String()
		value = fmt.Sprintf("(%d,%d)", e.Tile.Col, e.Tile.Row)
	case EventAgentDamaged, EventAgentDied:
		key = "lives"
		value = fmt.Sprintf("%d", e.Lives)
	}
	r.SimLog.Add(SimLogEntry{
		Tick:     e.Tick,
		Agent:    label,
		Category: string(e.Kind),
		Key:      key,
		Value:    value,
		Tile:     e.Tile,
	})
}
