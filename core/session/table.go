package session

import (
	"sort"
	"strings"

	"github.com/nutshell-sh/nutshell/core/command"
)

// Table is a case-insensitive name table of commands. It does no
// internal locking, callers serialize access like the rest of the
// resolution machinery.
type Table[V command.Info] struct {
	entries map[string]V
}

// NewTable returns an empty table.
func NewTable[V command.Info]() *Table[V] {
	return &Table[V]{entries: make(map[string]V)}
}

// Get looks up a command by name.
func (t *Table[V]) Get(name string) (V, bool) {
	v, ok := t.entries[strings.ToLower(name)]
	return v, ok
}

// Set stores v under its own name, replacing any previous entry.
func (t *Table[V]) Set(v V) {
	t.entries[strings.ToLower(v.Name())] = v
}

// Remove deletes the named entry, reporting whether it existed.
func (t *Table[V]) Remove(name string) bool {
	key := strings.ToLower(name)
	if _, ok := t.entries[key]; !ok {
		return false
	}
	delete(t.entries, key)
	return true
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	return len(t.entries)
}

// All returns a fresh snapshot of the entries sorted by name. Stage
// enumerators hold on to these snapshots, so later table edits do not
// disturb an iteration already underway.
func (t *Table[V]) All() []V {
	out := make([]V, 0, len(t.entries))
	for _, v := range t.entries {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name()) < strings.ToLower(out[j].Name())
	})
	return out
}
