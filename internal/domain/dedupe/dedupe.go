// Package dedupe tracks menu names to spot duplicates inside one menu block.
package dedupe

import (
	"context"
	"strings"
)

// Deduper records seen menu names. The consuming client merges sub-menus
// that share a name, so duplicates are worth reporting.
type Deduper interface {
	// SeenAndRecord checks if name was seen and records it if not.
	// Returns true if name was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, name string) bool

	// Duplicates lists names seen more than once, in the order their first
	// repeat was recorded.
	Duplicates() []string

	Size() int
}

// inMemoryDeduper implements Deduper with a map. Not safe for concurrent use.
type inMemoryDeduper struct {
	seen       map[string]int
	duplicates []string
	fold       bool
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen: make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) key(name string) string {
	name = strings.TrimSpace(name)
	if d.fold {
		return strings.ToLower(name)
	}
	return name
}

// SeenAndRecord checks and records name.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, name string) bool {
	k := d.key(name)
	d.seen[k]++
	switch d.seen[k] {
	case 1:
		return false
	case 2:
		d.duplicates = append(d.duplicates, name)
	}
	return true
}

// Duplicates returns a copy of the repeated names.
func (d *inMemoryDeduper) Duplicates() []string {
	out := make([]string, len(d.duplicates))
	copy(out, d.duplicates)
	return out
}

// Size returns the number of distinct names recorded.
func (d *inMemoryDeduper) Size() int {
	return len(d.seen)
}
