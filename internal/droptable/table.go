// Package droptable implements the weighted random draw at the heart of
// case opening: an immutable per-case probability table and the selection
// of one skin plus a wear float from it.
package droptable

import (
	"fmt"

	"github.com/casefall/casefall/internal/domain"
)

// Entry is one (skin, drop weight) pair of a table before compilation.
type Entry struct {
	Skin   *domain.Skin
	Weight float64
}

// compiledEntry carries the cumulative weight up to and including the entry,
// so selection is a walk over half-open intervals partitioning [0, total).
type compiledEntry struct {
	skin  *domain.Skin
	cumul float64
}

// Table is an immutable compiled probability table. Safe for concurrent use.
type Table struct {
	entries []compiledEntry
	total   float64
	// index of the last entry with positive weight; zero-weight entries
	// must never be selected, even on a rounding overshoot
	last int
}

// New compiles a table from entries. Weights need not sum to any particular
// total; they are relative. The table must be non-empty, weights must be
// non-negative and at least one must be positive, otherwise the table is
// degenerate and the case must not be openable.
func New(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", domain.ErrEmptyDropTable)
	}

	t := &Table{entries: make([]compiledEntry, 0, len(entries))}
	for i, e := range entries {
		if e.Weight < 0 {
			return nil, fmt.Errorf("%w: negative weight %v for %q", domain.ErrEmptyDropTable, e.Weight, e.Skin.Name)
		}
		if e.Weight > 0 {
			t.last = i
		}
		t.total += e.Weight
		t.entries = append(t.entries, compiledEntry{skin: e.Skin, cumul: t.total})
	}

	if t.total <= 0 {
		return nil, fmt.Errorf("%w: total weight is zero", domain.ErrEmptyDropTable)
	}

	return t, nil
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// TotalWeight returns the cumulative weight of all entries.
func (t *Table) TotalWeight() float64 {
	return t.total
}

// Skins returns the skins of the table in table order.
func (t *Table) Skins() []*domain.Skin {
	skins := make([]*domain.Skin, len(t.entries))
	for i, e := range t.entries {
		skins[i] = e.skin
	}
	return skins
}

// Draw performs one authoritative draw: a weighted selection over the table
// followed by an independent uniform wear float in [0,1). Pure given the
// rnd stream; replaying the same stream reproduces the same result.
func (t *Table) Draw(rnd func() float64) (*domain.Skin, float64) {
	skin := t.Sample(rnd)
	return skin, rnd()
}

// Sample performs one weighted selection without drawing a wear float.
// Used both by Draw and by cosmetic reel decoy generation; callers building
// decoys must discard the result's significance, never treat it as an
// outcome.
func (t *Table) Sample(rnd func() float64) *domain.Skin {
	roll := rnd() * t.total

	// First entry whose cumulative weight reaches the roll wins; ties break
	// in table order. Tables hold at most a few dozen entries, a linear walk
	// is fine and keeps selection order-deterministic.
	for _, e := range t.entries {
		if roll <= e.cumul && e.cumul > 0 {
			return e.skin
		}
	}

	// rnd() near 1 can overshoot total after the multiply rounds up; land
	// on the last entry that actually has weight
	return t.entries[t.last].skin
}
