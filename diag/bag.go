package diag

import (
	"cmp"
	"slices"
	"sync"
)

// Bag accumulates diagnostics. It is safe for concurrent use.
type Bag struct {
	mu    sync.Mutex
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Add(ds ...Diagnostic) {
	if len(ds) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, ds...)
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// HasErrors returns true if any diagnostic is fatal.
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return HasErrors(b.items)
}

// Items returns a sorted copy of the diagnostics.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	res := slices.Clone(b.items)
	b.mu.Unlock()
	Sort(res)
	return res
}

func HasErrors(ds []Diagnostic) bool {
	for i := range ds {
		if ds[i].Fatal() {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by source, path and message so output is
// reproducible regardless of the order they were produced in.
func Sort(ds []Diagnostic) {
	slices.SortStableFunc(ds, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Source(), b.Source()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Message, b.Message); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Severity, a.Severity); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
}

// Filter returns the diagnostics of category c.
func Filter(ds []Diagnostic, c Category) []Diagnostic {
	var res []Diagnostic
	for i := range ds {
		if ds[i].Category == c {
			res = append(res, ds[i])
		}
	}
	return res
}
