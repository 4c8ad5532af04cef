package combiner

import (
	"errors"
	"fmt"
	"sort"
)

// ErrFinalized is returned by AddHeader once the canonical header has been built.
var ErrFinalized = errors.New("canonical header already finalized")

// HeaderMapper reconciles per-file column headers into one canonical ordering.
//
// Each registered header votes for its column names at the positions they
// occupy. Finalization walks positions in ascending order and, within a
// position, names in descending vote count (ties by name), placing every
// name exactly once. Files that mostly agree on column order therefore keep
// that order, and columns unique to one file slot in near their original
// position.
type HeaderMapper struct {
	counts map[int]map[string]int // slot -> column name -> occurrences
	slots  int                    // length of the longest header seen
	final  []string
	done   bool
}

func NewHeaderMapper() *HeaderMapper {
	return &HeaderMapper{counts: make(map[int]map[string]int)}
}

// AddHeader registers one file's header. Registration is rejected after
// finalization, since the canonical ordering is computed once and cached.
func (hm *HeaderMapper) AddHeader(header []string) error {
	if hm.done {
		return fmt.Errorf("add header: %w", ErrFinalized)
	}

	for slot, name := range header {
		if hm.counts[slot] == nil {
			hm.counts[slot] = make(map[string]int)
		}
		hm.counts[slot][name]++

		if slot+1 > hm.slots {
			hm.slots = slot + 1
		}
	}
	return nil
}

// Canonical finalizes and returns the reconciled column ordering. The first
// call computes it; subsequent calls return the cached result.
func (hm *HeaderMapper) Canonical() []string {
	if hm.done {
		return hm.final
	}
	hm.done = true
	hm.final = []string{}

	placed := make(map[string]bool)
	for slot := 0; slot < hm.slots; slot++ {
		names := make([]string, 0, len(hm.counts[slot]))
		for name := range hm.counts[slot] {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			ci, cj := hm.counts[slot][names[i]], hm.counts[slot][names[j]]
			if ci != cj {
				return ci > cj
			}
			return names[i] < names[j]
		})

		for _, name := range names {
			if placed[name] {
				continue
			}
			placed[name] = true
			hm.final = append(hm.final, name)
		}
	}
	return hm.final
}
