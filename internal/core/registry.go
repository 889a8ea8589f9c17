package core

import (
	"iter"
	"sync/atomic"
)

// Registry indexes scanned installations by version. Every change publishes
// a complete new snapshot, so readers see either the old or the new index.
type Registry struct {
	current atomic.Pointer[registrySnapshot]
}

type registrySnapshot struct {
	entries []*Installation
	index   map[string]int
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.current.Store(&registrySnapshot{index: map[string]int{}})
	return r
}

// Rebuild replaces the whole index. When two installations carry the same
// version the later one wins and takes the earlier one's position.
func (r *Registry) Rebuild(installations []*Installation) {
	next := &registrySnapshot{index: map[string]int{}}
	for _, inst := range installations {
		next.put(inst)
	}
	r.current.Store(next)
}

// Fold publishes a snapshot holding the current entries plus inst, with the
// same last-write-wins rule as Rebuild.
func (r *Registry) Fold(inst *Installation) {
	if inst == nil {
		return
	}
	for {
		prev := r.current.Load()
		next := prev.clone()
		next.put(inst)
		if r.current.CompareAndSwap(prev, next) {
			return
		}
	}
}

// Lookup returns the greatest installation whose version matches requested.
func (r *Registry) Lookup(requested Version) (*Installation, bool) {
	snapshot := r.current.Load()
	idx := bestMatchIndex(requested, len(snapshot.entries), func(i int) Version {
		return snapshot.entries[i].Version()
	})
	if idx < 0 {
		return nil, false
	}
	return snapshot.entries[idx], true
}

// All yields the installations of the current snapshot in insertion order.
func (r *Registry) All() iter.Seq[*Installation] {
	snapshot := r.current.Load()
	return func(yield func(*Installation) bool) {
		for _, inst := range snapshot.entries {
			if !yield(inst) {
				return
			}
		}
	}
}

func (r *Registry) Len() int {
	return len(r.current.Load().entries)
}

func (s *registrySnapshot) put(inst *Installation) {
	key := inst.Version().String()
	if idx, ok := s.index[key]; ok {
		s.entries[idx] = inst
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, inst)
}

func (s *registrySnapshot) clone() *registrySnapshot {
	next := &registrySnapshot{
		entries: append([]*Installation(nil), s.entries...),
		index:   make(map[string]int, len(s.index)),
	}
	for key, idx := range s.index {
		next.index[key] = idx
	}
	return next
}
