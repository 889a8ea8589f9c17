package types

import "sort"

// ComponentSet is an unordered set of components.
type ComponentSet map[Component]struct{}

func NewComponentSet(components ...Component) ComponentSet {
	set := ComponentSet{}
	for _, component := range components {
		set[component] = struct{}{}
	}
	return set
}

func (s ComponentSet) Has(component Component) bool {
	_, ok := s[component]
	return ok
}

func (s ComponentSet) Len() int {
	return len(s)
}

func (s ComponentSet) Add(component Component) {
	s[component] = struct{}{}
}

// Difference returns the components of s that are not in other.
func (s ComponentSet) Difference(other ComponentSet) ComponentSet {
	out := ComponentSet{}
	for component := range s {
		if !other.Has(component) {
			out[component] = struct{}{}
		}
	}
	return out
}

// Union returns a new set holding the members of both sets.
func (s ComponentSet) Union(other ComponentSet) ComponentSet {
	out := ComponentSet{}
	for component := range s {
		out[component] = struct{}{}
	}
	for component := range other {
		out[component] = struct{}{}
	}
	return out
}

func (s ComponentSet) Clone() ComponentSet {
	return s.Union(nil)
}

// Sorted returns the members in lexical order.
func (s ComponentSet) Sorted() []Component {
	out := make([]Component, 0, len(s))
	for component := range s {
		out = append(out, component)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})
	return out
}

func (s ComponentSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, 0, len(sorted))
	for _, component := range sorted {
		out = append(out, string(component))
	}
	return out
}
