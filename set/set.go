// Package set provides a small generic set type used throughout lrgen for
// index-valued and lookahead-valued attributes: FIRST/FOLLOW terminal sets,
// the LALR DR/Read/Follow lookahead sets, and LR(1) carried lookaheads.
package set

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Set is a collection of unique comparable values. The zero value is not
// usable; construct one with New.
type Set[E comparable] map[E]bool

// New returns an empty Set, optionally seeded with the elements of of.
func New[E comparable](of ...E) Set[E] {
	s := make(Set[E])
	for _, e := range of {
		s.Add(e)
	}
	return s
}

// Add adds element to the set. Has no effect if it is already present.
func (s Set[E]) Add(element E) {
	s[element] = true
}

// AddAll adds every element of o to s.
func (s Set[E]) AddAll(o Set[E]) {
	for e := range o {
		s.Add(e)
	}
}

// Remove removes element from the set. Has no effect if not present.
func (s Set[E]) Remove(element E) {
	delete(s, element)
}

// Has returns whether element is a member of s.
func (s Set[E]) Has(element E) bool {
	return s[element]
}

// Len returns the number of elements in s.
func (s Set[E]) Len() int {
	return len(s)
}

// Empty returns whether s has no elements.
func (s Set[E]) Empty() bool {
	return len(s) == 0
}

// Copy returns a shallow duplicate of s.
func (s Set[E]) Copy() Set[E] {
	newS := make(Set[E], len(s))
	for e := range s {
		newS[e] = true
	}
	return newS
}

// Union returns a new Set containing every element of s and o.
func (s Set[E]) Union(o Set[E]) Set[E] {
	newS := s.Copy()
	newS.AddAll(o)
	return newS
}

// Equal returns whether s and o contain exactly the same elements.
func (s Set[E]) Equal(o Set[E]) bool {
	if len(s) != len(o) {
		return false
	}
	for e := range s {
		if !o.Has(e) {
			return false
		}
	}
	return true
}

// Elements returns the members of s in no particular order.
func (s Set[E]) Elements() []E {
	elems := make([]E, 0, len(s))
	for e := range s {
		elems = append(elems, e)
	}
	return elems
}

// Sorted returns the members of s as a sorted, duplicate-free slice. Used
// wherever a flat per-variable FIRST/FOLLOW buffer must be produced in a
// deterministic order.
func Sorted[E cmp.Ordered](s Set[E]) []E {
	elems := make([]E, 0, len(s))
	for e := range s {
		elems = append(elems, e)
	}
	slices.Sort(elems)
	return elems
}

// String renders s as a brace-delimited, unordered list. Matches the
// teacher's ISet.String convention.
func (s Set[E]) String() string {
	parts := make([]string, 0, len(s))
	for e := range s {
		parts = append(parts, fmt.Sprintf("%v", e))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
