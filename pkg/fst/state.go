package fst

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
)

// State is a transducer state: an acceptance flag and a set of outgoing
// transducer transitions. States are owned by the [Transducer] that
// allocated them.
type State struct {
	id          StateID
	Accept      bool
	transitions []Transition
}

// ID returns the handle of the state inside its transducer.
func (s *State) ID() StateID { return s.id }

// AddTransition adds t to the outgoing set and reports whether the set grew.
// A transition [Transition.Equal] to an existing one is not added again.
func (s *State) AddTransition(t Transition) bool {
	if slices.ContainsFunc(s.transitions, t.Equal) {
		return false
	}
	s.transitions = append(s.transitions, t)
	return true
}

// Transitions returns the outgoing transitions in insertion order. Elements
// may be modified in place to assign outputs (see [FromAutomaton]); the slice
// itself must not be resized.
func (s *State) Transitions() []Transition { return s.transitions }

// SortedTransitions returns a copy of the outgoing transitions ordered by
// input Min, then Max, then destination.
func (s *State) SortedTransitions() []Transition {
	ts := slices.Clone(s.transitions)
	slices.SortFunc(ts, func(a, b Transition) int {
		return automaton.CompareTransitions(a.Input(), b.Input())
	})
	return ts
}

// AddIdenticalAcceptAll adds one identical-output transition over the whole
// alphabet to to.
func (s *State) AddIdenticalAcceptAll(to *State) {
	s.AddTransition(NewTransition(automaton.MinChar, automaton.MaxChar, to.id))
}

// AddEpsilonAcceptAll adds one epsilon transition over the whole alphabet to to.
func (s *State) AddEpsilonAcceptAll(to *State) {
	s.AddTransition(NewEpsilonTransition(automaton.MinChar, automaton.MaxChar, to.id))
}

// AddIdenticalExclude adds identical-output transitions to to covering every
// character except exclude. When exclude is at an edge of the alphabet the
// empty side is omitted.
func (s *State) AddIdenticalExclude(exclude rune, to *State) {
	for _, r := range excludeRanges(exclude) {
		s.AddTransition(NewTransition(r[0], r[1], to.id))
	}
}

// AddEpsilonExclude adds epsilon transitions to to covering every character
// except exclude. When exclude is at an edge of the alphabet the empty side
// is omitted.
func (s *State) AddEpsilonExclude(exclude rune, to *State) {
	for _, r := range excludeRanges(exclude) {
		s.AddTransition(NewEpsilonTransition(r[0], r[1], to.id))
	}
}

// excludeRanges splits the alphabet around exclude, dropping empty halves.
func excludeRanges(exclude rune) [][2]rune {
	var out [][2]rune
	if exclude > automaton.MinChar {
		out = append(out, [2]rune{automaton.MinChar, min(exclude-1, automaton.MaxChar)})
	}
	if exclude < automaton.MaxChar {
		out = append(out, [2]rune{max(exclude+1, automaton.MinChar), automaton.MaxChar})
	}
	return out
}

func (s *State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "state %d", s.id)
	if s.Accept {
		b.WriteString(" [accept]")
	} else {
		b.WriteString(" [reject]")
	}
	b.WriteString(":\n")
	for _, t := range s.SortedTransitions() {
		fmt.Fprintf(&b, "  %s\n", t)
	}
	return b.String()
}
