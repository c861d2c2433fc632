package fst

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
)

// Transducer is a finite state transducer. It owns an arena of states and a
// distinguished initial state; the set of states is whatever is reachable
// from the initial state.
//
// The zero value is not usable; create transducers with [New],
// [NewSingleton], [FromAutomaton] or one of the factories.
type Transducer struct {
	states        []*State
	initial       StateID
	deterministic bool

	singleton   string
	isSingleton bool
}

var _ automaton.Intersecter = (*Transducer)(nil)

// New returns a transducer with a single non-accepting initial state and no
// transitions. It is marked deterministic.
func New() *Transducer {
	t := &Transducer{deterministic: true}
	t.initial = t.NewState().id
	return t
}

// NewSingleton returns a transducer in singleton representation: it accepts
// exactly s and copies it to the output unchanged.
func NewSingleton(s string) *Transducer {
	return &Transducer{deterministic: true, singleton: s, isSingleton: true}
}

// FromAutomaton lifts every reachable state of a into a transducer state,
// preserving acceptance. Every transition becomes an epsilon transition:
// no output is synthesized, so callers walk the transitions afterwards and
// assign outputs with SetIdentical or SetOutput.
//
// A singleton automaton has no explicit states to lift; the result is the
// empty transducer from [New].
func FromAutomaton(a *automaton.Automaton) *Transducer {
	t := New()
	if a.IsSingleton() {
		return t
	}
	states := a.States()
	m := make(map[StateID]*State, len(states))
	for i, s := range states {
		p := t.states[t.initial]
		if i > 0 {
			p = t.NewState()
		}
		m[s.ID()] = p
	}
	for _, s := range states {
		p := m[s.ID()]
		p.Accept = s.Accept
		for _, tr := range s.Transitions() {
			p.AddTransition(NewEpsilonTransition(tr.Min, tr.Max, m[tr.To].id))
		}
	}
	t.deterministic = a.IsDeterministic()
	return t
}

// NewState allocates a fresh non-accepting state in the arena.
func (t *Transducer) NewState() *State {
	s := &State{id: StateID(len(t.states))}
	t.states = append(t.states, s)
	return s
}

// State returns the state for id. It panics on a handle outside the arena.
func (t *Transducer) State(id StateID) *State {
	if id < 0 || int(id) >= len(t.states) {
		panic(fmt.Sprintf("fst: state %d out of range (arena size %d)", id, len(t.states)))
	}
	return t.states[id]
}

// Initial returns the initial state, expanding a singleton first.
func (t *Transducer) Initial() *State {
	t.ExpandSingleton()
	return t.states[t.initial]
}

// IsDeterministic reports the deterministic flag.
func (t *Transducer) IsDeterministic() bool { return t.deterministic }

// SetDeterministic overrides the deterministic flag. Builders that add
// overlapping transitions to one state must clear it.
func (t *Transducer) SetDeterministic(d bool) { t.deterministic = d }

// IsSingleton reports whether the transducer is in singleton representation.
func (t *Transducer) IsSingleton() bool { return t.isSingleton }

// Singleton returns the string of a singleton transducer.
func (t *Transducer) Singleton() string { return t.singleton }

// ExpandSingleton replaces the singleton representation by an explicit chain
// of identical-output states.
func (t *Transducer) ExpandSingleton() {
	if !t.isSingleton {
		return
	}
	t.states = nil
	p := t.NewState()
	t.initial = p.id
	for _, c := range t.singleton {
		q := t.NewState()
		p.AddTransition(NewCharTransition(c, q.id))
		p = q
	}
	p.Accept = true
	t.isSingleton = false
	t.singleton = ""
}

// States returns the states reachable from the initial state in
// breadth-first order, initial first.
func (t *Transducer) States() []*State {
	t.ExpandSingleton()
	return t.reachable()
}

func (t *Transducer) reachable() []*State {
	visited := make([]bool, len(t.states))
	visited[t.initial] = true
	out := []*State{t.states[t.initial]}
	for i := 0; i < len(out); i++ {
		for _, tr := range out[i].transitions {
			if !visited[tr.To] {
				visited[tr.To] = true
				out = append(out, t.states[tr.To])
			}
		}
	}
	return out
}

// NumStates returns the number of reachable states.
func (t *Transducer) NumStates() int {
	if t.isSingleton {
		return len([]rune(t.singleton)) + 1
	}
	return len(t.reachable())
}

// IsEmpty reports whether no reachable state accepts.
func (t *Transducer) IsEmpty() bool {
	if t.isSingleton {
		return false
	}
	for _, s := range t.reachable() {
		if s.Accept {
			return false
		}
	}
	return true
}

// Run reports whether s is in the input language, ignoring output.
// Run does not modify the transducer.
func (t *Transducer) Run(s string) bool {
	if t.isSingleton {
		return s == t.singleton
	}
	current := []StateID{t.initial}
	for _, c := range s {
		seen := make(map[StateID]bool, len(current))
		var next []StateID
		for _, id := range current {
			for _, tr := range t.states[id].transitions {
				if tr.Min <= c && c <= tr.Max && !seen[tr.To] {
					seen[tr.To] = true
					next = append(next, tr.To)
				}
			}
		}
		if len(next) == 0 {
			return false
		}
		current = next
	}
	return slices.ContainsFunc(current, func(id StateID) bool { return t.states[id].Accept })
}

// SortedTransitions numbers the reachable states breadth-first and returns
// their transitions sorted by input interval. The transducer is not
// modified, except that a singleton is expanded.
func (t *Transducer) SortedTransitions() *automaton.Table[Transition] {
	states := t.States()
	ids := make([]StateID, len(states))
	for i, s := range states {
		ids[i] = s.id
	}
	return automaton.NewTable(len(t.states), ids, func(id StateID) []Transition {
		return t.states[id].SortedTransitions()
	})
}

// Clone returns a deep copy. Handles stay valid in the copy.
func (t *Transducer) Clone() *Transducer {
	c := &Transducer{
		states:        make([]*State, len(t.states)),
		initial:       t.initial,
		deterministic: t.deterministic,
		singleton:     t.singleton,
		isSingleton:   t.isSingleton,
	}
	for i, s := range t.states {
		c.states[i] = &State{id: s.id, Accept: s.Accept, transitions: slices.Clone(s.transitions)}
	}
	return c
}

// Outputs feeds s through the transducer and returns the sorted output
// strings. It reports false when the outputs are infinite or exceed limit
// (negative for no bound).
func (t *Transducer) Outputs(s string, limit int) ([]string, bool) {
	return t.Intersect(automaton.MakeString(s)).FiniteStrings(limit)
}

func (t *Transducer) String() string {
	if t.isSingleton {
		return fmt.Sprintf("singleton: %q\n", t.singleton)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "initial state: %d\n", t.initial)
	for _, s := range t.reachable() {
		b.WriteString(s.String())
	}
	return b.String()
}
