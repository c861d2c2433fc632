package automaton

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Alphabet bounds. Characters are 16-bit code units stored in a rune.
const (
	// NullChar is reserved as the "no output" sentinel and never labels an edge.
	NullChar rune = 0
	// MinChar is the smallest character of the working alphabet.
	MinChar rune = 1
	// MaxChar is the largest character of the working alphabet.
	MaxChar rune = 0xFFFF
)

// StateID is a handle to a state inside the arena of the automaton that
// created it. Handles from different automata must not be mixed.
type StateID int

// NoState is the zero handle for "no state".
const NoState StateID = -1

// Transition is an edge labeled with the closed character interval [Min, Max].
//
// Transition is a value type: copying it clones the interval and keeps the
// same destination handle.
type Transition struct {
	Min rune
	Max rune
	To  StateID
}

// NewTransition returns a transition over [min, max] to the given state.
// An inverted interval is normalized by swapping its bounds.
func NewTransition(min, max rune, to StateID) Transition {
	if max < min {
		min, max = max, min
	}
	return Transition{Min: min, Max: max, To: to}
}

// NewCharTransition returns a transition over the single character c.
func NewCharTransition(c rune, to StateID) Transition {
	return Transition{Min: c, Max: c, To: to}
}

// Overlaps reports whether the closed intervals of t and o share at least
// one character. Intervals that touch at a boundary overlap.
func (t Transition) Overlaps(o Transition) bool {
	return t.Max >= o.Min && o.Max >= t.Min
}

// Label renders the input interval as "c" or "min-max".
func (t Transition) Label() string {
	if t.Min == t.Max {
		return CharString(t.Min)
	}
	return CharString(t.Min) + "-" + CharString(t.Max)
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -> %d", t.Label(), t.To)
}

// CharString renders a character for labels: printable ASCII other than
// quote and backslash is written as-is, anything else as \uXXXX.
func CharString(c rune) string {
	if c >= 0x21 && c <= 0x7e && c != '\\' && c != '"' {
		return string(c)
	}
	return fmt.Sprintf("\\u%04x", c)
}

// CompareTransitions orders transitions by Min, then Max, then destination.
// This is the order used by the sorted-transition table.
func CompareTransitions(a, b Transition) int {
	if c := cmp.Compare(a.Min, b.Min); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Max, b.Max); c != 0 {
		return c
	}
	return cmp.Compare(a.To, b.To)
}

// compareTransitionsToFirst orders by destination first; used when reducing
// adjacent intervals that share a destination.
func compareTransitionsToFirst(a, b Transition) int {
	if c := cmp.Compare(a.To, b.To); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Min, b.Min); c != 0 {
		return c
	}
	return cmp.Compare(a.Max, b.Max)
}

// State is a node of an automaton: an acceptance flag and a set of outgoing
// transitions. Transitions have set semantics; adding a duplicate is a no-op.
type State struct {
	id          StateID
	Accept      bool
	transitions []Transition
}

// ID returns the handle of the state inside its automaton.
func (s *State) ID() StateID { return s.id }

// AddTransition adds t to the outgoing set and reports whether the set grew.
func (s *State) AddTransition(t Transition) bool {
	if slices.Contains(s.transitions, t) {
		return false
	}
	s.transitions = append(s.transitions, t)
	return true
}

// Transitions returns the outgoing transitions in insertion order.
// The returned slice must not be modified.
func (s *State) Transitions() []Transition { return s.transitions }

// SortedTransitions returns a copy of the outgoing transitions ordered by
// [CompareTransitions].
func (s *State) SortedTransitions() []Transition {
	ts := slices.Clone(s.transitions)
	slices.SortFunc(ts, CompareTransitions)
	return ts
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

// Automaton is a finite-state recognizer over character intervals.
//
// The zero value is not usable; create automata with [New] or one of the
// Make* factories.
type Automaton struct {
	states        []*State
	initial       StateID
	deterministic bool

	singleton   string
	isSingleton bool
}

// New returns an automaton with a single non-accepting initial state and no
// transitions (the empty language). It is marked deterministic.
func New() *Automaton {
	a := &Automaton{deterministic: true}
	a.initial = a.NewState().id
	return a
}

// NewState allocates a fresh non-accepting state in the arena.
func (a *Automaton) NewState() *State {
	s := &State{id: StateID(len(a.states))}
	a.states = append(a.states, s)
	return s
}

// State returns the state for id. It panics if id does not belong to the
// arena, since a dangling handle means the automaton was built incorrectly.
func (a *Automaton) State(id StateID) *State {
	if id < 0 || int(id) >= len(a.states) {
		panic(fmt.Sprintf("automaton: state %d out of range (arena size %d)", id, len(a.states)))
	}
	return a.states[id]
}

// Initial returns the initial state, expanding a singleton first.
func (a *Automaton) Initial() *State {
	a.ExpandSingleton()
	return a.states[a.initial]
}

// SetInitial makes id the initial state.
func (a *Automaton) SetInitial(id StateID) {
	a.ExpandSingleton()
	a.initial = a.State(id).id
}

// IsDeterministic reports the deterministic flag. The flag is maintained by
// constructions, not re-verified.
func (a *Automaton) IsDeterministic() bool { return a.deterministic }

// SetDeterministic overrides the deterministic flag.
func (a *Automaton) SetDeterministic(d bool) { a.deterministic = d }

// IsSingleton reports whether the automaton is in singleton representation.
func (a *Automaton) IsSingleton() bool { return a.isSingleton }

// Singleton returns the accepted string of a singleton automaton.
// The result is meaningless unless IsSingleton is true.
func (a *Automaton) Singleton() string { return a.singleton }

// ExpandSingleton replaces the singleton representation by an explicit chain
// of states. It is a no-op for non-singleton automata.
func (a *Automaton) ExpandSingleton() {
	if !a.isSingleton {
		return
	}
	a.states = nil
	p := a.NewState()
	a.initial = p.id
	for _, c := range a.singleton {
		q := a.NewState()
		p.AddTransition(NewCharTransition(c, q.id))
		p = q
	}
	p.Accept = true
	a.deterministic = true
	a.isSingleton = false
	a.singleton = ""
}

// Expanded returns a or, when a is a singleton, an expanded copy of it.
// Unlike ExpandSingleton it never modifies a.
func (a *Automaton) Expanded() *Automaton {
	if !a.isSingleton {
		return a
	}
	c := a.Clone()
	c.ExpandSingleton()
	return c
}

// States returns the states reachable from the initial state in
// breadth-first order. The initial state is always first.
func (a *Automaton) States() []*State {
	a.ExpandSingleton()
	return a.reachable()
}

func (a *Automaton) reachable() []*State {
	visited := make([]bool, len(a.states))
	visited[a.initial] = true
	out := []*State{a.states[a.initial]}
	for i := 0; i < len(out); i++ {
		for _, t := range out[i].transitions {
			if !visited[t.To] {
				visited[t.To] = true
				out = append(out, a.states[t.To])
			}
		}
	}
	return out
}

// AcceptStates returns the reachable accepting states.
func (a *Automaton) AcceptStates() []*State {
	var out []*State
	for _, s := range a.States() {
		if s.Accept {
			out = append(out, s)
		}
	}
	return out
}

// NumStates returns the number of reachable states. For a singleton this is
// the length of the string (in characters) plus one.
func (a *Automaton) NumStates() int {
	if a.isSingleton {
		return utf8.RuneCountInString(a.singleton) + 1
	}
	return len(a.reachable())
}

// NumTransitions returns the number of transitions of reachable states.
func (a *Automaton) NumTransitions() int {
	if a.isSingleton {
		return utf8.RuneCountInString(a.singleton)
	}
	n := 0
	for _, s := range a.reachable() {
		n += len(s.transitions)
	}
	return n
}

// AddEpsilon connects src to dst by a virtual epsilon move: if dst accepts,
// src accepts; every transition of dst is copied onto src. dst must already
// carry the transitions that should be visible from src.
//
// AddEpsilon reports whether src changed, either by gaining a transition or
// by becoming accepting. The deterministic flag is left to the caller.
func (a *Automaton) AddEpsilon(src, dst StateID) bool {
	s, d := a.State(src), a.State(dst)
	changed := false
	if d.Accept && !s.Accept {
		s.Accept = true
		changed = true
	}
	for _, t := range d.transitions {
		if s.AddTransition(t) {
			changed = true
		}
	}
	return changed
}

// StartPoints returns the sorted set of interval start points over all
// reachable transitions, always including MinChar.
func (a *Automaton) StartPoints() []rune {
	return startPoints(a.States())
}

func startPoints(states []*State) []rune {
	set := map[rune]struct{}{MinChar: {}}
	for _, s := range states {
		for _, t := range s.transitions {
			set[t.Min] = struct{}{}
			if t.Max < MaxChar {
				set[t.Max+1] = struct{}{}
			}
		}
	}
	points := make([]rune, 0, len(set))
	for p := range set {
		points = append(points, p)
	}
	slices.Sort(points)
	return points
}

// Clone returns a deep copy. Handles stay valid in the copy.
func (a *Automaton) Clone() *Automaton {
	c := &Automaton{
		states:        make([]*State, len(a.states)),
		initial:       a.initial,
		deterministic: a.deterministic,
		singleton:     a.singleton,
		isSingleton:   a.isSingleton,
	}
	for i, s := range a.states {
		c.states[i] = &State{id: s.id, Accept: s.Accept, transitions: slices.Clone(s.transitions)}
	}
	return c
}

// CloneIfRequired returns a clone, or a itself when mutation is allowed by
// [SetAllowMutate].
func (a *Automaton) CloneIfRequired() *Automaton {
	if AllowMutate() {
		return a
	}
	return a.Clone()
}

func (a *Automaton) String() string {
	var b strings.Builder
	if a.isSingleton {
		fmt.Fprintf(&b, "singleton: %q\n", a.singleton)
		return b.String()
	}
	fmt.Fprintf(&b, "initial state: %d\n", a.initial)
	for _, s := range a.States() {
		b.WriteString(s.String())
	}
	return b.String()
}
