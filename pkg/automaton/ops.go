package automaton

import (
	"slices"
	"time"

	"github.com/rodneyxr/brics-automaton/pkg/observability"
)

// Intersecter is implemented by anything that can intersect itself with an
// acceptor and produce a plain automaton. Both [*Automaton] and transducers
// implement it, so a transducer can stand in wherever an intersection is
// expected.
type Intersecter interface {
	Intersect(acceptor *Automaton) *Automaton
}

var _ Intersecter = (*Automaton)(nil)

// Run reports whether s is accepted. Runes outside [MinChar, MaxChar] never
// match a transition. Run does not modify the automaton.
func (a *Automaton) Run(s string) bool {
	if a.isSingleton {
		return s == a.singleton
	}
	current := []StateID{a.initial}
	for _, c := range s {
		seen := make(map[StateID]bool, len(current))
		var next []StateID
		for _, id := range current {
			for _, t := range a.states[id].transitions {
				if t.Min <= c && c <= t.Max && !seen[t.To] {
					seen[t.To] = true
					next = append(next, t.To)
				}
			}
		}
		if len(next) == 0 {
			return false
		}
		current = next
	}
	for _, id := range current {
		if a.states[id].Accept {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the language is empty.
func (a *Automaton) IsEmpty() bool {
	if a.isSingleton {
		return false
	}
	for _, s := range a.reachable() {
		if s.Accept {
			return false
		}
	}
	return true
}

// IsEmptyString reports whether the language is exactly {""}.
func (a *Automaton) IsEmptyString() bool {
	if a.isSingleton {
		return a.singleton == ""
	}
	c := a.Clone()
	c.RemoveDeadTransitions()
	init := c.states[c.initial]
	return init.Accept && len(init.transitions) == 0
}

// liveStates marks the states among states from which an accepting state is
// reachable.
func (a *Automaton) liveStates(states []*State) []bool {
	reverse := make(map[StateID][]StateID, len(states))
	for _, s := range states {
		for _, t := range s.transitions {
			reverse[t.To] = append(reverse[t.To], s.id)
		}
	}
	live := make([]bool, len(a.states))
	var worklist []StateID
	for _, s := range states {
		if s.Accept {
			live[s.id] = true
			worklist = append(worklist, s.id)
		}
	}
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, p := range reverse[id] {
			if !live[p] {
				live[p] = true
				worklist = append(worklist, p)
			}
		}
	}
	return live
}

// RemoveDeadTransitions removes transitions to states that cannot reach an
// accepting state, merges adjacent intervals that share a destination, and
// compacts the arena to the reachable states. The initial state becomes 0.
// Handles obtained before the call are invalidated.
func (a *Automaton) RemoveDeadTransitions() {
	if a.isSingleton {
		return
	}
	states := a.reachable()
	live := a.liveStates(states)
	for _, s := range states {
		s.transitions = slices.DeleteFunc(s.transitions, func(t Transition) bool { return !live[t.To] })
		s.reduce()
	}
	a.compact()
}

// Reduce merges adjacent intervals that share a destination, in every
// reachable state.
func (a *Automaton) Reduce() {
	if a.isSingleton {
		return
	}
	for _, s := range a.reachable() {
		s.reduce()
	}
}

func (s *State) reduce() {
	if len(s.transitions) <= 1 {
		return
	}
	sorted := slices.Clone(s.transitions)
	slices.SortFunc(sorted, compareTransitionsToFirst)
	s.transitions = s.transitions[:0]
	cur := sorted[0]
	for _, t := range sorted[1:] {
		if t.To == cur.To && t.Min <= cur.Max+1 {
			if t.Max > cur.Max {
				cur.Max = t.Max
			}
			continue
		}
		s.transitions = append(s.transitions, cur)
		cur = t
	}
	s.transitions = append(s.transitions, cur)
}

// compact rebuilds the arena from the reachable states in breadth-first order.
func (a *Automaton) compact() {
	states := a.reachable()
	remap := make(map[StateID]StateID, len(states))
	for i, s := range states {
		remap[s.id] = StateID(i)
	}
	for i, s := range states {
		s.id = StateID(i)
		for j := range s.transitions {
			s.transitions[j].To = remap[s.transitions[j].To]
		}
	}
	a.states = states
	a.initial = 0
}

// Intersect returns an automaton accepting the intersection of the languages
// of a and b. Neither operand is modified.
func (a *Automaton) Intersect(b *Automaton) *Automaton {
	hooks := observability.Intersection()
	start := time.Now()
	if a.isSingleton {
		hooks.OnIntersectComplete("automaton", observability.IntersectStats{FastPath: "left-singleton"}, time.Since(start))
		if b.Run(a.singleton) {
			return a.CloneIfRequired()
		}
		return MakeEmpty()
	}
	if b.isSingleton {
		hooks.OnIntersectComplete("automaton", observability.IntersectStats{FastPath: "right-singleton"}, time.Since(start))
		if a.Run(b.singleton) {
			return b.CloneIfRequired()
		}
		return MakeEmpty()
	}
	if a == b {
		hooks.OnIntersectComplete("automaton", observability.IntersectStats{FastPath: "same-operand"}, time.Since(start))
		return a.CloneIfRequired()
	}

	t1 := a.SortedTransitions()
	t2 := b.SortedTransitions()
	hooks.OnIntersectStart("automaton", t1.Len(), t2.Len())

	type pair struct{ s1, s2 StateID }
	c := New()
	newstates := map[pair]StateID{{a.initial, b.initial}: c.initial}
	worklist := []pair{{a.initial, b.initial}}
	for len(worklist) > 0 {
		p := worklist[0]
		worklist = worklist[1:]
		r := c.states[newstates[p]]
		r.Accept = a.states[p.s1].Accept && b.states[p.s2].Accept
		row1, row2 := t1.Row(p.s1), t2.Row(p.s2)
		for n1, b2 := 0, 0; n1 < len(row1); n1++ {
			x := row1[n1]
			for b2 < len(row2) && row2[b2].Max < x.Min {
				b2++
			}
			for n2 := b2; n2 < len(row2) && x.Max >= row2[n2].Min; n2++ {
				y := row2[n2]
				if y.Max < x.Min {
					continue
				}
				q := pair{x.To, y.To}
				id, ok := newstates[q]
				if !ok {
					s := c.NewState()
					s.Accept = a.states[q.s1].Accept && b.states[q.s2].Accept
					id = s.id
					newstates[q] = id
					worklist = append(worklist, q)
				}
				r.AddTransition(NewTransition(max(x.Min, y.Min), min(x.Max, y.Max), id))
			}
		}
	}
	c.deterministic = a.deterministic && b.deterministic
	c.RemoveDeadTransitions()
	c.CheckMinimizeAlways()
	hooks.OnIntersectComplete("automaton", observability.IntersectStats{
		Pairs:        len(newstates),
		ResultStates: c.NumStates(),
	}, time.Since(start))
	return c
}

// FiniteStrings returns the accepted strings in sorted order, each once. It
// reports false if the language is infinite or has more than limit strings;
// a negative limit means no bound. Nondeterministic automata may reach the
// same string along several paths; it is counted once.
func (a *Automaton) FiniteStrings(limit int) ([]string, bool) {
	if a.isSingleton {
		if limit == 0 {
			return nil, false
		}
		return []string{a.singleton}, true
	}
	c := a.Clone()
	c.RemoveDeadTransitions()

	var out []string
	seen := make(map[string]struct{})
	onPath := make([]bool, len(c.states))
	var path []rune
	var walk func(s *State) bool
	walk = func(s *State) bool {
		if _, dup := seen[string(path)]; s.Accept && !dup {
			seen[string(path)] = struct{}{}
			out = append(out, string(path))
			if limit >= 0 && len(out) > limit {
				return false
			}
		}
		onPath[s.id] = true
		for _, t := range s.SortedTransitions() {
			if onPath[t.To] {
				return false
			}
			for ch := t.Min; ch <= t.Max; ch++ {
				path = append(path, ch)
				if !walk(c.states[t.To]) {
					return false
				}
				path = path[:len(path)-1]
			}
		}
		onPath[s.id] = false
		return true
	}
	if !walk(c.states[c.initial]) {
		return nil, false
	}
	slices.Sort(out)
	return out, true
}
