package automaton

import "slices"

// MakeEmpty returns a new deterministic automaton with the empty language.
func MakeEmpty() *Automaton {
	return New()
}

// MakeEmptyString returns a new deterministic automaton that accepts only the
// empty string.
func MakeEmptyString() *Automaton {
	a := New()
	a.Initial().Accept = true
	return a
}

// MakeString returns an automaton accepting exactly s, in singleton
// representation.
func MakeString(s string) *Automaton {
	return &Automaton{
		deterministic: true,
		singleton:     s,
		isSingleton:   true,
	}
}

// MakeStringSet returns a deterministic automaton accepting exactly the given
// strings. The states form a trie; duplicates are ignored.
func MakeStringSet(strs ...string) *Automaton {
	a := New()
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	for _, s := range slices.Compact(sorted) {
		p := a.states[a.initial]
		for _, c := range s {
			next := NoState
			for _, t := range p.transitions {
				if t.Min == c && t.Max == c {
					next = t.To
					break
				}
			}
			if next == NoState {
				next = a.NewState().id
				p.AddTransition(NewCharTransition(c, next))
			}
			p = a.states[next]
		}
		p.Accept = true
	}
	return a
}

// MakeChar returns an automaton accepting the single character c.
func MakeChar(c rune) *Automaton {
	return MakeCharRange(c, c)
}

// MakeCharRange returns an automaton accepting any single character in
// [min, max]. An inverted interval is normalized.
func MakeCharRange(min, max rune) *Automaton {
	a := New()
	s := a.NewState()
	s.Accept = true
	a.Initial().AddTransition(NewTransition(min, max, s.id))
	return a
}

// MakeAnyChar returns an automaton accepting any single character of the
// working alphabet.
func MakeAnyChar() *Automaton {
	return MakeCharRange(MinChar, MaxChar)
}

// MakeAnyString returns an automaton accepting every string over the working
// alphabet.
func MakeAnyString() *Automaton {
	a := New()
	s := a.Initial()
	s.Accept = true
	s.AddTransition(NewTransition(MinChar, MaxChar, s.id))
	return a
}
