package automaton

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rodneyxr/brics-automaton/pkg/observability"
)

// Determinize replaces the automaton by an equivalent deterministic one using
// the subset construction over the interval start points. It is a no-op for
// automata already flagged deterministic and for singletons.
func (a *Automaton) Determinize() {
	if a.deterministic || a.isSingleton {
		return
	}
	start := time.Now()
	before := a.NumStates()
	a.determinize([]StateID{a.initial})
	observability.Automaton().OnDeterminize(before, a.NumStates(), time.Since(start))
}

// determinize runs the subset construction starting from the given set of
// states, which becomes the new initial state. Every state in the arena
// contributes start points, so initial need not be reachable from a.initial.
func (a *Automaton) determinize(initial []StateID) {
	points := startPoints(a.states)

	d := &Automaton{deterministic: true}
	sets := make(map[string]StateID)
	var worklist [][]StateID

	lookup := func(set []StateID) StateID {
		k := setKey(set)
		if id, ok := sets[k]; ok {
			return id
		}
		s := d.NewState()
		for _, q := range set {
			if a.states[q].Accept {
				s.Accept = true
				break
			}
		}
		sets[k] = s.id
		worklist = append(worklist, set)
		return s.id
	}

	init := slices.Clone(initial)
	slices.Sort(init)
	d.initial = lookup(slices.Compact(init))
	for len(worklist) > 0 {
		set := worklist[0]
		worklist = worklist[1:]
		r := d.states[sets[setKey(set)]]
		for n, point := range points {
			var dest []StateID
			for _, q := range set {
				for _, t := range a.states[q].transitions {
					if t.Min <= point && point <= t.Max && !slices.Contains(dest, t.To) {
						dest = append(dest, t.To)
					}
				}
			}
			if len(dest) == 0 {
				continue
			}
			slices.Sort(dest)
			hi := MaxChar
			if n+1 < len(points) {
				hi = points[n+1] - 1
			}
			r.AddTransition(NewTransition(point, hi, lookup(dest)))
		}
	}

	a.states = d.states
	a.initial = d.initial
	a.deterministic = true
	a.RemoveDeadTransitions()
}

func setKey(set []StateID) string {
	var b strings.Builder
	for i, id := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}
