package automaton

import (
	"strconv"
	"strings"
	"time"

	"github.com/rodneyxr/brics-automaton/pkg/observability"
)

// Minimize replaces the automaton by the minimal deterministic automaton for
// the same language, using the algorithm selected by [SetMinimization].
func (a *Automaton) Minimize() {
	if a.isSingleton {
		return
	}
	start := time.Now()
	before := a.NumStates()
	algo := CurrentMinimization()
	switch algo {
	case MinimizeBrzozowski:
		a.minimizeBrzozowski()
	default:
		a.minimizeMoore()
	}
	observability.Automaton().OnMinimize(algo.String(), before, a.NumStates(), time.Since(start))
}

// CheckMinimizeAlways minimizes the automaton if the minimize-always policy
// is enabled.
func (a *Automaton) CheckMinimizeAlways() {
	if MinimizeAlways() {
		a.Minimize()
	}
}

func (a *Automaton) minimizeMoore() {
	// The deterministic flag is optimistic after some constructions; the
	// partition refinement below needs the real thing.
	if !a.hasDeterministicTransitions() {
		a.deterministic = false
	}
	a.Determinize()
	a.RemoveDeadTransitions()

	states := a.states
	points := a.StartPoints()
	n := len(states)

	delta := make([][]StateID, n)
	for i, s := range states {
		delta[i] = make([]StateID, len(points))
		for k, p := range points {
			delta[i][k] = NoState
			for _, t := range s.transitions {
				if t.Min <= p && p <= t.Max {
					delta[i][k] = t.To
					break
				}
			}
		}
	}

	block := make([]int, n)
	count := 0
	{
		ids := map[bool]int{}
		for i, s := range states {
			id, ok := ids[s.Accept]
			if !ok {
				id = len(ids)
				ids[s.Accept] = id
			}
			block[i] = id
		}
		count = len(ids)
	}

	for {
		ids := make(map[string]int)
		next := make([]int, n)
		for i := range states {
			var b strings.Builder
			b.WriteString(strconv.Itoa(block[i]))
			for _, d := range delta[i] {
				b.WriteByte(':')
				if d == NoState {
					b.WriteByte('-')
				} else {
					b.WriteString(strconv.Itoa(block[d]))
				}
			}
			k := b.String()
			id, ok := ids[k]
			if !ok {
				id = len(ids)
				ids[k] = id
			}
			next[i] = id
		}
		block = next
		if len(ids) == count {
			break
		}
		count = len(ids)
	}

	m := &Automaton{deterministic: true}
	for range count {
		m.NewState()
	}
	done := make([]bool, count)
	for i, s := range states {
		b := block[i]
		if done[b] {
			continue
		}
		done[b] = true
		r := m.states[b]
		r.Accept = s.Accept
		for k, d := range delta[i] {
			if d == NoState {
				continue
			}
			hi := MaxChar
			if k+1 < len(points) {
				hi = points[k+1] - 1
			}
			r.AddTransition(NewTransition(points[k], hi, StateID(block[d])))
		}
	}
	m.initial = StateID(block[a.initial])

	a.states = m.states
	a.initial = m.initial
	a.deterministic = true
	a.RemoveDeadTransitions()
}

func (a *Automaton) minimizeBrzozowski() {
	a.determinize(a.reverse())
	a.determinize(a.reverse())
}

// reverse replaces the arena by the mirror image of the reachable states:
// every transition is flipped and the old initial state accepts. The mirrors
// of the old accepting states are returned; they form the initial set of the
// reversed language and are handed to determinize.
func (a *Automaton) reverse() []StateID {
	states := a.reachable()
	r := &Automaton{}
	mirror := make(map[StateID]StateID, len(states))
	for _, s := range states {
		mirror[s.id] = r.NewState().id
	}
	var initial []StateID
	for _, s := range states {
		for _, t := range s.transitions {
			r.states[mirror[t.To]].AddTransition(NewTransition(t.Min, t.Max, mirror[s.id]))
		}
		if s.Accept {
			initial = append(initial, mirror[s.id])
		}
	}
	r.states[mirror[a.initial]].Accept = true
	a.states = r.states
	a.initial = mirror[a.initial]
	a.deterministic = false
	return initial
}

// hasDeterministicTransitions reports whether no reachable state has two
// transitions with overlapping intervals.
func (a *Automaton) hasDeterministicTransitions() bool {
	for _, s := range a.reachable() {
		ts := s.SortedTransitions()
		for i := 1; i < len(ts); i++ {
			if ts[i].Min <= ts[i-1].Max {
				return false
			}
			ts[i].Max = max(ts[i].Max, ts[i-1].Max)
		}
	}
	return true
}
