package fst

import (
	"fmt"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
)

// StateID is a handle to a state inside a transducer's arena.
type StateID = automaton.StateID

// Kind is the output behavior of a transition.
type Kind int

const (
	// Identical transitions emit the consumed character.
	Identical Kind = iota
	// FixedOutput transitions emit a character from a fixed output interval.
	FixedOutput
	// Epsilon transitions emit nothing.
	Epsilon
)

func (k Kind) String() string {
	switch k {
	case Identical:
		return "identical"
	case FixedOutput:
		return "fixed"
	case Epsilon:
		return "epsilon"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Transition is a transducer edge: an input interval [Min, Max], a
// destination, and an output behavior.
//
// Transition is a value type. Copying one clones the input interval, the
// output interval and the kind, and keeps the same destination handle.
type Transition struct {
	Min rune
	Max rune
	To  StateID

	outMin rune
	outMax rune
	kind   Kind
}

// NewTransition returns an identical-output transition over [min, max].
func NewTransition(min, max rune, to StateID) Transition {
	return NewOutputTransition(min, max, automaton.NullChar, automaton.NullChar, to, true)
}

// NewCharTransition returns an identical-output transition over the single
// character c.
func NewCharTransition(c rune, to StateID) Transition {
	return NewTransition(c, c, to)
}

// NewOutputTransition returns a transition over [min, max] with the output
// interval [outMin, outMax]. When identical is true the output interval is
// kept but ignored: the transition emits its input. Inverted input or output
// intervals are normalized by swapping their bounds.
func NewOutputTransition(min, max, outMin, outMax rune, to StateID, identical bool) Transition {
	if max < min {
		min, max = max, min
	}
	if outMax < outMin {
		outMin, outMax = outMax, outMin
	}
	kind := FixedOutput
	if identical {
		kind = Identical
	}
	return Transition{Min: min, Max: max, To: to, outMin: outMin, outMax: outMax, kind: kind}
}

// NewEpsilonTransition returns a transition that consumes [min, max] and
// emits nothing. Its output interval is the sentinel (NullChar, NullChar).
func NewEpsilonTransition(min, max rune, to StateID) Transition {
	t := NewOutputTransition(min, max, automaton.NullChar, automaton.NullChar, to, false)
	t.kind = Epsilon
	return t
}

// Kind returns the output behavior.
func (t Transition) Kind() Kind { return t.kind }

// IsIdentical reports whether the transition emits its input.
func (t Transition) IsIdentical() bool { return t.kind == Identical }

// IsEpsilon reports whether the transition emits nothing.
func (t Transition) IsEpsilon() bool { return t.kind == Epsilon }

// Output returns the fixed output interval. It is meaningful only for
// FixedOutput transitions.
func (t Transition) Output() (min, max rune) { return t.outMin, t.outMax }

// SetEpsilon switches the transition to or from epsilon output. Turning
// epsilon on clears the identical flag; turning it off leaves a FixedOutput
// transition with the stored output interval.
func (t *Transition) SetEpsilon(epsilon bool) {
	switch {
	case epsilon:
		t.kind = Epsilon
	case t.kind == Epsilon:
		t.kind = FixedOutput
	}
}

// SetIdentical switches the transition to or from identical output. Turning
// identical on clears the epsilon flag; turning it off leaves a FixedOutput
// transition with the stored output interval.
func (t *Transition) SetIdentical(identical bool) {
	switch {
	case identical:
		t.kind = Identical
	case t.kind == Identical:
		t.kind = FixedOutput
	}
}

// SetOutput makes the transition emit a character from [min, max]. An
// inverted interval is normalized.
func (t *Transition) SetOutput(min, max rune) {
	if max < min {
		min, max = max, min
	}
	t.outMin, t.outMax = min, max
	t.kind = FixedOutput
}

// ResolveOutput returns the plain transition emitted when t fires on the
// negotiated input interval [min, max] and lands in to. An identical
// transition emits [min, max] itself; a fixed one emits its output interval.
//
// ResolveOutput panics on epsilon transitions: they are resolved structurally
// by the intersection, never by character output.
func (t Transition) ResolveOutput(min, max rune, to StateID) automaton.Transition {
	switch t.kind {
	case Identical:
		return automaton.NewTransition(min, max, to)
	case FixedOutput:
		return automaton.NewTransition(t.outMin, t.outMax, to)
	default:
		panic(fmt.Sprintf("fst: ResolveOutput called on epsilon transition %s", t.Label()))
	}
}

// Input returns the input interval and destination as a plain transition.
func (t Transition) Input() automaton.Transition {
	return automaton.Transition{Min: t.Min, Max: t.Max, To: t.To}
}

// Overlaps reports whether the input interval of t shares a character with
// the interval of a plain transition. Touching boundaries overlap.
func (t Transition) Overlaps(o automaton.Transition) bool {
	return t.Max >= o.Min && o.Max >= t.Min
}

// Equal compares input interval, destination, output interval and the
// epsilon flag. The identical flag is not compared.
func (t Transition) Equal(o Transition) bool {
	return t.Min == o.Min && t.Max == o.Max && t.To == o.To &&
		t.outMin == o.outMin && t.outMax == o.outMax &&
		t.IsEpsilon() == o.IsEpsilon()
}

// Label renders the transition as "<input> => <output>", where output is
// "eps" for epsilon, "*" for identical, or the fixed output interval.
func (t Transition) Label() string {
	out := "*"
	switch t.kind {
	case Epsilon:
		out = "eps"
	case FixedOutput:
		out = automaton.Transition{Min: t.outMin, Max: t.outMax}.Label()
	}
	return t.Input().Label() + " => " + out
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -> %d", t.Label(), t.To)
}
