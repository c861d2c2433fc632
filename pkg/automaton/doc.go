// Package automaton provides finite-state automata over character ranges.
//
// # Overview
//
// An [Automaton] is a recognizer: a graph of [State] values connected by
// [Transition] edges, each edge labeled with a closed character interval
// [Min, Max]. A string is accepted when some run from the initial state
// consumes every character and stops in an accepting state.
//
// The working alphabet is the 16-bit code unit range [MinChar, MaxChar].
// Code unit 0 ([NullChar]) is reserved as a sentinel meaning "no output" by
// the transducer package and never appears on an automaton edge built by the
// factories in this package.
//
// # Arena Layout
//
// States live in an arena owned by the automaton and are addressed by
// [StateID] handles. Transitions refer to their destination by handle, never
// by pointer, so pairing algorithms (intersection, determinization) can key
// maps on plain integer pairs.
//
//	a := automaton.New()
//	s0 := a.Initial()
//	s1 := a.NewState()
//	s1.Accept = true
//	s0.AddTransition(automaton.NewTransition('a', 'z', s1.ID()))
//
// # Singletons
//
// [MakeString] returns the singleton representation: no explicit states, just
// the string. Operations that need explicit structure call
// [Automaton.ExpandSingleton] first. The singleton fast path lets
// intersections against a single string short-circuit to a [Automaton.Run].
//
// # Policies
//
// Three process-wide switches mirror the behavior callers expect from a
// general automaton library:
//
//   - [SetMinimizeAlways]: minimize at the end of every construction
//   - [SetMinimization]: choose the minimization algorithm
//   - [SetAllowMutate]: let [Automaton.CloneIfRequired] return the receiver
//
// # Concurrency
//
// Automaton instances are not safe for concurrent mutation. Read-only use,
// including running them as an operand of an intersection, is safe from
// multiple goroutines: numbering states for the sorted-transition table
// never writes to the states themselves.
package automaton
