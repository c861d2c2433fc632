// Package fst provides finite state transducers over character ranges.
//
// # Overview
//
// A [Transducer] is an automaton whose transitions also emit output. Each
// [Transition] consumes a character from its input interval and does one of:
//
//   - [Identical]: emits the consumed character itself
//   - [FixedOutput]: emits a character from a fixed output interval
//   - [Epsilon]: emits nothing (used to delete input or splice states)
//
// Transducers are used as string rewriters. Intersecting a transducer with a
// plain acceptor automaton yields a plain automaton over the output alphabet:
// the set of strings produced by feeding every string the acceptor accepts
// through the transducer.
//
//	collapse, _ := fst.CollapseSeparators('/')
//	out := collapse.Intersect(automaton.MakeString("a//b"))
//	out.Run("a/b") // true
//
// # Building Transducers
//
// States are allocated by the transducer ([Transducer.NewState]) and
// connected with the builder helpers on [State]:
//
//	t := fst.New()
//	q0 := t.Initial()
//	q1 := t.NewState()
//	q0.AddIdenticalExclude('/', q0)
//	q0.AddTransition(fst.NewEpsilonTransition('/', '/', q1.ID()))
//
// [FromAutomaton] lifts a plain automaton into a transducer whose transitions
// are all epsilon; callers assign real outputs afterwards with
// [Transition.SetIdentical] or [Transition.SetOutput].
//
// # Intersection
//
// [Transducer.Intersect] is a breadth-first product construction. Epsilon
// transitions cannot be emitted while the product is being built, because the
// destination pair's output state may not exist yet. They are recorded per
// source pair and closed by a fixpoint after the worklist drains, which
// propagates acceptance and transitions across epsilon chains.
//
// # Concurrency
//
// A built transducer is read-only during intersection and may be intersected
// from several goroutines at once, provided no one mutates it or the acceptor
// concurrently. Builders are not safe for concurrent use.
package fst
