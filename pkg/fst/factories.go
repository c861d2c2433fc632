package fst

import (
	"github.com/rodneyxr/brics-automaton/pkg/errors"
)

// DropParentSegment returns a transducer that removes the leading segment of
// a path whose separator is sep. Every input string is accepted.
//
//   - An absolute path loses its leading separator and first segment, and
//     keeps the rest: "/a/b" becomes "/b".
//   - A relative path either passes through unchanged or loses its first
//     segment together with the separator after it: "a/b/c" produces both
//     "a/b/c" and "b/c".
//
// A relative path therefore always has itself among its outputs, but it is
// not only copied: "b/c" produces "b/c" and also "c". Callers that want pure
// passthrough for relative paths should intersect with an acceptor of
// absolute paths, or pick the output equal to the input.
//
// The transducer is nondeterministic. It returns an INVALID_CHAR error if
// sep is outside the working alphabet.
func DropParentSegment(sep rune) (*Transducer, error) {
	if err := errors.ValidateChar(sep); err != nil {
		return nil, err
	}
	t := New()
	start := t.Initial()
	lead := t.NewState()    // after a leading separator
	segment := t.NewState() // inside the dropped absolute segment
	first := t.NewState()   // inside the dropped relative segment
	rest := t.NewState()    // copying the remainder
	keep := t.NewState()    // relative path copied unchanged

	start.Accept = true
	lead.Accept = true
	segment.Accept = true
	rest.Accept = true
	keep.Accept = true

	start.AddTransition(NewEpsilonTransition(sep, sep, lead.id))
	start.AddIdenticalExclude(sep, keep)
	start.AddEpsilonExclude(sep, first)

	lead.AddEpsilonExclude(sep, segment)
	lead.AddTransition(NewCharTransition(sep, rest.id))

	segment.AddEpsilonExclude(sep, segment)
	segment.AddTransition(NewCharTransition(sep, rest.id))

	first.AddEpsilonExclude(sep, first)
	first.AddTransition(NewEpsilonTransition(sep, sep, rest.id))

	rest.AddIdenticalAcceptAll(rest)
	keep.AddIdenticalAcceptAll(keep)

	t.SetDeterministic(false)
	return t, nil
}

// CollapseSeparators returns a transducer that copies its input but reduces
// every run of consecutive sep characters to a single one: "a//b" and
// "a///b" become "a/b". Every state accepts, so every input is rewritten.
//
// It returns an INVALID_CHAR error if sep is outside the working alphabet.
func CollapseSeparators(sep rune) (*Transducer, error) {
	if err := errors.ValidateChar(sep); err != nil {
		return nil, err
	}
	t := New()
	text := t.Initial()
	after := t.NewState()
	text.Accept = true
	after.Accept = true

	text.AddIdenticalExclude(sep, text)
	text.AddTransition(NewCharTransition(sep, after.id))

	after.AddTransition(NewEpsilonTransition(sep, sep, after.id))
	after.AddIdenticalExclude(sep, text)
	return t, nil
}
