// Package nodelink renders automata and transducers as state diagrams.
//
// # Overview
//
// States are drawn as circles connected by labeled arrows, laid out left to
// right with Graphviz. Accepting states get a double outline and an unlabeled
// arrow points at the initial state.
//
// # Usage
//
// Convert to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(a, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// Transducers use [TransducerToDOT]; their edges read "a-z => *" for an
// identical transition, "a => eps" for an epsilon transition and "a => b" for
// a fixed output.
//
// # Numbering
//
// States are numbered in breadth-first order from the initial state, so the
// same automaton always produces the same DOT text. With [Options.Detailed]
// the arena handle is shown next to the number.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
