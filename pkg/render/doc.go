// Package render groups the visual output formats for automata.
//
// The [nodelink] subpackage draws automata and transducers as Graphviz state
// diagrams:
//
//	dot := nodelink.TransducerToDOT(t, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/rodneyxr/brics-automaton/pkg/render/nodelink
package render
