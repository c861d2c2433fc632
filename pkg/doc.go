// Package pkg holds the libraries behind fstool: finite-state automata and
// transducers over 16-bit character ranges.
//
// # Overview
//
//  1. [automaton] - Recognizers: construction, run, intersection,
//     determinization and minimization
//  2. [fst] - Transducers: transitions with identical, fixed or epsilon
//     output, the product with an acceptor, and the path-rewriting factories
//  3. [render/nodelink] - Graphviz state diagrams for both
//  4. [config] - TOML settings for the process-wide automaton policies
//  5. [observability] - Hooks around intersection and minimization
//  6. [errors] - Coded errors and alphabet validation
//
// # Data Flow
//
//	build or lift a transducer (fst.New, fst.FromAutomaton, factories)
//	         ↓
//	Transducer.Intersect(acceptor)
//	         ↓
//	plain automaton over the output alphabet
//
// [automaton]: github.com/rodneyxr/brics-automaton/pkg/automaton
// [fst]: github.com/rodneyxr/brics-automaton/pkg/fst
// [render/nodelink]: github.com/rodneyxr/brics-automaton/pkg/render/nodelink
// [config]: github.com/rodneyxr/brics-automaton/pkg/config
// [observability]: github.com/rodneyxr/brics-automaton/pkg/observability
// [errors]: github.com/rodneyxr/brics-automaton/pkg/errors
package pkg
