package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
	"github.com/rodneyxr/brics-automaton/pkg/fst"
)

// Options configures state diagram rendering.
type Options struct {
	// Detailed appends the arena handle to each state label. When false,
	// states are labeled with their breadth-first number only.
	Detailed bool
}

// node is one state of the diagram, numbered breadth-first from the
// initial state.
type node struct {
	handle automaton.StateID
	accept bool
}

type edge struct {
	from, to int
	label    string
}

// ToDOT converts an automaton to Graphviz DOT format. States are numbered
// breadth-first from the initial state, accepting states are drawn as double
// circles and each transition is labeled with its character interval.
//
// A singleton automaton is rendered from an expanded copy; a is not modified.
func ToDOT(a *automaton.Automaton, opts Options) string {
	if a.IsSingleton() {
		a = a.Expanded()
	}
	states := a.States()
	num := make(map[automaton.StateID]int, len(states))
	nodes := make([]node, len(states))
	for i, s := range states {
		num[s.ID()] = i
		nodes[i] = node{handle: s.ID(), accept: s.Accept}
	}
	var edges []edge
	for i, s := range states {
		for _, t := range s.SortedTransitions() {
			edges = append(edges, edge{from: i, to: num[t.To], label: t.Label()})
		}
	}
	return writeDOT("Automaton", nodes, edges, opts)
}

// TransducerToDOT converts a transducer to Graphviz DOT format. Edges carry
// the transducer label "input => output", where the output is "eps" for an
// epsilon transition and "*" for an identical one.
//
// A singleton transducer is rendered from an expanded copy; t is not modified.
func TransducerToDOT(t *fst.Transducer, opts Options) string {
	if t.IsSingleton() {
		t = t.Clone()
	}
	states := t.States()
	num := make(map[automaton.StateID]int, len(states))
	nodes := make([]node, len(states))
	for i, s := range states {
		num[s.ID()] = i
		nodes[i] = node{handle: s.ID(), accept: s.Accept}
	}
	var edges []edge
	for i, s := range states {
		for _, tr := range s.SortedTransitions() {
			edges = append(edges, edge{from: i, to: num[tr.To], label: tr.Label()})
		}
	}
	return writeDOT("Transducer", nodes, edges, opts)
}

func writeDOT(name string, nodes []node, edges []edge, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fontsize=14];\n")
	buf.WriteString("  initial [shape=plaintext, label=\"\"];\n")
	buf.WriteString("\n")

	for i, n := range nodes {
		fmt.Fprintf(&buf, "  %d [%s];\n", i, strings.Join(fmtAttrs(i, n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	buf.WriteString("  initial -> 0;\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %d -> %d [label=%q];\n", e.from, e.to, e.label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(i int, n node, detailed bool) []string {
	label := strconv.Itoa(i)
	if detailed {
		label = fmt.Sprintf("%d (#%d)", i, n.handle)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.accept {
		attrs = append(attrs, "shape=doublecircle")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag so the image scales from its
// viewBox instead of the point sizes Graphviz writes.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
