package fst

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
	"github.com/rodneyxr/brics-automaton/pkg/observability"
)

type recordingHooks struct {
	observability.NoopIntersectionHooks
	mu    sync.Mutex
	stats []observability.IntersectStats
}

func (r *recordingHooks) OnIntersectComplete(kind string, stats observability.IntersectStats, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if kind == "transducer" {
		r.stats = append(r.stats, stats)
	}
}

func record(t *testing.T) *recordingHooks {
	t.Helper()
	t.Cleanup(observability.Reset)
	h := &recordingHooks{}
	observability.SetIntersectionHooks(h)
	return h
}

func language(t *testing.T, a *automaton.Automaton) []string {
	t.Helper()
	out, ok := a.FiniteStrings(-1)
	if !ok {
		t.Fatalf("language is not finite:\n%s", a)
	}
	return out
}

func TestIntersectOverlapFanOut(t *testing.T) {
	tr := New()
	end := tr.NewState()
	end.Accept = true
	tr.Initial().AddTransition(NewTransition('a', 'm', end.ID()))
	tr.Initial().AddTransition(NewOutputTransition('h', 'z', 'X', 'X', end.ID(), false))
	tr.SetDeterministic(false)

	got := language(t, tr.Intersect(automaton.MakeCharRange('f', 'j')))
	want := []string{"X", "f", "g", "h", "i", "j"}
	if !slices.Equal(got, want) {
		t.Errorf("Intersect() = %q, want %q", got, want)
	}
}

func TestIntersectEpsilonChain(t *testing.T) {
	// a and b are deleted, c is copied.
	tr := New()
	q1 := tr.NewState()
	q2 := tr.NewState()
	q3 := tr.NewState()
	q3.Accept = true
	tr.Initial().AddTransition(NewEpsilonTransition('a', 'a', q1.ID()))
	q1.AddTransition(NewEpsilonTransition('b', 'b', q2.ID()))
	q2.AddTransition(NewCharTransition('c', q3.ID()))

	got := language(t, tr.Intersect(automaton.MakeStringSet("abc", "abd")))
	if !slices.Equal(got, []string{"c"}) {
		t.Errorf("Intersect() = %q, want [c]", got)
	}
}

func TestIntersectEpsilonAcceptance(t *testing.T) {
	tr := New()
	q1 := tr.NewState()
	q2 := tr.NewState()
	q2.Accept = true
	tr.Initial().AddTransition(NewEpsilonTransition('a', 'a', q1.ID()))
	q1.AddTransition(NewEpsilonTransition('b', 'b', q2.ID()))

	c := tr.Intersect(automaton.MakeStringSet("ab"))
	if !c.IsEmptyString() {
		t.Errorf("Intersect() = %v, want only the empty string", c)
	}
}

func TestCloseEpsilonsIsIdempotent(t *testing.T) {
	tr, err := DropParentSegment('/')
	if err != nil {
		t.Fatal(err)
	}
	p := newProduct(tr, automaton.MakeStringSet("a/b/c", "/x/y", "q"))
	p.build()
	steps, changes := p.closeEpsilons()
	if steps == 0 || changes == 0 {
		t.Fatalf("closeEpsilons() = %d steps, %d changes, want both > 0", steps, changes)
	}
	if _, again := p.closeEpsilons(); again != 0 {
		t.Errorf("second closeEpsilons() made %d changes, want 0", again)
	}
}

func TestIntersectDeterministicFlag(t *testing.T) {
	collapse, _ := CollapseSeparators('/')
	drop, _ := DropParentSegment('/')
	acceptor := automaton.MakeStringSet("a//b")

	if !collapse.Intersect(acceptor).IsDeterministic() {
		t.Error("deterministic operands gave a nondeterministic result")
	}
	if drop.Intersect(acceptor).IsDeterministic() {
		t.Error("nondeterministic transducer gave a deterministic result")
	}
	nfa := automaton.MakeStringSet("a//b")
	nfa.SetDeterministic(false)
	if collapse.Intersect(nfa).IsDeterministic() {
		t.Error("nondeterministic acceptor gave a deterministic result")
	}
}

func TestIntersectSingletonTransducer(t *testing.T) {
	h := record(t)
	tr := NewSingleton("ab")

	c := tr.Intersect(automaton.MakeAnyString())
	if !c.IsSingleton() || c.Singleton() != "ab" {
		t.Errorf("Intersect() = %v, want singleton ab", c)
	}
	if !tr.Intersect(automaton.MakeChar('x')).IsEmpty() {
		t.Error("rejected singleton gave a non-empty result")
	}
	if len(h.stats) != 2 || h.stats[0].FastPath != "left-singleton" {
		t.Errorf("hook stats = %+v", h.stats)
	}
}

func TestIntersectSingletonAcceptor(t *testing.T) {
	h := record(t)
	collapse, _ := CollapseSeparators('/')
	acceptor := automaton.MakeString("a//b")

	got := language(t, collapse.Intersect(acceptor))
	if !slices.Equal(got, []string{"a/b"}) {
		t.Errorf("Intersect() = %q, want [a/b]", got)
	}
	if !acceptor.IsSingleton() {
		t.Error("Intersect() expanded the acceptor")
	}

	onlyA := New()
	end := onlyA.NewState()
	end.Accept = true
	onlyA.Initial().AddTransition(NewCharTransition('a', end.ID()))
	if !onlyA.Intersect(automaton.MakeString("b")).IsEmpty() {
		t.Error("unreadable singleton gave a non-empty result")
	}

	if len(h.stats) != 2 {
		t.Fatalf("hook calls = %d, want 2", len(h.stats))
	}
	if h.stats[0].FastPath != "" || h.stats[0].Pairs == 0 || h.stats[0].EpsilonEdges != 1 {
		t.Errorf("product stats = %+v", h.stats[0])
	}
	if h.stats[1].FastPath != "acceptor-rejected" {
		t.Errorf("fast path = %q, want acceptor-rejected", h.stats[1].FastPath)
	}
}

func TestIntersectDoesNotModifyTransducer(t *testing.T) {
	collapse, _ := CollapseSeparators('/')
	before := collapse.String()
	collapse.Intersect(automaton.MakeStringSet("a//b", "//"))
	if after := collapse.String(); after != before {
		t.Errorf("Intersect() modified the transducer:\n%s\nwant\n%s", after, before)
	}
}

func TestIntersectMinimizeAlways(t *testing.T) {
	t.Cleanup(automaton.ResetPolicies)
	collapse, _ := CollapseSeparators('/')
	acceptor := automaton.MakeStringSet("xa", "ya")

	plain := collapse.Intersect(acceptor)
	automaton.SetMinimizeAlways(true)
	minimized := collapse.Intersect(acceptor)

	if minimized.NumStates() >= plain.NumStates() {
		t.Errorf("NumStates() = %d with minimize-always, %d without", minimized.NumStates(), plain.NumStates())
	}
	if !slices.Equal(language(t, minimized), []string{"xa", "ya"}) {
		t.Errorf("minimized language = %q", language(t, minimized))
	}
}

func TestIntersecterInterface(t *testing.T) {
	collapse, _ := CollapseSeparators('/')
	var i automaton.Intersecter = collapse
	if !i.Intersect(automaton.MakeStringSet("a///b")).Run("a/b") {
		t.Error("Intersecter.Intersect() rejects a/b")
	}
}

func TestIntersectConcurrent(t *testing.T) {
	collapse, _ := CollapseSeparators('/')
	acceptor := automaton.MakeStringSet("a//b", "c///d", "e")

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = collapse.Intersect(acceptor).FiniteStrings(-1)
		}()
	}
	wg.Wait()

	want := []string{"a/b", "c/d", "e"}
	for i, got := range results {
		if !slices.Equal(got, want) {
			t.Errorf("goroutine %d: %q, want %q", i, got, want)
		}
	}
}

func TestIntersectDistinctOutputs(t *testing.T) {
	collapse, _ := CollapseSeparators('/')
	// Both inputs collapse to the same string along different paths.
	got := collapse.Intersect(automaton.MakeStringSet("a//x", "a/x"))

	out, ok := got.FiniteStrings(-1)
	if !ok || !slices.Equal(out, []string{"a/x"}) {
		t.Errorf("FiniteStrings(-1) = %q, %v, want [a/x], true", out, ok)
	}
	out, ok = got.FiniteStrings(1)
	if !ok || !slices.Equal(out, []string{"a/x"}) {
		t.Errorf("FiniteStrings(1) = %q, %v, want [a/x], true", out, ok)
	}
}

func TestIntersectLargeAcceptor(t *testing.T) {
	if testing.Short() {
		t.Skip("large product")
	}
	drop, _ := DropParentSegment('/')
	inputs := make([]string, 40000)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("/seg%05d/x%05d/y", i, i)
	}

	got := drop.Intersect(automaton.MakeStringSet(inputs...))
	for _, i := range []int{0, 12345, 39999} {
		want := fmt.Sprintf("/x%05d/y", i)
		if !got.Run(want) {
			t.Errorf("result rejects %q", want)
		}
		if got.Run(inputs[i]) {
			t.Errorf("result accepts the unrewritten %q", inputs[i])
		}
	}
}

func TestSaturatingArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"mul", mulSat(6, 7), 42},
		{"mul zero", mulSat(0, math.MaxInt), 0},
		{"mul overflow", mulSat(math.MaxInt/2, 3), math.MaxInt},
		{"add", addSat(2, 3), 5},
		{"add overflow", addSat(math.MaxInt, 1), math.MaxInt},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}
