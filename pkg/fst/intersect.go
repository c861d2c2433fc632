package fst

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
	"github.com/rodneyxr/brics-automaton/pkg/observability"
)

// Intersect returns a plain automaton over the output alphabet accepting
// every output the transducer produces for a string accepted by acceptor.
// Neither operand is modified.
//
// Shortcuts are taken before the product construction:
//   - a singleton transducer yields its string if acceptor accepts it, and
//     the empty language otherwise
//   - a singleton acceptor the transducer cannot read yields the empty
//     language; otherwise it is expanded and rewritten by the product
//
// The result is flagged deterministic iff both operands are. Dead states are
// pruned and the minimize-always policy is honored.
func (t *Transducer) Intersect(acceptor *automaton.Automaton) *automaton.Automaton {
	hooks := observability.Intersection()
	start := time.Now()

	if t.isSingleton {
		hooks.OnIntersectComplete("transducer", observability.IntersectStats{FastPath: "left-singleton"}, time.Since(start))
		if acceptor.Run(t.singleton) {
			return automaton.MakeString(t.singleton)
		}
		return automaton.MakeEmpty()
	}
	if acceptor.IsSingleton() {
		if !t.Run(acceptor.Singleton()) {
			hooks.OnIntersectComplete("transducer", observability.IntersectStats{FastPath: "acceptor-rejected"}, time.Since(start))
			return automaton.MakeEmpty()
		}
		acceptor = acceptor.Expanded()
	}

	p := newProduct(t, acceptor)
	hooks.OnIntersectStart("transducer", p.t1.Len(), p.t2.Len())
	p.build()
	steps, _ := p.closeEpsilons()

	c := p.out
	c.SetDeterministic(t.deterministic && acceptor.IsDeterministic())
	c.RemoveDeadTransitions()
	c.CheckMinimizeAlways()

	hooks.OnIntersectComplete("transducer", observability.IntersectStats{
		Pairs:        len(p.pairs),
		EpsilonEdges: p.epsilonEdges,
		ClosureSteps: steps,
		ResultStates: c.NumStates(),
	}, time.Since(start))
	return c
}

// statePair is a product state: the output state plus the transducer and
// acceptor states it stands for.
type statePair struct {
	out    StateID
	s1, s2 StateID
}

type pairKey struct{ s1, s2 StateID }

// product holds the per-call state of one intersection. Nothing in it
// outlives the call.
type product struct {
	fst *Transducer
	acc *automaton.Automaton
	t1  *automaton.Table[Transition]
	t2  *automaton.Table[automaton.Transition]
	out *automaton.Automaton

	pairs    map[pairKey]*statePair
	worklist []*statePair

	// epsilon holds the deferred epsilon edges, keyed by the source pair's
	// output state; sources keeps discovery order.
	epsilon      map[StateID][]StateID
	sources      []StateID
	epsilonEdges int
}

func newProduct(t *Transducer, a *automaton.Automaton) *product {
	return &product{
		fst:     t,
		acc:     a,
		t1:      t.SortedTransitions(),
		t2:      a.SortedTransitions(),
		out:     automaton.New(),
		pairs:   make(map[pairKey]*statePair),
		epsilon: make(map[StateID][]StateID),
	}
}

// pair returns the product state for (s1, s2), allocating its output state
// and queueing it on first sight.
func (p *product) pair(s1, s2 StateID) *statePair {
	k := pairKey{s1, s2}
	if q, ok := p.pairs[k]; ok {
		return q
	}
	var s *automaton.State
	if len(p.pairs) == 0 {
		s = p.out.Initial()
	} else {
		s = p.out.NewState()
	}
	s.Accept = p.fst.states[s1].Accept && p.acc.State(s2).Accept
	q := &statePair{out: s.ID(), s1: s1, s2: s2}
	p.pairs[k] = q
	p.worklist = append(p.worklist, q)
	return q
}

// build runs the breadth-first product. Non-epsilon transitions are emitted
// directly; epsilon transitions are deferred to closeEpsilons.
func (p *product) build() {
	p.pair(p.fst.initial, p.acc.Initial().ID())
	for len(p.worklist) > 0 {
		cur := p.worklist[0]
		p.worklist = p.worklist[1:]
		r := p.out.State(cur.out)
		r.Accept = p.fst.states[cur.s1].Accept && p.acc.State(cur.s2).Accept

		row1, row2 := p.t1.Row(cur.s1), p.t2.Row(cur.s2)
		for n1, b2 := 0, 0; n1 < len(row1); n1++ {
			x := row1[n1]
			for b2 < len(row2) && row2[b2].Max < x.Min {
				b2++
			}
			for n2 := b2; n2 < len(row2) && x.Max >= row2[n2].Min; n2++ {
				y := row2[n2]
				if !x.Overlaps(y) {
					continue
				}
				q := p.pair(x.To, y.To)
				if x.IsEpsilon() {
					p.deferEpsilon(cur.out, q.out)
					continue
				}
				r.AddTransition(x.ResolveOutput(max(x.Min, y.Min), min(x.Max, y.Max), q.out))
			}
		}
	}
}

func (p *product) deferEpsilon(src, dst StateID) {
	dests, ok := p.epsilon[src]
	if !ok {
		p.sources = append(p.sources, src)
	}
	for _, d := range dests {
		if d == dst {
			return
		}
	}
	p.epsilon[src] = append(dests, dst)
	p.epsilonEdges++
}

// closeEpsilons materializes the deferred epsilon edges until nothing
// changes. Every source is processed once; when a state gains a transition
// or becomes accepting, the sources with an epsilon edge into it are queued
// again. It returns the number of edges materialized and the number of
// materializations that changed the automaton.
func (p *product) closeEpsilons() (steps, changes int) {
	preds := make(map[StateID][]StateID)
	for _, src := range p.sources {
		for _, dst := range p.epsilon[src] {
			preds[dst] = append(preds[dst], src)
		}
	}

	// Each change adds a transition or an accept bit to some output state,
	// and the closure only copies transitions that already exist, so changes
	// are bounded by facts. A source is requeued only after one of its
	// destinations changed, so dequeues are bounded by the initial queue plus
	// facts times the largest predecessor list.
	transitions, indegree := 0, 0
	for _, q := range p.pairs {
		transitions += len(p.out.State(q.out).Transitions())
	}
	for _, ps := range preds {
		indegree = max(indegree, len(ps))
	}
	facts := mulSat(len(p.pairs), transitions+1)
	limit := addSat(len(p.sources), mulSat(facts, indegree))

	queue := slices.Clone(p.sources)
	queued := make(map[StateID]bool, len(queue))
	for _, src := range queue {
		queued[src] = true
	}
	dequeued := 0
	for len(queue) > 0 {
		src := queue[0]
		queue = queue[1:]
		queued[src] = false
		if dequeued++; dequeued > limit {
			panic(fmt.Sprintf("fst: epsilon closure exceeded %d passes", limit))
		}

		changed := false
		for _, dst := range p.epsilon[src] {
			steps++
			if p.out.AddEpsilon(src, dst) {
				changed = true
				changes++
			}
		}
		if !changed {
			continue
		}
		for _, pred := range preds[src] {
			if !queued[pred] {
				queued[pred] = true
				queue = append(queue, pred)
			}
		}
	}
	return steps, changes
}

// mulSat and addSat saturate at math.MaxInt instead of wrapping.
func mulSat(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
