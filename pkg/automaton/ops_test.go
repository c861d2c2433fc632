package automaton

import (
	"slices"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	if !MakeEmpty().IsEmpty() {
		t.Error("MakeEmpty().IsEmpty() = false")
	}
	if MakeEmptyString().IsEmpty() || MakeString("").IsEmpty() || MakeAnyChar().IsEmpty() {
		t.Error("IsEmpty() = true for a non-empty language")
	}
}

func TestIsEmptyString(t *testing.T) {
	tests := []struct {
		name string
		a    *Automaton
		want bool
	}{
		{"empty string", MakeEmptyString(), true},
		{"singleton empty", MakeString(""), true},
		{"singleton", MakeString("a"), false},
		{"empty", MakeEmpty(), false},
		{"any string", MakeAnyString(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsEmptyString(); got != tt.want {
				t.Errorf("IsEmptyString() = %v, want %v", got, tt.want)
			}
		})
	}

	// A dead branch must not hide the fact that only "" is accepted.
	a := MakeEmptyString()
	dead := a.NewState()
	a.Initial().AddTransition(NewCharTransition('x', dead.ID()))
	if !a.IsEmptyString() {
		t.Error("IsEmptyString() = false with only a dead branch")
	}
}

func TestRemoveDeadTransitions(t *testing.T) {
	a := New()
	live := a.NewState()
	dead := a.NewState()
	live.Accept = true
	a.Initial().AddTransition(NewTransition('a', 'b', live.ID()))
	a.Initial().AddTransition(NewTransition('c', 'd', live.ID()))
	a.Initial().AddTransition(NewCharTransition('x', dead.ID()))
	dead.AddTransition(NewCharTransition('y', dead.ID()))

	a.RemoveDeadTransitions()

	if a.NumStates() != 2 {
		t.Errorf("NumStates() = %d, want 2", a.NumStates())
	}
	ts := a.Initial().Transitions()
	if len(ts) != 1 || ts[0].Min != 'a' || ts[0].Max != 'd' {
		t.Errorf("transitions = %v, want merged a-d", ts)
	}
	if a.Initial().ID() != 0 {
		t.Errorf("initial = %d, want 0", a.Initial().ID())
	}
}

func TestIntersect(t *testing.T) {
	a := MakeStringSet("ab", "ac", "b")
	ab := New()
	s1 := ab.NewState()
	s2 := ab.NewState()
	s2.Accept = true
	ab.Initial().AddTransition(NewTransition('a', 'z', s1.ID()))
	ab.Initial().AddTransition(NewTransition('a', 'b', s2.ID()))
	s1.AddTransition(NewTransition('b', 'b', s2.ID()))
	ab.SetDeterministic(false)

	c := a.Intersect(ab)
	got, ok := c.FiniteStrings(-1)
	if !ok || !slices.Equal(got, []string{"ab", "b"}) {
		t.Errorf("Intersect() strings = %v, %v, want [ab b]", got, ok)
	}
	if c.IsDeterministic() {
		t.Error("intersection with a nondeterministic operand flagged deterministic")
	}
	if !a.Run("ac") {
		t.Error("Intersect() modified its receiver")
	}
}

func TestIntersectSingletons(t *testing.T) {
	all := MakeAnyString()

	c := MakeString("abc").Intersect(all)
	if !c.IsSingleton() || c.Singleton() != "abc" {
		t.Errorf("singleton left operand = %v", c)
	}
	c = all.Intersect(MakeString("abc"))
	if !c.IsSingleton() || c.Singleton() != "abc" {
		t.Errorf("singleton right operand = %v", c)
	}
	if !MakeString("abc").Intersect(MakeChar('a')).IsEmpty() {
		t.Error("rejected singleton produced a non-empty language")
	}
}

func TestIntersectSameOperand(t *testing.T) {
	a := MakeStringSet("x", "yy")
	c := a.Intersect(a)
	if c == a {
		t.Error("Intersect(a, a) returned the receiver with mutation disallowed")
	}
	got, _ := c.FiniteStrings(-1)
	if !slices.Equal(got, []string{"x", "yy"}) {
		t.Errorf("Intersect(a, a) strings = %v", got)
	}
}

func TestIntersecterInterface(t *testing.T) {
	var i Intersecter = MakeCharRange('a', 'm')
	if !i.Intersect(MakeCharRange('k', 'z')).Run("l") {
		t.Error("interface Intersect() rejects l")
	}
}

func TestFiniteStrings(t *testing.T) {
	tests := []struct {
		name   string
		a      *Automaton
		limit  int
		want   []string
		wantOK bool
	}{
		{"empty", MakeEmpty(), -1, nil, true},
		{"empty string", MakeEmptyString(), -1, []string{""}, true},
		{"singleton", MakeString("hi"), -1, []string{"hi"}, true},
		{"range", MakeCharRange('a', 'c'), -1, []string{"a", "b", "c"}, true},
		{"over limit", MakeCharRange('a', 'c'), 2, nil, false},
		{"at limit", MakeCharRange('a', 'c'), 3, []string{"a", "b", "c"}, true},
		{"infinite", MakeAnyString(), -1, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.FiniteStrings(tt.limit)
			if ok != tt.wantOK || !slices.Equal(got, tt.want) {
				t.Errorf("FiniteStrings(%d) = %q, %v, want %q, %v", tt.limit, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// twoPaths accepts "ab" along two distinct paths.
func twoPaths() *Automaton {
	a := New()
	x, y, end := a.NewState(), a.NewState(), a.NewState()
	end.Accept = true
	a.Initial().AddTransition(NewCharTransition('a', x.ID()))
	a.Initial().AddTransition(NewCharTransition('a', y.ID()))
	x.AddTransition(NewCharTransition('b', end.ID()))
	y.AddTransition(NewCharTransition('b', end.ID()))
	a.SetDeterministic(false)
	return a
}

func TestFiniteStringsNondeterministic(t *testing.T) {
	tests := []struct {
		limit  int
		want   []string
		wantOK bool
	}{
		{-1, []string{"ab"}, true},
		{1, []string{"ab"}, true},
		{0, nil, false},
	}
	for _, tt := range tests {
		got, ok := twoPaths().FiniteStrings(tt.limit)
		if ok != tt.wantOK || !slices.Equal(got, tt.want) {
			t.Errorf("FiniteStrings(%d) = %q, %v, want %q, %v", tt.limit, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRunDoesNotExpandSingleton(t *testing.T) {
	a := MakeString("abc")
	if !a.Run("abc") || a.Run("abd") {
		t.Error("singleton Run() wrong")
	}
	if !a.IsSingleton() {
		t.Error("Run() expanded the singleton")
	}
}
