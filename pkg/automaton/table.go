package automaton

import "fmt"

// Table holds the pre-sorted outgoing transitions of every reachable state,
// indexed by a dense state number.
//
// Numbers are assigned in the order states are handed to [NewTable], which is
// breadth-first from the initial state for both automata and transducers, so
// the two operands of a product share one numbering convention. Building a
// table never writes to the states it describes.
type Table[T any] struct {
	numbers []int
	rows    [][]T
}

// NewTable numbers ids densely (0, 1, ...) and stores sorted(id) as the row
// for each. arenaSize bounds the handles that may be looked up later.
func NewTable[T any](arenaSize int, ids []StateID, sorted func(StateID) []T) *Table[T] {
	t := &Table[T]{
		numbers: make([]int, arenaSize),
		rows:    make([][]T, len(ids)),
	}
	for i := range t.numbers {
		t.numbers[i] = -1
	}
	for n, id := range ids {
		t.numbers[id] = n
		t.rows[n] = sorted(id)
	}
	return t
}

// Len returns the number of numbered states.
func (t *Table[T]) Len() int { return len(t.rows) }

// Number returns the dense number of id, or -1 if id was not numbered.
func (t *Table[T]) Number(id StateID) int {
	if id < 0 || int(id) >= len(t.numbers) {
		return -1
	}
	return t.numbers[id]
}

// Row returns the sorted transitions of id. It panics if id was not numbered,
// which means the state is unreachable from the initial state.
func (t *Table[T]) Row(id StateID) []T {
	n := t.Number(id)
	if n < 0 {
		panic(fmt.Sprintf("automaton: state %d is not numbered", id))
	}
	return t.rows[n]
}

// SortedTransitions numbers the reachable states and returns their sorted
// transitions.
func (a *Automaton) SortedTransitions() *Table[Transition] {
	states := a.States()
	ids := make([]StateID, len(states))
	for i, s := range states {
		ids[i] = s.id
	}
	return NewTable(len(a.states), ids, func(id StateID) []Transition {
		return a.states[id].SortedTransitions()
	})
}
