package cli

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rodneyxr/brics-automaton/pkg/errors"
	"github.com/rodneyxr/brics-automaton/pkg/fst"
)

// factory builds a transducer around a separator character.
type factory func(sep rune) (*fst.Transducer, error)

var transducers = map[string]factory{
	"collapse":    fst.CollapseSeparators,
	"drop-parent": fst.DropParentSegment,
}

// transducerNames returns the registered names in sorted order.
func transducerNames() []string {
	return slices.Sorted(maps.Keys(transducers))
}

func buildTransducer(name, sep string) (*fst.Transducer, error) {
	f, ok := transducers[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown transducer %q (want one of: %s)", name, strings.Join(transducerNames(), ", "))
	}
	r, err := parseSep(sep)
	if err != nil {
		return nil, err
	}
	return f(r)
}

// parseSep accepts exactly one character.
func parseSep(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "separator must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
