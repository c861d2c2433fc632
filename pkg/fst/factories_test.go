package fst

import (
	"slices"
	"strings"
	"testing"

	"github.com/rodneyxr/brics-automaton/pkg/automaton"
	"github.com/rodneyxr/brics-automaton/pkg/errors"
)

func outputs(t *testing.T, tr *Transducer, s string) []string {
	t.Helper()
	out, ok := tr.Outputs(s, -1)
	if !ok {
		t.Fatalf("Outputs(%q) is not finite", s)
	}
	return out
}

func TestDropParentSegment(t *testing.T) {
	tr, err := DropParentSegment('/')
	if err != nil {
		t.Fatalf("DropParentSegment() error: %v", err)
	}
	if tr.IsDeterministic() {
		t.Error("DropParentSegment() flagged deterministic")
	}

	tests := []struct {
		in   string
		want []string
	}{
		{"/a/b", []string{"/b"}},
		{"/a/b/c", []string{"/b/c"}},
		{"/a", []string{""}},
		{"a/b/c", []string{"a/b/c", "b/c"}},
		{"b/c", []string{"b/c", "c"}},
		{"abc", []string{"abc"}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if !tr.Run(tt.in) {
				t.Errorf("Run(%q) = false, every input should be accepted", tt.in)
			}
			if got := outputs(t, tr, tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Outputs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDropParentSegmentRelativePassthrough(t *testing.T) {
	tr, _ := DropParentSegment('/')
	for _, in := range []string{"b/c", "a/b/c", "main.go", "a//b", "x/"} {
		got := outputs(t, tr, in)
		if !slices.Contains(got, in) {
			t.Errorf("Outputs(%q) = %q, missing the unchanged input", in, got)
		}
		for _, out := range got {
			if !strings.HasSuffix(in, out) {
				t.Errorf("Outputs(%q) has %q, not a suffix of the input", in, out)
			}
		}
	}
}

func TestDropParentSegmentLanguage(t *testing.T) {
	tr, _ := DropParentSegment('/')
	got := tr.Intersect(automaton.MakeStringSet("a/b/c", "/x/y"))

	for _, s := range []string{"a/b/c", "b/c", "/y"} {
		if !got.Run(s) {
			t.Errorf("result rejects %q", s)
		}
	}
	for _, s := range []string{"/x/y", "c", "y"} {
		if got.Run(s) {
			t.Errorf("result accepts %q", s)
		}
	}
}

func TestCollapseSeparators(t *testing.T) {
	tr, err := CollapseSeparators('/')
	if err != nil {
		t.Fatalf("CollapseSeparators() error: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"a//b", "a/b"},
		{"a///b", "a/b"},
		{"a/b", "a/b"},
		{"//a//", "/a/"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := outputs(t, tr, tt.in); !slices.Equal(got, []string{tt.want}) {
				t.Errorf("Outputs(%q) = %q, want [%q]", tt.in, got, tt.want)
			}
		})
	}
}

func TestCollapseSeparatorsSet(t *testing.T) {
	tr, _ := CollapseSeparators('\\')
	got := language(t, tr.Intersect(automaton.MakeStringSet(`a\\b`, `a\b`, `c\\\d`)))
	if want := []string{`a\b`, `c\d`}; !slices.Equal(got, want) {
		t.Errorf("Intersect() = %q, want %q", got, want)
	}
}

func TestFactoriesRejectInvalidSeparator(t *testing.T) {
	for _, sep := range []rune{automaton.NullChar, automaton.MaxChar + 1, -1} {
		if _, err := DropParentSegment(sep); !errors.Is(err, errors.ErrCodeInvalidChar) {
			t.Errorf("DropParentSegment(%d) error = %v, want INVALID_CHAR", sep, err)
		}
		if _, err := CollapseSeparators(sep); !errors.Is(err, errors.ErrCodeInvalidChar) {
			t.Errorf("CollapseSeparators(%d) error = %v, want INVALID_CHAR", sep, err)
		}
	}
}

func TestFactoriesAlphabetEdges(t *testing.T) {
	for _, sep := range []rune{automaton.MinChar, automaton.MaxChar} {
		tr, err := CollapseSeparators(sep)
		if err != nil {
			t.Fatalf("CollapseSeparators(%d) error: %v", sep, err)
		}
		in := "a" + string(sep) + string(sep) + "b"
		want := "a" + string(sep) + "b"
		if got := outputs(t, tr, in); !slices.Equal(got, []string{want}) {
			t.Errorf("sep %d: Outputs() = %q, want [%q]", sep, got, want)
		}
	}
}
