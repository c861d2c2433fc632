package errors

// Alphabet bounds, duplicated from the automaton package to keep this package
// free of internal imports.
const (
	minChar rune = 1
	maxChar rune = 0xFFFF
)

// ValidateChar checks that r belongs to the working alphabet [1, 0xFFFF].
// Code unit 0 is reserved as the "no output" sentinel.
func ValidateChar(r rune) error {
	if r == 0 {
		return New(ErrCodeInvalidChar, "character U+0000 is reserved")
	}
	if r < minChar || r > maxChar {
		return New(ErrCodeInvalidChar, "character %U is outside the alphabet [U+0001, U+FFFF]", r)
	}
	return nil
}
