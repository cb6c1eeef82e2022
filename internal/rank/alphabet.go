package rank

import (
	"fmt"
	"strings"
)

// LowercaseSymbols is the default 26-symbol alphabet.
const LowercaseSymbols = "abcdefghijklmnopqrstuvwxyz"

// Lowercase is the default alphabet ('a'..'z', radix 26).
var Lowercase = MustAlphabet(LowercaseSymbols)

// Alphabet maps rank symbols to digit values and back.
//
// Two digit conventions are exposed. The zero-based value of the i-th symbol
// is i and is what the ordering rule and padding work with. The bijective
// value is i+1, so no symbol is semantically zero; the midpoint arithmetic
// uses it.
//
// Symbols are single printable ASCII bytes in strictly increasing byte order,
// which makes plain byte comparison of ranks agree with digit comparison.
//
// An Alphabet is immutable and safe for concurrent use.
type Alphabet struct {
	symbols string
	values  [256]int8 // zero-based value per byte, -1 when not a symbol
}

// NewAlphabet builds an alphabet from an ordered symbol set.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if len(symbols) < 2 {
		return nil, fmt.Errorf("alphabet needs at least 2 symbols, got %d", len(symbols))
	}
	if len(symbols) > 95 {
		return nil, fmt.Errorf("alphabet has %d symbols, at most 95 printable ASCII symbols are allowed", len(symbols))
	}

	a := &Alphabet{symbols: symbols}
	for i := range a.values {
		a.values[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		if c < '!' || c > '~' {
			return nil, fmt.Errorf("alphabet symbol %q at %d is not printable ASCII", c, i)
		}
		if i > 0 && c <= symbols[i-1] {
			return nil, fmt.Errorf("alphabet symbols must be in strictly increasing byte order: %q follows %q", c, symbols[i-1])
		}
		a.values[c] = int8(i)
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error.
// Intended for package-level alphabets built from literals.
func MustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Symbols returns the ordered symbol set.
func (a *Alphabet) Symbols() string { return a.symbols }

// Radix returns the number of symbols.
func (a *Alphabet) Radix() int { return len(a.symbols) }

// Zero returns the lowest symbol, used for right-padding.
func (a *Alphabet) Zero() byte { return a.symbols[0] }

// Max returns the highest symbol.
func (a *Alphabet) Max() byte { return a.symbols[len(a.symbols)-1] }

// Mid returns the symbol appended when a gap is exhausted: bijective value
// radix/2 + 1 ('n' for the lowercase alphabet).
func (a *Alphabet) Mid() byte { return a.symbols[a.Radix()/2] }

// Symbol returns the symbol for a zero-based digit value.
func (a *Alphabet) Symbol(value int) byte { return a.symbols[value] }

// BijectiveSymbol returns the symbol for a bijective digit value (1..radix).
func (a *Alphabet) BijectiveSymbol(value int) byte { return a.symbols[value-1] }

// Value returns the zero-based digit value of c.
func (a *Alphabet) Value(c byte) (int, bool) {
	v := a.values[c]
	return int(v), v >= 0
}

// BijectiveValue returns the bijective digit value (1..radix) of c.
func (a *Alphabet) BijectiveValue(c byte) (int, bool) {
	v, ok := a.Value(c)
	return v + 1, ok
}

// Validate checks that s is a non-empty string of alphabet symbols.
func (a *Alphabet) Validate(s string) error {
	if s == "" {
		return NewInvalidRankError(s, "rank must not be empty")
	}
	for i := 0; i < len(s); i++ {
		if _, ok := a.Value(s[i]); !ok {
			return NewInvalidRankError(s, fmt.Sprintf("symbol %q at %d is not in the alphabet", s[i], i))
		}
	}
	return nil
}

// digits decodes s into zero-based digit values. s must be valid.
func (a *Alphabet) digits(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(a.values[s[i]])
	}
	return out
}

// encode turns zero-based digit values back into a rank string.
func (a *Alphabet) encode(digits []int) string {
	var b strings.Builder
	b.Grow(len(digits))
	for _, d := range digits {
		b.WriteByte(a.symbols[d])
	}
	return b.String()
}

// repeat returns n copies of c.
func repeat(c byte, n int) string {
	return strings.Repeat(string(c), n)
}
