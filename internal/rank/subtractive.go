package rank

// subtractive works on zero-based digit arrays: it subtracts first from
// second with a borrow pass, halves the difference, and adds the half back
// onto first with a carry pass. floor((A+B)/2) == A + floor((B-A)/2), and for
// a fixed length the zero-based and bijective values differ by a constant,
// so the output is identical to the bijective strategy.
type subtractive struct {
	alphabet *Alphabet
}

func (s subtractive) midpoint(first, second string) (string, bool) {
	radix := s.alphabet.Radix()
	a := s.alphabet.digits(first)
	b := s.alphabet.digits(second)

	diff := subDigits(b, a, radix)
	if atMostOne(diff) {
		return "", false
	}

	half := halveDigits(diff, radix)
	sum, carry := addDigits(a, half, radix)
	if carry != 0 {
		// a + (b-a)/2 < b, so the sum always fits in len(a) digits.
		panic("rank: subtractive midpoint overflowed its length")
	}
	return s.alphabet.encode(sum), true
}

// subDigits returns x - y for equal-length digit arrays with x >= y.
func subDigits(x, y []int, radix int) []int {
	out := make([]int, len(x))
	borrow := 0
	for i := len(x) - 1; i >= 0; i-- {
		d := x[i] - y[i] - borrow
		borrow = 0
		if d < 0 {
			d += radix
			borrow = 1
		}
		out[i] = d
	}
	return out
}

// addDigits returns x + y for equal-length digit arrays and the final carry.
func addDigits(x, y []int, radix int) ([]int, int) {
	out := make([]int, len(x))
	carry := 0
	for i := len(x) - 1; i >= 0; i-- {
		d := x[i] + y[i] + carry
		carry = 0
		if d >= radix {
			d -= radix
			carry = 1
		}
		out[i] = d
	}
	return out, carry
}

// halveDigits returns floor(x / 2) by long division, most significant first.
func halveDigits(x []int, radix int) []int {
	out := make([]int, len(x))
	rem := 0
	for i, d := range x {
		cur := rem*radix + d
		out[i] = cur / 2
		rem = cur % 2
	}
	return out
}

// atMostOne reports whether the digit array's value is 0 or 1.
func atMostOne(x []int) bool {
	for i := 0; i < len(x)-1; i++ {
		if x[i] != 0 {
			return false
		}
	}
	return x[len(x)-1] <= 1
}
