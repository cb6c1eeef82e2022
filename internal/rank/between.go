package rank

import "math/big"

var bigOne = big.NewInt(1)

// Between returns a rank strictly between first and second.
//
// Both ranks are right-padded to a common length L. If their values differ by
// more than one unit at that length the midpoint is re-encoded at length L;
// otherwise the padded first rank is extended by the alphabet's mid symbol
// and the result has length L+1. Fails with INVALID_ORDER unless
// first < second, and with INVALID_RANK for malformed input.
func (r *Ranker) Between(first, second string) (string, error) {
	if err := r.alphabet.Validate(first); err != nil {
		return "", err
	}
	if err := r.alphabet.Validate(second); err != nil {
		return "", err
	}
	if r.alphabet.Compare(first, second) >= 0 {
		return "", NewInvalidOrderError(first, second)
	}

	a, b := r.alphabet.Pad(first, second)
	if mid, ok := r.mid.midpoint(a, b); ok {
		return mid, nil
	}

	r.logger.Debug("gap exhausted, extending rank",
		"first", a,
		"second", b,
		"length", len(a)+1,
	)
	return a + string(r.alphabet.Mid()), nil
}

// bijective reads equal-length ranks as bijective base-R integers (digits
// 1..R), averages them and re-encodes the result.
type bijective struct {
	alphabet *Alphabet
}

func (s bijective) midpoint(first, second string) (string, bool) {
	a := s.toInt(first)
	b := s.toInt(second)

	gap := new(big.Int).Sub(b, a)
	if gap.Cmp(bigOne) <= 0 {
		return "", false
	}

	mid := new(big.Int).Add(a, b)
	mid.Rsh(mid, 1)
	return s.fromInt(mid), true
}

// toInt computes sum(bij(x[i]) * R^(L-1-i)).
func (s bijective) toInt(x string) *big.Int {
	radix := big.NewInt(int64(s.alphabet.Radix()))
	n := new(big.Int)
	d := new(big.Int)
	for i := 0; i < len(x); i++ {
		v, _ := s.alphabet.BijectiveValue(x[i])
		n.Mul(n, radix)
		n.Add(n, d.SetInt64(int64(v)))
	}
	return n
}

// fromInt re-encodes n in bijective base R with one right-to-left pass. A
// zero remainder is not a bijective digit: it becomes R and one unit is
// borrowed from the quotient, which carries the borrow into every more
// significant digit still to be produced.
func (s bijective) fromInt(n *big.Int) string {
	radixN := s.alphabet.Radix()
	radix := big.NewInt(int64(radixN))
	rest := new(big.Int).Set(n)
	q := new(big.Int)
	m := new(big.Int)

	var out []byte
	for rest.Sign() > 0 {
		q.DivMod(rest, radix, m)
		v := int(m.Int64())
		if v == 0 {
			v = radixN
			q.Sub(q, bigOne)
		}
		out = append(out, s.alphabet.BijectiveSymbol(v))
		rest.Set(q)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}
