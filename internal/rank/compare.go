package rank

// Compare orders two ranks: the shorter one is right-padded with the zero
// symbol and the two are compared byte by byte. Returns -1, 0 or +1.
//
// This is the only ordering consumers may rely on. It agrees with a plain
// ascending byte sort (e.g. SQLite BINARY collation) except that ranks which
// differ only by trailing zero symbols compare equal here.
func (a *Alphabet) Compare(x, y string) int {
	n := len(x)
	if len(y) > n {
		n = len(y)
	}
	zero := a.Zero()
	for i := 0; i < n; i++ {
		cx, cy := zero, zero
		if i < len(x) {
			cx = x[i]
		}
		if i < len(y) {
			cy = y[i]
		}
		switch {
		case cx < cy:
			return -1
		case cx > cy:
			return 1
		}
	}
	return 0
}

// Equivalent reports whether x and y denote the same position.
func (a *Alphabet) Equivalent(x, y string) bool {
	return a.Compare(x, y) == 0
}

// Pad right-pads the shorter of x and y with the zero symbol so both have
// the same length. Padding never changes a rank's position.
func (a *Alphabet) Pad(x, y string) (string, string) {
	switch {
	case len(x) < len(y):
		x += repeat(a.Zero(), len(y)-len(x))
	case len(y) < len(x):
		y += repeat(a.Zero(), len(x)-len(y))
	}
	return x, y
}
