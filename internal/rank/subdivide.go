package rank

import "fmt"

// Direction says which bound a Subdivide step replaces with the new rank.
type Direction string

const (
	// TowardSecond replaces first with each new rank; the chain climbs
	// toward second.
	TowardSecond Direction = "second"

	// TowardFirst replaces second with each new rank; the chain descends
	// toward first.
	TowardFirst Direction = "first"
)

// ParseDirection converts a name into a Direction.
func ParseDirection(name string) (Direction, error) {
	switch Direction(name) {
	case TowardFirst, TowardSecond:
		return Direction(name), nil
	}
	return "", fmt.Errorf("unknown direction %q: must be %q or %q", name, TowardFirst, TowardSecond)
}

// Subdivide inserts into the same gap times times in a row. Each new rank
// becomes one of the bounds for the next insert, as selected by toward.
// It returns the produced ranks in generation order; any failure fails the
// whole walk.
func (r *Ranker) Subdivide(first, second string, times int, toward Direction) ([]string, error) {
	if times < 0 {
		return nil, fmt.Errorf("times must not be negative, got %d", times)
	}
	if _, err := ParseDirection(string(toward)); err != nil {
		return nil, err
	}

	out := make([]string, 0, times)
	lo, hi := first, second
	for i := 0; i < times; i++ {
		mid, err := r.Between(lo, hi)
		if err != nil {
			return nil, fmt.Errorf("subdivide step %d: %w", i, err)
		}
		out = append(out, mid)
		if toward == TowardSecond {
			lo = mid
		} else {
			hi = mid
		}
	}
	return out, nil
}
