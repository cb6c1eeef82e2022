package rank

import (
	"fmt"
	"slices"
)

// Capacity returns the size of the fixed-width space, radix^width
// (17,576 for the lowercase alphabet at width 3).
func (r *Ranker) Capacity() int {
	n := 1
	for i := 0; i < r.width; i++ {
		n *= r.alphabet.Radix()
	}
	return n
}

// Initial returns count distinct fixed-width ranks in strictly increasing
// order, evenly spaced between the lowest and highest width-symbol strings
// and equal to neither.
//
// The per-item increment is span/(count+1), decomposed into width digits;
// each rank is the previous one plus that increment with carry. The result
// is sorted and checked for duplicates and sentinel collisions; a count too
// dense for the width fails with RANGE_EXCEEDED rather than colliding.
func (r *Ranker) Initial(count int) ([]string, error) {
	capacity := r.Capacity()
	if count < 0 {
		return nil, NewRangeExceededError(count, capacity, "count must not be negative")
	}
	if count > capacity {
		return nil, NewRangeExceededError(count, capacity,
			fmt.Sprintf("the %d-symbol space holds at most %d ranks", r.width, capacity))
	}
	if count == 0 {
		return []string{}, nil
	}

	radix := r.alphabet.Radix()
	width := r.width
	span := capacity - 1
	step := span / (count + 1)

	// least significant digit first
	inc := make([]int, width)
	for i, rest := 0, step; i < width; i++ {
		inc[i] = rest % radix
		rest /= radix
	}

	cur := make([]int, width) // lower sentinel
	ranks := make([]string, 0, count)
	for n := 0; n < count; n++ {
		carry := 0
		for i := 0; i < width; i++ {
			pos := width - 1 - i
			d := cur[pos] + inc[i] + carry
			carry = 0
			if d >= radix {
				d -= radix
				carry = 1
			}
			cur[pos] = d
		}
		if carry != 0 {
			return nil, NewRangeExceededError(count, capacity, "increment overflowed the upper sentinel")
		}
		ranks = append(ranks, r.alphabet.encode(cur))
	}

	// Equal widths: byte order is rank order.
	slices.Sort(ranks)

	lower := repeat(r.alphabet.Zero(), width)
	upper := repeat(r.alphabet.Max(), width)
	for i := 1; i < len(ranks); i++ {
		if ranks[i] == ranks[i-1] {
			return nil, NewRangeExceededError(count, capacity,
				fmt.Sprintf("count is too dense for %d-symbol resolution: duplicate rank %q", width, ranks[i]))
		}
	}
	if first, last := ranks[0], ranks[len(ranks)-1]; first == lower || last == upper {
		return nil, NewRangeExceededError(count, capacity,
			fmt.Sprintf("ranks %q..%q collide with a boundary sentinel", first, last))
	}

	r.logger.Debug("generated initial ranks",
		"count", count,
		"width", width,
		"step", step,
	)
	return ranks, nil
}
