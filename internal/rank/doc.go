// Package rank implements lexicographic fractional ranking.
//
// A rank is an opaque string over a fixed alphabet. Rows sorted by ascending
// byte order of their rank appear in user order, and a row can be inserted
// between two neighbors by computing one new rank from theirs. Existing
// ranks are never rewritten.
//
// ORDERING:
//
// Ranks of unequal length are compared after right-padding the shorter one
// with the alphabet's lowest symbol. Under that rule a rank denotes a number
// in [0, 1) read in radix R, and padding never moves it.
//
// MIDPOINT:
//
// Between pads both neighbors to a common length, reads them as bijective
// base-R integers (digits 1..R, so no digit is zero), and re-encodes the
// floor of their average. Values are math/big integers because repeated
// inserts into one gap grow rank length without bound. When the neighbors
// are adjacent at that length the padded first rank is extended by the mid
// symbol, which adds one digit of room.
//
// SEEDING:
//
// Initial spreads N fixed-width ranks evenly between the lowest and highest
// width-symbol strings, for rows that had no order before.
//
// The package holds no state. Every operation is deterministic, and a
// Ranker is safe for concurrent use. Two callers inserting into the same gap
// get the same rank; serializing such inserts is the storage layer's job.
package rank
