package rank

import (
	"fmt"
	"io"
	"log/slog"
)

// DefaultWidth is the fixed rank width used by Initial.
const DefaultWidth = 3

// MaxWidth bounds the Initial width so the addressable space fits in an int.
const MaxWidth = 6

// Strategy names a midpoint algorithm.
type Strategy string

const (
	// StrategyBijective averages bijective base-R integers. Canonical.
	StrategyBijective Strategy = "bijective"

	// StrategySubtractive halves the zero-based digit difference with
	// explicit borrow and carry passes. Kept for cross-validation.
	StrategySubtractive Strategy = "subtractive"
)

// Strategies lists the allowed strategy names.
var Strategies = []Strategy{StrategyBijective, StrategySubtractive}

// ParseStrategy converts a name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown midpoint strategy %q: must be one of %v", name, Strategies)
}

// midpointer computes the rank halfway between two equal-length ranks
// first < second. ok is false when the two are adjacent at this length.
type midpointer interface {
	midpoint(first, second string) (mid string, ok bool)
}

// Ranker generates ranks over one alphabet.
//
// A Ranker is immutable after New returns and safe for concurrent use.
type Ranker struct {
	alphabet *Alphabet
	width    int
	strategy Strategy
	mid      midpointer
	logger   *slog.Logger
}

type options struct {
	alphabet *Alphabet
	width    int
	strategy Strategy
	logger   *slog.Logger
}

// Option configures a Ranker.
type Option func(*options)

// WithAlphabet sets the symbol set. Defaults to Lowercase.
func WithAlphabet(a *Alphabet) Option {
	return func(o *options) { o.alphabet = a }
}

// WithWidth sets the fixed width of ranks produced by Initial.
func WithWidth(width int) Option {
	return func(o *options) { o.width = width }
}

// WithStrategy selects the midpoint algorithm.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithLogger sets the logger used for debug output. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Ranker.
func New(opts ...Option) (*Ranker, error) {
	o := options{
		alphabet: Lowercase,
		width:    DefaultWidth,
		strategy: StrategyBijective,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.alphabet == nil {
		return nil, fmt.Errorf("alphabet is required")
	}
	if o.width < 1 || o.width > MaxWidth {
		return nil, fmt.Errorf("width %d out of range [1, %d]", o.width, MaxWidth)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &Ranker{
		alphabet: o.alphabet,
		width:    o.width,
		strategy: o.strategy,
		logger:   o.logger,
	}
	switch o.strategy {
	case StrategyBijective:
		r.mid = bijective{alphabet: o.alphabet}
	case StrategySubtractive:
		r.mid = subtractive{alphabet: o.alphabet}
	default:
		return nil, fmt.Errorf("unknown midpoint strategy %q: must be one of %v", o.strategy, Strategies)
	}
	return r, nil
}

// Default returns a Ranker over the lowercase alphabet with width 3 and the
// bijective strategy.
func Default() *Ranker {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Alphabet returns the ranker's alphabet.
func (r *Ranker) Alphabet() *Alphabet { return r.alphabet }

// Width returns the fixed width used by Initial.
func (r *Ranker) Width() int { return r.width }

// Strategy returns the midpoint strategy in use.
func (r *Ranker) Strategy() Strategy { return r.strategy }

// Compare orders two ranks under the ranker's alphabet. Both must be valid;
// use CompareRanks for untrusted input.
func (r *Ranker) Compare(x, y string) int { return r.alphabet.Compare(x, y) }

// CompareRanks validates x and y and then orders them like Compare.
func (r *Ranker) CompareRanks(x, y string) (int, error) {
	if err := r.alphabet.Validate(x); err != nil {
		return 0, err
	}
	if err := r.alphabet.Validate(y); err != nil {
		return 0, err
	}
	return r.alphabet.Compare(x, y), nil
}

var std = Default()

// Between returns a rank strictly between first and second using the
// default ranker.
func Between(first, second string) (string, error) { return std.Between(first, second) }

// Initial returns count evenly spaced seed ranks using the default ranker.
func Initial(count int) ([]string, error) { return std.Initial(count) }

// Compare orders two ranks under the lowercase alphabet.
func Compare(x, y string) int { return std.Compare(x, y) }

// Subdivide repeatedly inserts into one gap using the default ranker.
func Subdivide(first, second string, times int, toward Direction) ([]string, error) {
	return std.Subdivide(first, second, times, toward)
}
