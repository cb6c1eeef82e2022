// Package profile loads alphabet profiles: the rank symbol set, the fixed
// width used for seeding, and the midpoint strategy.
//
// Profiles are CUE files with a top-level profile field:
//
//	profile: {
//		symbols:  "0123456789"
//		width:    4
//		strategy: "bijective"
//	}
//
// Every field is optional; omitted fields take the lowercase defaults.
package profile

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/lexrank/internal/rank"
)

//go:embed schema.cue
var schemaSrc string

// Profile is a validated alphabet profile.
type Profile struct {
	Symbols  string        `json:"symbols"`
	Width    int           `json:"width"`
	Strategy rank.Strategy `json:"strategy"`

	// Source is the file the profile was loaded from, empty for Default.
	Source string `json:"source,omitempty"`

	alphabet *rank.Alphabet
}

// Default returns the lowercase profile.
func Default() *Profile {
	return &Profile{
		Symbols:  rank.LowercaseSymbols,
		Width:    rank.DefaultWidth,
		Strategy: rank.StrategyBijective,
		alphabet: rank.Lowercase,
	}
}

// Alphabet returns the profile's alphabet.
func (p *Profile) Alphabet() *rank.Alphabet { return p.alphabet }

// Ranker builds a ranker for the profile. A nil logger discards output.
func (p *Profile) Ranker(logger *slog.Logger) (*rank.Ranker, error) {
	r, err := rank.New(
		rank.WithAlphabet(p.alphabet),
		rank.WithWidth(p.Width),
		rank.WithStrategy(p.Strategy),
		rank.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.name(), err)
	}
	return r, nil
}

func (p *Profile) name() string {
	if p.Source == "" {
		return "default"
	}
	return p.Source
}

// Load reads and validates a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("profile not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading profile: %v", err)}
	}
	return Parse(data, path)
}

// Parse validates profile source. filename is used for error positions.
func Parse(data []byte, filename string) (*Profile, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling profile schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fromCUEError(ErrCodeBuildFailed, err)
	}

	pv := v.LookupPath(cue.ParsePath("profile"))
	if !pv.Exists() {
		return nil, &LoadError{Code: ErrCodeMissing, Message: "profile field is required", Pos: v.Pos()}
	}

	unified := schema.LookupPath(cue.ParsePath("#Profile")).Unify(pv)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUEError(ErrCodeInvalid, err)
	}

	symbols, err := stringField(unified, "symbols")
	if err != nil {
		return nil, err
	}
	width, err := intField(unified, "width")
	if err != nil {
		return nil, err
	}
	strategyName, err := stringField(unified, "strategy")
	if err != nil {
		return nil, err
	}
	strategy, err := rank.ParseStrategy(strategyName)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: err.Error(), Pos: unified.Pos()}
	}

	alphabet, err := rank.NewAlphabet(symbols)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeAlphabet,
			Message: err.Error(),
			Pos:     unified.LookupPath(cue.ParsePath("symbols")).Pos(),
		}
	}

	return &Profile{
		Symbols:  symbols,
		Width:    width,
		Strategy: strategy,
		Source:   filename,
		alphabet: alphabet,
	}, nil
}

// field resolves a field, applying its default when one is marked.
func field(v cue.Value, name string) cue.Value {
	f := v.LookupPath(cue.ParsePath(name))
	if d, ok := f.Default(); ok {
		return d
	}
	return f
}

func stringField(v cue.Value, name string) (string, error) {
	s, err := field(v, name).String()
	if err != nil {
		return "", fromCUEError(ErrCodeInvalid, err)
	}
	return s, nil
}

func intField(v cue.Value, name string) (int, error) {
	n, err := field(v, name).Int64()
	if err != nil {
		return 0, fromCUEError(ErrCodeInvalid, err)
	}
	return int(n), nil
}
