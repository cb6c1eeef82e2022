package testutil

// DefaultRunToken is used when a scenario does not pin its own run token.
const DefaultRunToken = "test-run-default"

// FixedTokenGenerator hands out the same run token on every call, so a
// scenario's trace and golden snapshot do not depend on UUID generation.
//
// Stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a generator for token. An empty token
// becomes DefaultRunToken.
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = DefaultRunToken
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
