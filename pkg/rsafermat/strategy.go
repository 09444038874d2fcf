package rsafermat

import (
	"context"
	"math/big"
)

// FactorStrategy defines the interface for factorization strategies.
// Implement this interface to plug a custom search into the Client.
type FactorStrategy interface {
	// Factor searches for the two factors of n, examining at most
	// maxIterations candidates. It returns an error wrapping
	// ErrFactorizationFailed when the bound is exhausted, or the context
	// error when cancelled. Results are unverified candidates.
	Factor(ctx context.Context, n *big.Int, maxIterations int) (*Factors, error)

	// Name returns a human-readable name for this strategy.
	Name() string
}

var (
	_ FactorStrategy = SequentialFermat{}
	_ FactorStrategy = (*ParallelFermat)(nil)
)
