package rsafermat

import (
	"math/big"
	"testing"
)

// Primes around the seed 1000000008, small enough for fast tests.
const (
	testSeed    = "1000000008"
	testP       = "1000000009"
	testQ       = "1000000007"
	testModulus = "1000000016000000063"
)

func mustInt(t *testing.T, s string) *big.Int {
	t.Helper()
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("Failed to parse integer %q", s)
	}
	return x
}

// trialPrime is an independent primality check for small values.
func trialPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// sameFactors reports whether {p, q} equals {want1, want2} as an unordered pair.
func sameFactors(p, q, want1, want2 *big.Int) bool {
	return (p.Cmp(want1) == 0 && q.Cmp(want2) == 0) || (p.Cmp(want2) == 0 && q.Cmp(want1) == 0)
}
