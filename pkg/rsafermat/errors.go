package rsafermat

import "github.com/pkg/errors"

var (
	// ErrInvalidPublicExponent is returned when gcd(e, phi) != 1.
	ErrInvalidPublicExponent = errors.New("public exponent is not invertible modulo phi")

	// ErrPrimeSearchExhausted is returned when no prime lies within the search distance.
	ErrPrimeSearchExhausted = errors.New("prime search exhausted")

	// ErrFactorizationFailed is returned when the Fermat search finds no perfect
	// square within its iteration bound.
	ErrFactorizationFailed = errors.New("fermat factorization failed")

	// ErrFactorVerificationFailed is returned when candidate factors are not
	// prime or do not multiply back to the modulus.
	ErrFactorVerificationFailed = errors.New("factor verification failed")

	// ErrDecodeReplacement marks a decode that had to substitute invalid UTF-8.
	// It is never fatal.
	ErrDecodeReplacement = errors.New("plaintext contained invalid UTF-8")
)
