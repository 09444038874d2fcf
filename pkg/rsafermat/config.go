package rsafermat

import "github.com/pkg/errors"

// MinSeedBits is the smallest seed Validate accepts. Seeds this small only
// suit tests: the modulus has about 2*SeedBits bits, far too few for
// DefaultPlaintext, and a uniform draw is at most 2 (leaving no prime below
// it) with probability 3/2^MinSeedBits.
const MinSeedBits = 32

// DefaultPlaintext is the message encrypted when none is given.
const DefaultPlaintext = "Google uses Chuck Norris as a search engine."

// Config configures one run of the demonstration.
type Config struct {
	// SeedBits is the bit length of the random seed both primes are drawn around
	SeedBits int

	// MaxFermatIterations bounds the Fermat search
	MaxFermatIterations int

	// Plaintext is the message to encrypt and recover
	Plaintext string
}

// DefaultConfig returns the configuration of the classic demonstration.
func DefaultConfig() Config {
	return Config{
		SeedBits:            1024,
		MaxFermatIterations: 100,
		Plaintext:           DefaultPlaintext,
	}
}

// Validate checks that the configuration can run.
func (c Config) Validate() error {
	if c.SeedBits < MinSeedBits {
		return errors.Errorf("seed bits must be at least %d, got %d", MinSeedBits, c.SeedBits)
	}
	if c.MaxFermatIterations < 1 {
		return errors.Errorf("max Fermat iterations must be at least 1, got %d", c.MaxFermatIterations)
	}
	return nil
}
