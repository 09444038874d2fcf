package rsafermat

import (
	"math/big"

	"github.com/pkg/errors"
)

// millerRabinRounds is passed to big.Int.ProbablyPrime. Below 2^64 the test is
// exact; above it Baillie-PSW has no known counterexample.
const millerRabinRounds = 20

// DefaultMaxPrimeDistance bounds how far NextPrime and PrevPrime walk from
// their argument. Prime gaps at 1024 bits average around 710.
const DefaultMaxPrimeDistance = 1 << 20

// smallPrimesProduct is 3*5*7*...*53.
var smallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)

var smallPrimes = []uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

// PrimeSearch walks odd candidates away from a starting point until it finds a
// prime or exceeds MaxDistance.
type PrimeSearch struct {
	// MaxDistance is the largest |candidate - x| examined (0 = DefaultMaxPrimeDistance)
	MaxDistance int64
}

// IsPrime reports whether x is prime.
func IsPrime(x *big.Int) bool {
	return x.ProbablyPrime(millerRabinRounds)
}

// NextPrime returns the smallest prime strictly greater than x.
func NextPrime(x *big.Int) (*big.Int, error) {
	return PrimeSearch{}.Next(x)
}

// PrevPrime returns the largest prime strictly less than x.
func PrevPrime(x *big.Int) (*big.Int, error) {
	return PrimeSearch{}.Prev(x)
}

// Next returns the smallest prime strictly greater than x.
func (ps PrimeSearch) Next(x *big.Int) (*big.Int, error) {
	if x.Cmp(bigTwo) < 0 {
		return big.NewInt(2), nil
	}
	return ps.walk(x, 1)
}

// Prev returns the largest prime strictly less than x.
func (ps PrimeSearch) Prev(x *big.Int) (*big.Int, error) {
	if x.Cmp(bigTwo) <= 0 {
		return nil, errors.Wrapf(ErrPrimeSearchExhausted, "no prime below %s", x)
	}
	if x.Cmp(big.NewInt(3)) == 0 {
		return big.NewInt(2), nil
	}
	return ps.walk(x, -1)
}

// walk steps from x in direction dir (+1 or -1) over odd numbers only.
// Callers guarantee the first odd candidate is at least 3.
func (ps PrimeSearch) walk(x *big.Int, dir int64) (*big.Int, error) {
	maxDistance := ps.MaxDistance
	if maxDistance <= 0 {
		maxDistance = DefaultMaxPrimeDistance
	}

	candidate := new(big.Int).Add(x, big.NewInt(dir))
	if candidate.Bit(0) == 0 {
		candidate.Add(candidate, big.NewInt(dir))
	}
	step := big.NewInt(2 * dir)

	distance := new(big.Int).Sub(candidate, x)
	distance.Abs(distance)
	limit := big.NewInt(maxDistance)

	for distance.Cmp(limit) <= 0 {
		if candidate.Cmp(bigTwo) < 0 {
			break
		}
		if passesSieve(candidate) && IsPrime(candidate) {
			return candidate, nil
		}
		candidate.Add(candidate, step)
		distance.Add(distance, bigTwo)
	}

	return nil, errors.Wrapf(ErrPrimeSearchExhausted, "no prime within %d of %s", maxDistance, x)
}

// passesSieve rejects odd candidates with a small prime factor, leaving the
// small primes themselves alone.
func passesSieve(candidate *big.Int) bool {
	if candidate.IsUint64() && candidate.Uint64() <= smallPrimes[len(smallPrimes)-1] {
		return true
	}
	r := new(big.Int).Mod(candidate, smallPrimesProduct).Uint64()
	for _, p := range smallPrimes {
		if r%p == 0 {
			return false
		}
	}
	return true
}
