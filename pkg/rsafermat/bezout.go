package rsafermat

import (
	"math/big"

	"github.com/pkg/errors"
)

// Bezout holds the gcd of (a, b) and coefficients with S*a + T*b == GCD.
type Bezout struct {
	GCD *big.Int
	S   *big.Int
	T   *big.Int
}

// Solve runs the extended Euclidean algorithm on non-negative a and b.
//
// The coefficients match the recursive definition
//
//	solve(0, b)  = (b, 0, 1)
//	solve(a, b)  = (g, y1 - (b/a)*x1, x1)  where (g, x1, y1) = solve(b mod a, a)
//
// but the recursion is unrolled: the quotients are collected on the way down
// and the back-substitution runs over them in reverse.
func Solve(a, b *big.Int) Bezout {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)

	var quotients []*big.Int
	for x.Sign() != 0 {
		q, r := new(big.Int).DivMod(y, x, new(big.Int))
		quotients = append(quotients, q)
		x, y = r, x
	}

	s, t := big.NewInt(0), big.NewInt(1)
	for i := len(quotients) - 1; i >= 0; i-- {
		next := new(big.Int).Mul(quotients[i], s)
		next.Sub(t, next)
		s, t = next, s
	}

	return Bezout{GCD: y, S: s, T: t}
}

// PrivateExponent returns d with d*e ≡ 1 (mod phi), normalized into [0, phi).
//
// It solves Bezout on (phi, e) and reduces the coefficient of e modulo phi.
func PrivateExponent(e, phi *big.Int) (*big.Int, error) {
	if phi.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidPublicExponent, "phi must be positive, got %s", phi)
	}

	bz := Solve(phi, e)
	if bz.GCD.Cmp(bigOne) != 0 {
		return nil, errors.Wrapf(ErrInvalidPublicExponent, "gcd(e, phi) = %s", bz.GCD)
	}

	return new(big.Int).Mod(bz.T, phi), nil
}
