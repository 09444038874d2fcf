package rsafermat

import "math/big"

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// IsSquare reports whether x is a perfect square and returns its root.
// Negative values are never squares.
func IsSquare(x *big.Int) (*big.Int, bool) {
	if x.Sign() < 0 {
		return nil, false
	}
	root := new(big.Int).Sqrt(x)
	check := new(big.Int).Mul(root, root)
	if check.Cmp(x) != 0 {
		return nil, false
	}
	return root, true
}

// wipe zeroes the words backing x and then resets it to 0.
func wipe(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	x.SetInt64(0)
}

func clone(x *big.Int) *big.Int {
	if x == nil {
		return nil
	}
	return new(big.Int).Set(x)
}
