package rsafermat

import "math/big"

// Encrypt returns m^e mod n. m must lie in [0, n); nothing checks it.
func Encrypt(m, e, n *big.Int) *big.Int {
	return new(big.Int).Exp(m, e, n)
}

// Decrypt returns c^d mod n. c must lie in [0, n); nothing checks it.
func Decrypt(c, d, n *big.Int) *big.Int {
	return new(big.Int).Exp(c, d, n)
}

// Encrypt encrypts m under the public key.
func (pub PublicKey) Encrypt(m *big.Int) *big.Int {
	return Encrypt(m, pub.E, pub.N)
}

// Fits reports whether m is a valid plaintext for this key.
func (pub PublicKey) Fits(m *big.Int) bool {
	return m.Sign() >= 0 && m.Cmp(pub.N) < 0
}

// Decrypt decrypts c with the private exponent.
func (priv *PrivateKey) Decrypt(c *big.Int) *big.Int {
	return Decrypt(c, priv.D, priv.N)
}
