package rsafermat

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// PublicExponent is the fixed public exponent e.
const PublicExponent = 65537

// PublicKey is the public half of a keypair.
type PublicKey struct {
	N *big.Int // Modulus p*q
	E *big.Int // Public exponent
}

// PrivateKey is what the key owner keeps after setup.
type PrivateKey struct {
	PublicKey
	D *big.Int // Private exponent, d*e ≡ 1 (mod phi)
}

// KeyMaterial is a freshly generated keypair together with the secrets used
// to build it. The owner must call Erase once setup is done.
type KeyMaterial struct {
	PrivateKey
	P   *big.Int // Next prime above the seed
	Q   *big.Int // Previous prime below the seed
	Phi *big.Int // (p-1)*(q-1)

	erased bool
}

// Public returns a copy of the public key.
func (km *KeyMaterial) Public() PublicKey {
	return PublicKey{N: clone(km.N), E: clone(km.E)}
}

// Erase overwrites p, q and phi in place. Only (n, e, d) survive.
func (km *KeyMaterial) Erase() {
	wipe(km.P)
	wipe(km.Q)
	wipe(km.Phi)
	km.erased = true
}

// Erased reports whether Erase has been called.
func (km *KeyMaterial) Erased() bool {
	return km.erased
}

// NewSeed draws a uniform integer in [0, 2^bits) from r.
// A nil reader means crypto/rand.
func NewSeed(r io.Reader, bits int) (*big.Int, error) {
	if bits <= 0 {
		return nil, errors.Errorf("seed bits must be positive, got %d", bits)
	}
	if r == nil {
		r = rand.Reader
	}
	limit := new(big.Int).Lsh(bigOne, uint(bits))
	seed, err := rand.Int(r, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to draw seed")
	}
	return seed, nil
}

// GenerateKey builds a keypair from the primes adjacent to seed.
//
// p is the next prime above the seed and q the previous one below it, so
// |p - q| is a single prime gap. That is the weakness Factor exploits.
func GenerateKey(seed *big.Int) (*KeyMaterial, error) {
	return generateKey(PrimeSearch{}, seed)
}

func generateKey(ps PrimeSearch, seed *big.Int) (*KeyMaterial, error) {
	p, err := ps.Next(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select p")
	}
	q, err := ps.Prev(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select q")
	}

	km := &KeyMaterial{P: p, Q: q, Phi: totient(p, q)}
	km.N = new(big.Int).Mul(p, q)
	km.E = big.NewInt(PublicExponent)

	km.D, err = PrivateExponent(km.E, km.Phi)
	if err != nil {
		return nil, err
	}

	return km, nil
}

// RecoverKey rebuilds the private key for pub from its factors.
func RecoverKey(pub PublicKey, p, q *big.Int) (*PrivateKey, error) {
	d, err := PrivateExponent(pub.E, totient(p, q))
	if err != nil {
		return nil, err
	}
	return &PrivateKey{PublicKey: pub, D: d}, nil
}

func totient(p, q *big.Int) *big.Int {
	pMinusOne := new(big.Int).Sub(p, bigOne)
	qMinusOne := new(big.Int).Sub(q, bigOne)
	return pMinusOne.Mul(pMinusOne, qMinusOne)
}
