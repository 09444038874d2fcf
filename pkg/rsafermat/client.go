package rsafermat

import (
	"context"
	"io"
	"math/big"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// Result is everything a run produced.
type Result struct {
	Public     PublicKey   // What the attacker sees
	Owner      *PrivateKey // What the key owner kept after erasure
	Ciphertext *big.Int
	Factors    *Factors    // Verified factors recovered from the modulus
	Recovered  *PrivateKey // Private key rebuilt by the attacker
	Plaintext  DecodeResult
}

// Client provides a high-level API for running the full demonstration.
type Client struct {
	strategy FactorStrategy
	observer Observer
	rand     io.Reader
	primes   PrimeSearch
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		strategy: SequentialFermat{},
		observer: nopObserver{},
	}
}

// WithStrategy sets a custom factorization strategy.
func (c *Client) WithStrategy(strategy FactorStrategy) *Client {
	c.strategy = strategy
	return c
}

// WithObserver sets the receiver of pipeline events.
func (c *Client) WithObserver(observer Observer) *Client {
	if observer == nil {
		observer = nopObserver{}
	}
	c.observer = observer
	return c
}

// WithRand sets the source of the random seed (default crypto/rand).
func (c *Client) WithRand(r io.Reader) *Client {
	c.rand = r
	return c
}

// WithPrimeSearch sets the prime search bounds used during key generation.
func (c *Client) WithPrimeSearch(ps PrimeSearch) *Client {
	c.primes = ps
	return c
}

// Run draws a random seed of cfg.SeedBits bits and runs the demonstration.
func (c *Client) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	seed, err := NewSeed(c.rand, cfg.SeedBits)
	if err != nil {
		return nil, errors.Wrap(err, "seed")
	}
	return c.RunWithSeed(ctx, seed, cfg)
}

// RunWithSeed runs key generation, encryption, the Fermat attack, key
// recovery and decryption around the given seed. cfg.SeedBits is ignored.
//
// Every error is prefixed with the stage that failed and still matches its
// sentinel through errors.Is.
func (c *Client) RunWithSeed(ctx context.Context, seed *big.Int, cfg Config) (*Result, error) {
	if cfg.MaxFermatIterations < 1 {
		return nil, errors.Errorf("invalid config: max Fermat iterations must be at least 1, got %d", cfg.MaxFermatIterations)
	}
	emit := c.observer.Observe

	// Key owner
	emit(newEvent(StageSeed, "Random seed both primes are chosen around", seed))

	km, err := generateKey(c.primes, seed)
	if err != nil {
		return nil, errors.Wrap(err, "keygen")
	}
	emit(newEvent(StagePrimeP, "p (next prime above the seed)", km.P))
	emit(newEvent(StagePrimeQ, "q (previous prime below the seed)", km.Q))
	emit(newEvent(StageModulus, "n = p*q (public)", km.N))
	emit(newEvent(StageTotient, "phi(n) = (p-1)*(q-1) (secret)", km.Phi))
	emit(newEvent(StagePublicExponent, "e (public)", km.E))
	emit(newEvent(StagePrivateExponent, "d = e^-1 mod phi(n) (private)", km.D))

	pub := km.Public()
	owner := &PrivateKey{PublicKey: km.Public(), D: clone(km.D)}
	km.Erase()
	emit(newEvent(StageErase, "p, q and phi(n) erased", nil))

	// Sender
	m := Encode(cfg.Plaintext)
	if !pub.Fits(m) {
		log.WithFields(log.Fields{
			"plaintext_bits": m.BitLen(),
			"modulus_bits":   pub.N.BitLen(),
		}).Warn("Plaintext does not fit below the modulus, decryption will not round-trip")
	}
	plainEv := newEvent(StagePlaintext, "Plaintext", m)
	plainEv.Text = cfg.Plaintext
	emit(plainEv)

	ciphertext := pub.Encrypt(m)
	emit(newEvent(StageCiphertext, "Ciphertext = m^e mod n", ciphertext))

	// Attacker: only pub and ciphertext from here on
	attack := NewAttack(pub.N, cfg.MaxFermatIterations, c.strategy)
	attack.OnTransition = func(state AttackState, f *Factors) {
		ev := Event{Stage: StageAttack, Label: "Fermat attack " + state.String(), State: state}
		if f != nil {
			ev.Iterations = f.Iterations
		}
		emit(ev)
	}
	emit(Event{Stage: StageAttack, Label: "Fermat attack " + StateSearching.String(), State: StateSearching})

	factors, err := attack.Run(ctx)
	if err != nil {
		if attack.State() == StateVerificationFailed {
			return nil, errors.Wrap(err, "verify")
		}
		return nil, errors.Wrap(err, "attack")
	}
	emit(newEvent(StageFermatA, "a", factors.A))
	emit(newEvent(StageFermatB, "b", factors.B))
	emit(newEvent(StageRecoveredP, "p = a+b", factors.P))
	emit(newEvent(StageRecoveredQ, "q = a-b", factors.Q))
	emit(newEvent(StageRecoveredTotient, "phi(n) recomputed from p and q", totient(factors.P, factors.Q)))

	recovered, err := RecoverKey(pub, factors.P, factors.Q)
	if err != nil {
		return nil, errors.Wrap(err, "recover")
	}
	emit(newEvent(StageRecoveredPrivateExponent, "d (recovered)", recovered.D))

	decrypted := recovered.Decrypt(ciphertext)
	emit(newEvent(StageDecryption, "Decrypted m = c^d mod n", decrypted))

	plain := Decode(decrypted)
	decodedEv := newEvent(StageDecoded, "Recovered plaintext", nil)
	decodedEv.Text = plain.Text
	decodedEv.Corrupted = plain.Corrupted
	emit(decodedEv)

	return &Result{
		Public:     pub,
		Owner:      owner,
		Ciphertext: ciphertext,
		Factors:    factors,
		Recovered:  recovered,
		Plaintext:  plain,
	}, nil
}
