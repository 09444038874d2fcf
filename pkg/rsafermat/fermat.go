package rsafermat

import (
	"context"
	"math/big"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// Factors is the outcome of a successful Fermat search.
type Factors struct {
	P          *big.Int // a + b
	Q          *big.Int // a - b
	A          *big.Int // Value of a where a² - n was a perfect square
	B          *big.Int // √(a² - n)
	Iterations int      // Number of a candidates examined, including the winning one
}

// Factor recovers the two factors of n when they are close together.
//
// Starting from a = isqrt(n) + 1 it tests whether a² - n is a perfect square,
// incrementing a at most maxIterations times. The returned factors are only
// candidates: callers must Verify them before trusting them.
func Factor(n *big.Int, maxIterations int) (*Factors, error) {
	return SequentialFermat{}.Factor(context.Background(), n, maxIterations)
}

// Verify checks that both candidate factors are prime and multiply to n.
func Verify(n *big.Int, f *Factors) error {
	if f == nil || f.P == nil || f.Q == nil {
		return errors.Wrap(ErrFactorVerificationFailed, "no candidate factors")
	}
	if !IsPrime(f.P) {
		return errors.Wrapf(ErrFactorVerificationFailed, "p = %s is not prime", f.P)
	}
	if !IsPrime(f.Q) {
		return errors.Wrapf(ErrFactorVerificationFailed, "q = %s is not prime", f.Q)
	}
	if new(big.Int).Mul(f.P, f.Q).Cmp(n) != 0 {
		return errors.Wrap(ErrFactorVerificationFailed, "p*q does not equal n")
	}
	return nil
}

// fermatStart returns isqrt(n) + 1, the first a examined.
func fermatStart(n *big.Int) *big.Int {
	a := new(big.Int).Sqrt(n)
	return a.Add(a, bigOne)
}

// searchStripe examines the candidates a = start + i for
// i = offset, offset+stride, ... while i < limit.
func searchStripe(ctx context.Context, n, start *big.Int, offset, stride, limit int) (*Factors, error) {
	a := new(big.Int).Add(start, big.NewInt(int64(offset)))
	step := big.NewInt(int64(stride))
	bSquared := new(big.Int)

	for i := offset; i < limit; i += stride {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bSquared.Mul(a, a)
		bSquared.Sub(bSquared, n)
		if b, ok := IsSquare(bSquared); ok {
			return &Factors{
				P:          new(big.Int).Add(a, b),
				Q:          new(big.Int).Sub(a, b),
				A:          new(big.Int).Set(a),
				B:          b,
				Iterations: i + 1,
			}, nil
		}

		a.Add(a, step)
	}

	return nil, nil
}

// SequentialFermat is the plain single-threaded Fermat search.
type SequentialFermat struct{}

// Name returns the name of this strategy.
func (SequentialFermat) Name() string {
	return "SequentialFermat"
}

// Factor implements the FactorStrategy interface.
func (SequentialFermat) Factor(ctx context.Context, n *big.Int, maxIterations int) (*Factors, error) {
	if err := checkFactorInput(n, maxIterations); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"bits":           n.BitLen(),
		"max_iterations": maxIterations,
	}).Debug("Starting Fermat search")

	f, err := searchStripe(ctx, n, fermatStart(n), 0, 1, maxIterations)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.Wrapf(ErrFactorizationFailed, "no perfect square within %d iterations", maxIterations)
	}
	return f, nil
}

func checkFactorInput(n *big.Int, maxIterations int) error {
	if n == nil || n.Sign() <= 0 {
		return errors.Wrap(ErrFactorizationFailed, "modulus must be positive")
	}
	if maxIterations <= 0 {
		return errors.Wrapf(ErrFactorizationFailed, "iteration bound must be positive, got %d", maxIterations)
	}
	return nil
}

// AttackState is a step of the Fermat attack.
type AttackState int

const (
	StateSearching AttackState = iota
	StateSquareFound
	StateVerifying
	StateVerified
	StateVerificationFailed
	StateExhausted
)

func (s AttackState) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateSquareFound:
		return "square_found"
	case StateVerifying:
		return "verifying"
	case StateVerified:
		return "verified"
	case StateVerificationFailed:
		return "verification_failed"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can follow s.
func (s AttackState) Terminal() bool {
	return s == StateVerified || s == StateVerificationFailed || s == StateExhausted
}

// Attack drives one factorization attempt through search and verification.
// A fresh Attack is needed for every modulus.
type Attack struct {
	N             *big.Int
	MaxIterations int
	Strategy      FactorStrategy

	// OnTransition, if set, is called after every state change.
	OnTransition func(state AttackState, f *Factors)

	state   AttackState
	history []AttackState
	aborted bool
}

// NewAttack prepares an attack on n with the given strategy
// (nil means SequentialFermat).
func NewAttack(n *big.Int, maxIterations int, strategy FactorStrategy) *Attack {
	if strategy == nil {
		strategy = SequentialFermat{}
	}
	return &Attack{
		N:             n,
		MaxIterations: maxIterations,
		Strategy:      strategy,
		state:         StateSearching,
		history:       []AttackState{StateSearching},
	}
}

// State returns the current state.
func (a *Attack) State() AttackState {
	return a.state
}

// History returns every state visited so far, starting with StateSearching.
func (a *Attack) History() []AttackState {
	return append([]AttackState(nil), a.history...)
}

func (a *Attack) enter(state AttackState, f *Factors) {
	a.state = state
	a.history = append(a.history, state)
	if a.OnTransition != nil {
		a.OnTransition(state, f)
	}
}

// Run searches for the factors and verifies them. It can only be run once.
//
// Only a search that used up its iteration bound ends in StateExhausted. Any
// other strategy error, such as ctx being cancelled, is returned as is and
// leaves the attack in StateSearching.
func (a *Attack) Run(ctx context.Context) (*Factors, error) {
	if len(a.history) == 0 {
		a.history = []AttackState{StateSearching}
	}
	if a.aborted || a.state != StateSearching || len(a.history) != 1 {
		return nil, errors.Errorf("attack already ran (state %s)", a.state)
	}
	if a.Strategy == nil {
		a.Strategy = SequentialFermat{}
	}

	f, err := a.Strategy.Factor(ctx, a.N, a.MaxIterations)
	if err != nil {
		if errors.Is(err, ErrFactorizationFailed) {
			a.enter(StateExhausted, nil)
		} else {
			a.aborted = true
		}
		return nil, err
	}
	a.enter(StateSquareFound, f)

	a.enter(StateVerifying, f)
	if err := Verify(a.N, f); err != nil {
		a.enter(StateVerificationFailed, f)
		return nil, err
	}
	a.enter(StateVerified, f)

	return f, nil
}
