package rsafermat

import (
	"math/big"
	"sync"
)

// Stage names one step of the demonstration pipeline.
type Stage string

const (
	StageSeed                     Stage = "seed"
	StagePrimeP                   Stage = "prime_p"
	StagePrimeQ                   Stage = "prime_q"
	StageModulus                  Stage = "modulus"
	StageTotient                  Stage = "totient"
	StagePublicExponent           Stage = "public_exponent"
	StagePrivateExponent          Stage = "private_exponent"
	StageErase                    Stage = "erase"
	StagePlaintext                Stage = "plaintext"
	StageCiphertext               Stage = "ciphertext"
	StageAttack                   Stage = "attack"
	StageFermatA                  Stage = "fermat_a"
	StageFermatB                  Stage = "fermat_b"
	StageRecoveredP               Stage = "recovered_p"
	StageRecoveredQ               Stage = "recovered_q"
	StageRecoveredTotient         Stage = "recovered_totient"
	StageRecoveredPrivateExponent Stage = "recovered_private_exponent"
	StageDecryption               Stage = "decryption"
	StageDecoded                  Stage = "decoded"
)

// Event reports a value computed by a pipeline stage.
type Event struct {
	Stage  Stage
	Label  string   // Human-readable description of the value
	Value  *big.Int // nil for events without a numeric value
	BitLen int

	// Set on StageAttack events only.
	State      AttackState
	Iterations int

	// Set on StagePlaintext and StageDecoded events.
	Text      string
	Corrupted bool
}

func newEvent(stage Stage, label string, value *big.Int) Event {
	ev := Event{Stage: stage, Label: label}
	if value != nil {
		ev.Value = new(big.Int).Set(value)
		ev.BitLen = value.BitLen()
	}
	return ev
}

// Observer receives pipeline events in order.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

// Recorder is an Observer that keeps every event it sees.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Observe implements Observer.
func (r *Recorder) Observe(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Find returns the first recorded event for stage.
func (r *Recorder) Find(stage Stage) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Stage == stage {
			return ev, true
		}
	}
	return Event{}, false
}
