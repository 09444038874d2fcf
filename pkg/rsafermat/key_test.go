package rsafermat

import (
	"errors"
	"math/big"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	km, err := GenerateKey(mustInt(t, testSeed))
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	if km.P.Cmp(mustInt(t, testP)) != 0 {
		t.Errorf("p = %s, want %s", km.P, testP)
	}
	if km.Q.Cmp(mustInt(t, testQ)) != 0 {
		t.Errorf("q = %s, want %s", km.Q, testQ)
	}
	if km.N.Cmp(mustInt(t, testModulus)) != 0 {
		t.Errorf("n = %s, want %s", km.N, testModulus)
	}
	if km.E.Int64() != PublicExponent {
		t.Errorf("e = %s, want %d", km.E, PublicExponent)
	}

	check := new(big.Int).Mul(km.D, km.E)
	check.Mod(check, km.Phi)
	if check.Cmp(bigOne) != 0 {
		t.Errorf("d*e mod phi = %s, want 1", check)
	}
	if km.Erased() {
		t.Error("Fresh key material should not be erased")
	}
}

func TestGenerateKey_InvalidPublicExponent(t *testing.T) {
	// Find a prime p with p ≡ 1 (mod e); using p-1 as the seed makes p the
	// next prime and forces e | phi.
	e := big.NewInt(PublicExponent)
	var p *big.Int
	for k := int64(2); k < 10000; k += 2 {
		candidate := new(big.Int).Mul(e, big.NewInt(k))
		candidate.Add(candidate, bigOne)
		if IsPrime(candidate) {
			p = candidate
			break
		}
	}
	if p == nil {
		t.Fatal("No prime of the form k*65537 + 1 found")
	}

	seed := new(big.Int).Sub(p, bigOne)
	_, err := GenerateKey(seed)
	if !errors.Is(err, ErrInvalidPublicExponent) {
		t.Errorf("Expected ErrInvalidPublicExponent for seed %s, got %v", seed, err)
	}
}

func TestGenerateKey_SeedTooSmall(t *testing.T) {
	_, err := GenerateKey(big.NewInt(2))
	if !errors.Is(err, ErrPrimeSearchExhausted) {
		t.Errorf("Expected ErrPrimeSearchExhausted, got %v", err)
	}
}

func TestKeyMaterial_Erase(t *testing.T) {
	km, err := GenerateKey(mustInt(t, testSeed))
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	n := new(big.Int).Set(km.N)
	d := new(big.Int).Set(km.D)
	pWords := km.P.Bits()
	phiWords := km.Phi.Bits()

	km.Erase()

	if !km.Erased() {
		t.Error("Erased should report true")
	}
	for name, x := range map[string]*big.Int{"p": km.P, "q": km.Q, "phi": km.Phi} {
		if x.Sign() != 0 {
			t.Errorf("%s = %s after erase, want 0", name, x)
		}
	}
	for i, w := range pWords {
		if w != 0 {
			t.Errorf("p backing word %d not overwritten", i)
		}
	}
	for i, w := range phiWords {
		if w != 0 {
			t.Errorf("phi backing word %d not overwritten", i)
		}
	}

	if km.N.Cmp(n) != 0 || km.D.Cmp(d) != 0 || km.E.Int64() != PublicExponent {
		t.Error("Erase must keep n, e and d")
	}
}

func TestKeyMaterial_PublicIsCopy(t *testing.T) {
	km, err := GenerateKey(mustInt(t, testSeed))
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	pub := km.Public()
	pub.N.SetInt64(1)
	if km.N.Cmp(mustInt(t, testModulus)) != 0 {
		t.Error("Public returned an alias of the modulus")
	}
}

func TestRecoverKey(t *testing.T) {
	km, err := GenerateKey(mustInt(t, testSeed))
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	// Factor order must not matter.
	priv, err := RecoverKey(km.Public(), km.Q, km.P)
	if err != nil {
		t.Fatalf("Failed to recover key: %v", err)
	}
	if priv.D.Cmp(km.D) != 0 {
		t.Errorf("Recovered d = %s, want %s", priv.D, km.D)
	}
}

func TestNewSeed(t *testing.T) {
	for _, bits := range []int{8, 64, 1024} {
		seed, err := NewSeed(nil, bits)
		if err != nil {
			t.Fatalf("NewSeed(%d) failed: %v", bits, err)
		}
		if seed.Sign() < 0 || seed.BitLen() > bits {
			t.Errorf("NewSeed(%d) = %s out of range", bits, seed)
		}
	}

	if _, err := NewSeed(nil, 0); err == nil {
		t.Error("Expected error for zero bits")
	}
}
