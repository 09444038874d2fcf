// Package rsafermat demonstrates why textbook RSA breaks when its two primes
// are chosen close together.
//
// A keypair is built from the primes immediately above and below a single
// random seed. Because |p - q| is tiny compared to √n, Fermat's factorization
// method recovers p and q from the public modulus in a handful of steps, and
// with them the private exponent.
//
// WARNING: This package is a teaching artifact. Arithmetic is not constant
// time and the key generation is deliberately weak.
//
// # Quick Start
//
//	client := rsafermat.NewClient()
//
//	result, err := client.Run(ctx, rsafermat.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Recovered plaintext: %s\n", result.Plaintext.Text)
//
// # Building Blocks
//
// The stages can be driven one by one:
//
//	km, err := rsafermat.GenerateKey(seed)
//	pub := km.Public()
//	d := km.D
//	km.Erase() // p, q and phi are gone, only (n, e, d) remain
//
//	c := pub.Encrypt(rsafermat.Encode("hi"))
//
//	f, err := rsafermat.Factor(pub.N, 100)
//	if err == nil {
//	    err = rsafermat.Verify(pub.N, f)
//	}
//	priv, err := rsafermat.RecoverKey(pub, f.P, f.Q)
//	plain := rsafermat.Decode(priv.Decrypt(c))
//
// # Custom Strategies
//
// Implement the FactorStrategy interface to plug in another search:
//
//	client := rsafermat.NewClient().WithStrategy(&rsafermat.ParallelFermat{Workers: 8})
package rsafermat
