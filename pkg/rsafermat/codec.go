package rsafermat

import (
	"math/big"
	"unicode/utf8"
)

// DecodeResult is the text recovered from a plaintext integer.
type DecodeResult struct {
	Text      string
	Corrupted bool // Some bytes were not valid UTF-8 and were replaced with U+FFFD
}

// Err returns ErrDecodeReplacement for a corrupted decode and nil otherwise.
func (r DecodeResult) Err() error {
	if r.Corrupted {
		return ErrDecodeReplacement
	}
	return nil
}

// Encode interprets the UTF-8 bytes of text as a big-endian unsigned integer.
// Leading NUL bytes do not survive the trip.
func Encode(text string) *big.Int {
	return new(big.Int).SetBytes([]byte(text))
}

// Decode renders m as its minimal big-endian bytes and reads them as UTF-8.
// Each invalid byte becomes its own U+FFFD, so a truncated multi-byte
// sequence yields one replacement per byte rather than one per sequence.
// The result is flagged rather than failed.
func Decode(m *big.Int) DecodeResult {
	raw := new(big.Int).Abs(m).Bytes()
	if utf8.Valid(raw) {
		return DecodeResult{Text: string(raw)}
	}
	// Converting to runes maps every invalid byte to utf8.RuneError.
	return DecodeResult{Text: string([]rune(string(raw))), Corrupted: true}
}
