package crypto

import (
	"bytes"
	"fmt"
	"math/big"

	"lukechampine.com/uint128"
)

// FpEncodedLen is the length of the binary encoding of a field element.
const FpEncodedLen = 16

// The wire form of a field element is its canonical value, an unsigned
// 128-bit integer strictly below p. Decoders reject p and everything above
// it, so each element has exactly one encoding.

// MarshalBinary encodes the canonical value of a as 16 big-endian bytes.
func (a Fp) MarshalBinary() ([]byte, error) {
	buf := make([]byte, FpEncodedLen)
	a.Canonical().PutBytesBE(buf)
	return buf, nil
}

// UnmarshalBinary decodes 16 big-endian bytes into a. Integers >= p fail
// with a *RangeError.
func (a *Fp) UnmarshalBinary(data []byte) error {
	if len(data) != FpEncodedLen {
		return fmt.Errorf("fp: invalid encoding length %d, want %d", len(data), FpEncodedLen)
	}
	return a.setCanonical(uint128.FromBytesBE(data))
}

// MarshalText encodes the canonical value of a in decimal.
func (a Fp) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a decimal integer into a. Integers outside [0, p)
// fail with a *RangeError. Only the form MarshalText produces is accepted:
// no sign other than a leading minus, no leading zeros.
func (a *Fp) UnmarshalText(text []byte) error {
	if !isStrictDecimal(text) {
		return fmt.Errorf("fp: invalid decimal integer %q", text)
	}
	v, ok := new(big.Int).SetString(string(text), 10)
	if !ok {
		return fmt.Errorf("fp: invalid decimal integer %q", text)
	}
	if v.Sign() < 0 || v.Cmp(fpPrime.Big()) >= 0 {
		return &RangeError{Value: v}
	}
	a.repr = uint128.FromBig(v)
	return nil
}

// MarshalJSON encodes a as a bare JSON number, the way big.Int values are
// carried in round messages.
func (a Fp) MarshalJSON() ([]byte, error) {
	return a.MarshalText()
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Fp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	return a.UnmarshalText(data)
}

func (a *Fp) setCanonical(x uint128.Uint128) error {
	if x.Cmp(fpPrime) >= 0 {
		return &RangeError{Value: x.Big()}
	}
	a.repr = x
	return nil
}

func isStrictDecimal(text []byte) bool {
	digits := bytes.TrimPrefix(text, []byte("-"))
	if len(digits) == 0 || digits[0] == '0' && (len(digits) > 1 || len(digits) < len(text)) {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
