package crypto

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"lukechampine.com/uint128"
)

// fpPrime is the field order p = 2^127 - 1.
var fpPrime = uint128.New(math.MaxUint64, math.MaxUint64>>1)

// ErrOutOfRange is wrapped by every RangeError.
var ErrOutOfRange = errors.New("field element out of range")

// ErrZeroInverse is returned when inverting the zero element.
var ErrZeroInverse = errors.New("zero has no multiplicative inverse")

// RangeError reports an integer that is not a valid field element encoding.
// Value is the offending integer; the accepted range is [0, 2^127 - 1).
type RangeError struct {
	Value *big.Int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("fp: integer %#x not in canonical range [0, %#x)", e.Value, fpPrime.Big())
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Fp is an element of the prime field of integers modulo p = 2^127 - 1.
//
// The internal representation repr always satisfies 0 <= repr <= p. Zero
// therefore has two representations, 0 and p. Additions and multiplications
// reduce with a single Mersenne fold and never branch on the result, which is
// what lets p survive as a representation of zero. Every comparison and every
// encoding goes through Canonical, never through repr.
//
// The zero value is the zero element. Fp is a plain value type and is safe to
// copy.
type Fp struct {
	repr uint128.Uint128
}

// FpPrime returns the field order p = 2^127 - 1.
func FpPrime() uint128.Uint128 {
	return fpPrime
}

// FpZero returns the additive identity.
func FpZero() Fp {
	return Fp{}
}

// FpOne returns the multiplicative identity.
func FpOne() Fp {
	return Fp{repr: uint128.From64(1)}
}

// FpFromUint64 returns the field element v. Every uint64 is below p.
func FpFromUint64(v uint64) Fp {
	return Fp{repr: uint128.From64(v)}
}

// FpFromCanonicalResidue returns the field element whose representation is
// exactly x. x == p is accepted and yields the second representation of zero.
// Values above p are rejected with a RangeError.
func FpFromCanonicalResidue(x uint128.Uint128) (Fp, error) {
	if x.Cmp(fpPrime) > 0 {
		return Fp{}, &RangeError{Value: x.Big()}
	}
	return Fp{repr: x}, nil
}

// MustFpFromCanonicalResidue is like FpFromCanonicalResidue but panics on
// values above p. It is meant for constants and for callers that already
// hold a value below 2^127.
func MustFpFromCanonicalResidue(x uint128.Uint128) Fp {
	a, err := FpFromCanonicalResidue(x)
	if err != nil {
		panic(err)
	}
	return a
}

// FpFromUint128DiscardMSB clears bit 127 of x and returns the remaining 127
// bits as a field element.
//
// For uniformly random x the result is biased toward zero: the 2^127 possible
// inputs map onto p field elements, with both 0 and p landing on zero. Zero is
// therefore drawn with probability 2^-126 instead of 2^-127, every other
// element with probability 2^-127. The bias is accepted for masking; use
// FpRandomRejection when an exactly uniform element is required.
func FpFromUint128DiscardMSB(x uint128.Uint128) Fp {
	return Fp{repr: x.And(fpPrime)}
}

// FpRandomRejection draws a uniformly random field element from src,
// resampling whenever the 127-bit draw equals p.
func FpRandomRejection(src Source) Fp {
	for {
		x := Uint128From(src).And(fpPrime)
		if !x.Equals(fpPrime) {
			return Fp{repr: x}
		}
	}
}

// Canonical returns the integer in [0, p) that a denotes.
func (a Fp) Canonical() uint128.Uint128 {
	if a.repr.Equals(fpPrime) {
		return uint128.Zero
	}
	return a.repr
}

// Big returns the canonical value of a as a big.Int.
func (a Fp) Big() *big.Int {
	return a.Canonical().Big()
}

// String returns the canonical value of a in decimal.
func (a Fp) String() string {
	return a.Canonical().String()
}

// IsZero reports whether a is the zero element, in either representation.
func (a Fp) IsZero() bool {
	return a.repr.IsZero() || a.repr.Equals(fpPrime)
}

// Equal reports whether a and b denote the same field element.
func (a Fp) Equal(b Fp) bool {
	return a.Canonical().Equals(b.Canonical())
}

// Cmp compares the canonical values of a and b and returns -1, 0 or +1.
// Note that an element represented by p sorts as zero.
func (a Fp) Cmp(b Fp) int {
	return a.Canonical().Cmp(b.Canonical())
}

// Neg returns -a. repr <= p, so p - repr neither underflows nor exceeds p.
func (a Fp) Neg() Fp {
	return Fp{repr: fpPrime.Sub(a.repr)}
}

// Add returns a + b.
func (a Fp) Add(b Fp) Fp {
	// Both operands are at most p < 2^127, the sum fits in 128 bits.
	return Fp{repr: checkReduced(reduce(a.repr.Add(b.repr)))}
}

// Sub returns a - b.
func (a Fp) Sub(b Fp) Fp {
	return a.Add(b.Neg())
}

// Mul returns a * b.
//
// The operands are split into 64-bit limbs (the high limbs hold at most 63
// bits) and multiplied into a 254-bit product held as a (hi, lo) pair of
// 128-bit words. The product is folded with reducePair and then folded again
// with reduce: a single fold can leave a value up to 2^128 - 3, which only
// the second fold brings back to at most p.
func (a Fp) Mul(b Fp) Fp {
	ah, al := a.repr.Hi, a.repr.Lo
	bh, bl := b.repr.Hi, b.repr.Lo

	// (64 bits * 63 bits) + (64 bits * 63 bits) = 128 bits
	mid := uint128.From64(ah).Mul64(bl).Add(uint128.From64(bh).Mul64(al))

	// (64 bits * 64 bits) + (mid.Lo << 64) = 129 bits
	ll := uint128.From64(al).Mul64(bl)
	lo := ll.AddWrap(uint128.New(0, mid.Lo))
	var carry uint64
	if lo.Cmp(ll) < 0 {
		carry = 1
	}

	// (63 bits * 63 bits) + 64 bits + 1 bit = 127 bits
	hi := uint128.From64(ah).Mul64(bh).Add64(mid.Hi).Add64(carry)

	return Fp{repr: checkReduced(reduce(reducePair(hi, lo)))}
}

// AddAssign sets a = a + b.
func (a *Fp) AddAssign(b Fp) {
	*a = a.Add(b)
}

// SubAssign sets a = a - b.
func (a *Fp) SubAssign(b Fp) {
	*a = a.Sub(b)
}

// MulAssign sets a = a * b.
func (a *Fp) MulAssign(b Fp) {
	*a = a.Mul(b)
}

// Pow returns a^e by square-and-multiply over the 128 bits of e.
// 0^0 is one.
func (a Fp) Pow(e uint128.Uint128) Fp {
	res := FpOne()
	for i := 127 - e.LeadingZeros(); i >= 0; i-- {
		res = res.Mul(res)
		if e.Rsh(uint(i)).Lo&1 == 1 {
			res = res.Mul(a)
		}
	}
	return res
}

// Inv returns the multiplicative inverse of a, computed as a^(p-2).
func (a Fp) Inv() (Fp, error) {
	if a.IsZero() {
		return Fp{}, ErrZeroInverse
	}
	return a.Pow(fpPrime.Sub64(2)), nil
}

// Randomize overwrites a with FpFromUint128DiscardMSB applied to a 128-bit
// draw from src. See FpFromUint128DiscardMSB for the resulting bias.
func (a *Fp) Randomize(src Source) {
	*a = FpFromUint128DiscardMSB(Uint128From(src))
}

// reduce folds bits 127 and up of x onto the low bits (2^127 == 1 mod p).
// For x < 2p the result is at most p.
func reduce(x uint128.Uint128) uint128.Uint128 {
	return x.And(fpPrime).Add(x.Rsh(127))
}

// reducePair folds a (hi, lo) product of up to 254 bits into at most 128 bits.
func reducePair(hi, lo uint128.Uint128) uint128.Uint128 {
	// shift = (hi, lo) >> 127
	shift := hi.Lsh(1).Or(lo.Rsh(127))
	return lo.And(fpPrime).Add(shift)
}

func checkReduced(x uint128.Uint128) uint128.Uint128 {
	if x.Cmp(fpPrime) > 0 {
		panic(fmt.Sprintf("fp: reduction left %s above the field order", x))
	}
	return x
}
