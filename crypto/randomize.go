package crypto

import (
	"crypto/rand"
	"encoding/binary"

	"lukechampine.com/uint128"
)

// Source produces uniformly distributed 64-bit values. Every math/rand/v2
// source satisfies it, as do CryptoSource and PadSource.
//
// Sources are not required to be safe for concurrent use; callers
// synchronize access themselves.
type Source interface {
	Uint64() uint64
}

// Randomizer is implemented by algebraic values that can overwrite
// themselves, in place, with a random element of their domain drawn from src.
type Randomizer interface {
	Randomize(src Source)
}

// Uint128From draws a uniformly random 128-bit integer from src.
func Uint128From(src Source) uint128.Uint128 {
	lo := src.Uint64()
	hi := src.Uint64()
	return uint128.New(lo, hi)
}

// RandomizeSlice randomizes every position of s independently, in order.
func RandomizeSlice[T any, PT interface {
	*T
	Randomizer
}](s []T, src Source) {
	for i := range s {
		PT(&s[i]).Randomize(src)
	}
}

// CryptoSource reads from crypto/rand. The zero value is ready to use.
type CryptoSource struct {
	buf [512]byte
	off int
}

// NewCryptoSource returns a Source backed by the operating system CSPRNG.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{off: 512}
}

// Uint64 returns 8 fresh bytes from crypto/rand.
func (s *CryptoSource) Uint64() uint64 {
	if s.off == 0 || s.off+8 > len(s.buf) {
		if _, err := rand.Read(s.buf[:]); err != nil {
			panic(err.Error())
		}
		s.off = 0
	}
	v := binary.LittleEndian.Uint64(s.buf[s.off:])
	s.off += 8
	return v
}
