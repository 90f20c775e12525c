package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

var padInfoPrefix = []byte("dcnet-pad-v1")

// ErrNoSharedSecrets is returned when a blinding vector is requested without
// any shared secret to derive it from.
var ErrNoSharedSecrets = errors.New("no shared secrets")

// PadSource is a deterministic Source keyed by a shared secret and a round
// number. Both ends of a shared secret derive the same stream, which is what
// makes pads cancel in the combined round output.
//
// The key is HKDF-SHA3-256 over the secret with the round in the info
// string; the stream is AES-256-CTR over zeros.
type PadSource struct {
	stream cipher.Stream
	buf    [256]byte
	off    int
}

// NewPadSource derives the pad stream for secret in round.
func NewPadSource(secret SharedKey, round uint32) (*PadSource, error) {
	info := make([]byte, len(padInfoPrefix)+4)
	copy(info, padInfoPrefix)
	binary.BigEndian.PutUint32(info[len(padInfoPrefix):], round)

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha3.New256, secret, nil, info), key); err != nil {
		return nil, fmt.Errorf("derive pad key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	s := &PadSource{
		stream: cipher.NewCTR(block, make([]byte, aes.BlockSize)),
	}
	s.off = len(s.buf)
	return s, nil
}

// Uint64 returns the next 8 bytes of the pad stream.
func (s *PadSource) Uint64() uint64 {
	if s.off+8 > len(s.buf) {
		clear(s.buf[:])
		s.stream.XORKeyStream(s.buf[:], s.buf[:])
		s.off = 0
	}
	v := binary.LittleEndian.Uint64(s.buf[s.off:])
	s.off += 8
	return v
}

// DeriveBlinding derives one pad per shared secret for round and returns
// their group sum. newElem must return the zero element of the target shape
// (for instance a zero message of the slot size); it is called once for the
// accumulator and once per secret.
//
// Used for field masks (Fp), raw payload pads (Message) and per-slot pads
// (MessageVector) alike.
func DeriveBlinding[T Group[T], PT interface {
	*T
	Randomizer
}](sharedSecrets []SharedKey, round uint32, newElem func() T) (T, error) {
	acc := newElem()
	if len(sharedSecrets) == 0 {
		return acc, ErrNoSharedSecrets
	}

	for _, sharedSecret := range sharedSecrets {
		src, err := NewPadSource(sharedSecret, round)
		if err != nil {
			return acc, err
		}

		pad := newElem()
		PT(&pad).Randomize(src)
		acc = acc.Add(pad)
	}

	return acc, nil
}

// DeriveXorBlindingVector returns the XOR of the nBytes-long pads of every
// shared secret for round.
func DeriveXorBlindingVector(sharedSecrets []SharedKey, round uint32, nBytes int) ([]byte, error) {
	pad, err := DeriveBlinding(sharedSecrets, round, func() Message { return NewZeroMessage(nBytes) })
	if err != nil {
		return nil, err
	}
	return MessageBytes(pad), nil
}

// DeriveBlindingVector returns nEls field masks, each the sum over every
// shared secret of that secret's pad for round.
func DeriveBlindingVector(sharedSecrets []SharedKey, round uint32, nEls int) ([]Fp, error) {
	if len(sharedSecrets) == 0 {
		return nil, ErrNoSharedSecrets
	}

	res := make([]Fp, nEls)
	pad := make([]Fp, nEls)
	for _, sharedSecret := range sharedSecrets {
		src, err := NewPadSource(sharedSecret, round)
		if err != nil {
			return nil, err
		}
		RandomizeSlice(pad, src)
		AddVectorsInplace(res, pad)
	}
	return res, nil
}
