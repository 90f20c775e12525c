package crypto

import (
	"encoding/hex"
	"slices"
)

// SharedKey is a secret shared between two DC-net participants, the seed of
// the pads they both derive.
// Security: must carry at least 128 bits of entropy. It is only ever fed
// through HKDF, never used as a cipher key directly.
type SharedKey []byte

// NewSharedKey creates a SharedKey from a byte slice.
// This function makes a copy of the input data.
func NewSharedKey(data []byte) SharedKey {
	sk := make([]byte, len(data))
	copy(sk, data)
	return SharedKey(sk)
}

// NewSharedKeyFromString creates a SharedKey from a hex-encoded string.
func NewSharedKeyFromString(data string) (SharedKey, error) {
	rawBytes, err := hex.DecodeString(data)
	if err != nil {
		return nil, err
	}
	return NewSharedKey(rawBytes), nil
}

// Bytes returns a copy of the shared key.
func (sk SharedKey) Bytes() []byte {
	return slices.Clone(sk)
}
