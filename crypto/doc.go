// Package crypto provides the algebra underneath a DC-net (dining
// cryptographers network) anonymous broadcast.
//
// Participants combine masked shares so that only the aggregate message is
// revealed. This package implements the values being combined; scheduling,
// transport and key exchange live elsewhere. It provides:
//
//   - Fp, the prime field of integers modulo 2^127 - 1
//   - XorElem, the direct-sum XOR group over an arbitrary position type, with
//     Message (bytes) and MessageVector (messages) instantiations
//   - the Randomizer capability, implemented by every algebraic type
//   - deterministic pad derivation from shared secrets (PadSource)
//
// Note: field arithmetic is not constant-time.
//
// # Field Operations
//
// Fp keeps a redundant representation: zero may be stored as 0 or as p. The
// single Mersenne fold used by Add and Mul never needs a final conditional
// subtraction as a result. Equality, ordering and every encoding canonicalize
// first, so the redundancy is invisible outside the package except through
// raw construction with FpFromCanonicalResidue(p).
//
// Decoding rejects integers >= p with a *RangeError; constructing from an
// out-of-range residue returns the same error. Mismatched lengths in XOR group
// operations are programming errors and panic.
//
// # Randomness
//
// Randomizers draw from a caller-supplied Source. Any math/rand/v2 source
// satisfies it; CryptoSource reads crypto/rand, and PadSource expands a
// shared secret for a given round.
//
// # Blinding
//
// DeriveBlinding sums one pad per shared secret in any Group: Fp for field
// masks, Message or MessageVector for XOR pads.
package crypto
