package testutil

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"

	"github.com/flashbots/dcnet/crypto"
)

// =====================================
// Round Parameters
// =====================================

// RoundParams describes the shape of a simulated DC-net round.
type RoundParams struct {
	Round       uint32
	Clients     int
	Servers     int
	Slots       int
	MessageSize int
	Seed        uint64
}

// RoundOption is a function that modifies RoundParams
type RoundOption func(*RoundParams)

// WithRound sets the round number
func WithRound(round uint32) RoundOption {
	return func(p *RoundParams) {
		p.Round = round
	}
}

// WithClients sets the number of clients
func WithClients(count int) RoundOption {
	return func(p *RoundParams) {
		p.Clients = count
	}
}

// WithServers sets the number of servers
func WithServers(count int) RoundOption {
	return func(p *RoundParams) {
		p.Servers = count
	}
}

// WithSlots sets the number of message slots
func WithSlots(slots int) RoundOption {
	return func(p *RoundParams) {
		p.Slots = slots
	}
}

// WithMessageSize sets the message size in bytes
func WithMessageSize(size int) RoundOption {
	return func(p *RoundParams) {
		p.MessageSize = size
	}
}

// WithSeed sets the seed of the deterministic source
func WithSeed(seed uint64) RoundOption {
	return func(p *RoundParams) {
		p.Seed = seed
	}
}

// NewRoundParams returns default parameters with options applied
func NewRoundParams(options ...RoundOption) *RoundParams {
	p := &RoundParams{
		Round:       1,
		Clients:     4,
		Servers:     3,
		Slots:       8,
		MessageSize: 32,
		Seed:        1,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// =====================================
// Randomness
// =====================================

// NewSource returns a deterministic ChaCha8 source for the given seed
func NewSource(seed uint64) crypto.Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return mrand.NewChaCha8(key)
}

// GenerateRandomBytes returns length bytes from crypto/rand
func GenerateRandomBytes(length int) ([]byte, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// =====================================
// Algebra Generators
// =====================================

// RandomFps returns n field elements drawn from src
func RandomFps(src crypto.Source, n int) []crypto.Fp {
	res := make([]crypto.Fp, n)
	crypto.RandomizeSlice(res, src)
	return res
}

// RandomMessage returns a message of size random bytes
func RandomMessage(src crypto.Source, size int) crypto.Message {
	m := crypto.NewZeroMessage(size)
	m.Randomize(src)
	return m
}

// GenerateSharedSecrets returns a clients x servers matrix of distinct shared
// secrets, secrets[c][s] shared between client c and server s
func GenerateSharedSecrets(clients, servers int) [][]crypto.SharedKey {
	secrets := make([][]crypto.SharedKey, clients)
	for c := range secrets {
		secrets[c] = make([]crypto.SharedKey, servers)
		for s := range secrets[c] {
			secrets[c][s] = crypto.NewSharedKey([]byte(fmt.Sprintf("c%ds%d", c+1, s+1)))
		}
	}
	return secrets
}

// ServerSecrets returns the column of secrets held by server s
func ServerSecrets(secrets [][]crypto.SharedKey, s int) []crypto.SharedKey {
	res := make([]crypto.SharedKey, len(secrets))
	for c := range secrets {
		res[c] = secrets[c][s]
	}
	return res
}

// =====================================
// Message Vector Helpers
// =====================================

// PlaceMessageInSlot returns a zero message vector with msg copied into slot
func PlaceMessageInSlot(p *RoundParams, slot int, msg []byte) crypto.MessageVector {
	vec := crypto.NewZeroMessageVector(p.Slots, p.MessageSize)
	if slot >= 0 && slot < p.Slots {
		elems := vec.Elems()[slot].Elems()
		for i := 0; i < len(msg) && i < len(elems); i++ {
			elems[i] = crypto.Byte(msg[i])
		}
	}
	return vec
}

// ExtractMessageFromSlot copies the payload of slot out of vec
func ExtractMessageFromSlot(vec crypto.MessageVector, slot int) []byte {
	if slot < 0 || slot >= vec.Len() {
		return nil
	}
	return crypto.MessageBytes(vec.Elems()[slot])
}

// ExtractAllMessages copies out the payload of every slot
func ExtractAllMessages(vec crypto.MessageVector) [][]byte {
	res := make([][]byte, vec.Len())
	for i := range res {
		res[i] = ExtractMessageFromSlot(vec, i)
	}
	return res
}
