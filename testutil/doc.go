/*
Package testutil provides test fixtures for the DC-net algebra.

# Round Parameters

RoundParams describes a simulated round (clients, servers, slots, message
size, seed) and is built with functional options:

	params := testutil.NewRoundParams(
	    testutil.WithClients(10),
	    testutil.WithSlots(4),
	)

# Randomness

NewSource returns a seeded ChaCha8 source so tests are reproducible;
GenerateRandomBytes reads crypto/rand.

# Generators

	els := testutil.RandomFps(src, 16)
	msg := testutil.RandomMessage(src, 64)
	secrets := testutil.GenerateSharedSecrets(params.Clients, params.Servers)

# Message Vectors

PlaceMessageInSlot builds a one-hot message vector; ExtractMessageFromSlot
and ExtractAllMessages read slots back out as bytes.
*/
package testutil
