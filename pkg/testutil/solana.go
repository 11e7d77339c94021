package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

// GenerateSolanaKeypair returns a new random keypair
func GenerateSolanaKeypair(t testing.TB) ed25519.PrivateKey {
	_, key, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return key
}

// GenerateSolanaKeys returns n random public keys, such as users or mints,
// whose private halves aren't needed
func GenerateSolanaKeys(t testing.TB, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := range keys {
		keys[i] = GenerateSolanaKeypair(t).Public().(ed25519.PublicKey)
	}
	return keys
}
