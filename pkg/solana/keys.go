package solana

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// PublicKeyFromBase58 decodes a base58 account address.
func PublicKeyFromBase58(value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base58 address %q", value)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid address length for %q: %d", value, len(decoded))
	}
	return decoded, nil
}

// MustPublicKeyFromBase58 is PublicKeyFromBase58 for compile-time constants.
func MustPublicKeyFromBase58(value string) ed25519.PublicKey {
	decoded, err := PublicKeyFromBase58(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

// IsZeroPublicKey returns whether the key is unset or all zeroes.
func IsZeroPublicKey(pub ed25519.PublicKey) bool {
	return len(pub) == 0 || bytes.Equal(pub, make([]byte, ed25519.PublicKeySize))
}

// PublicKeyToBase58 encodes an account address.
func PublicKeyToBase58(pub ed25519.PublicKey) string {
	return base58.Encode(pub)
}
