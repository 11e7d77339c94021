package raffle

import (
	"context"
	"crypto/ed25519"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

// Wallet is the connected signer identity.
type Wallet interface {
	PublicKey() ed25519.PublicKey

	// SignTransaction adds the wallet's signature to txn
	SignTransaction(ctx context.Context, txn *solana.Transaction) error
}

// KeypairWallet signs with a local private key.
type KeypairWallet struct {
	key ed25519.PrivateKey
}

func NewKeypairWallet(key ed25519.PrivateKey) (*KeypairWallet, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid private key length: %d", len(key))
	}
	return &KeypairWallet{key: key}, nil
}

// LoadKeypairWallet reads a keypair file in the Solana CLI format, a JSON
// array of the 64 private key bytes.
func LoadKeypairWallet(path string) (*KeypairWallet, error) {
	keygen, err := solanago.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load keypair file")
	}

	key := ed25519.PrivateKey(keygen)
	wallet, err := NewKeypairWallet(key)
	if err != nil {
		return nil, errors.Wrap(err, "invalid keypair file")
	}

	// The trailing half must be the public key of the seed
	expected := ed25519.NewKeyFromSeed(key.Seed())
	if !expected.Equal(key) {
		return nil, errors.New("invalid keypair file: public key mismatch")
	}
	return wallet, nil
}

func (w *KeypairWallet) PublicKey() ed25519.PublicKey {
	return w.key.Public().(ed25519.PublicKey)
}

func (w *KeypairWallet) SignTransaction(_ context.Context, txn *solana.Transaction) error {
	return txn.Sign(w.key)
}
