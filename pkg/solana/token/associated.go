package token

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

// GetAssociatedAccount returns the associated token account of wallet for
// mint. The wallet may itself be a program address, such as a raffle holding
// its prize NFT.
//
// Reference: https://spl.solana.com/associated-token-account#finding-the-associated-token-account-address
func GetAssociatedAccount(wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(wallet) != ed25519.PublicKeySize || len(mint) != ed25519.PublicKeySize {
		return nil, errors.New("invalid wallet or mint")
	}

	address, err := solana.FindProgramAddress(
		AssociatedTokenAccountProgramKey,
		wallet,
		ProgramKey,
		mint,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive associated token account")
	}
	return address, nil
}
