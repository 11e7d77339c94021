package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var (
	// ErrAccountNotFound indicates there is no account for the given address.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidTokenAccount indicates that a Solana account exists at the
	// given address, but it is either not initialized, or not configured correctly.
	ErrInvalidTokenAccount = errors.New("invalid token account")
)

// Client provides utilities for accessing SPL token accounts.
type Client struct {
	sc solana.Client
}

// NewClient creates a new Client.
func NewClient(sc solana.Client) *Client {
	return &Client{
		sc: sc,
	}
}

// GetAccount returns the token account info for the specified account.
//
// If the account is not initialized, or is not owned by the token program,
// then ErrInvalidTokenAccount is returned.
func (c *Client) GetAccount(accountID ed25519.PublicKey, commitment solana.Commitment) (*Account, error) {
	accountInfo, err := c.sc.GetAccountInfo(accountID, commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account info")
	}

	if !bytes.Equal(accountInfo.Owner, ProgramKey) {
		return nil, ErrInvalidTokenAccount
	}

	var account Account
	if !account.Unmarshal(accountInfo.Data) || account.State == AccountStateUninitialized {
		return nil, ErrInvalidTokenAccount
	}

	return &account, nil
}

// GetNftMints returns the mints of every NFT held by owner, in the order
// the RPC node reported the token accounts.
func (c *Client) GetNftMints(owner ed25519.PublicKey) ([]ed25519.PublicKey, error) {
	accounts, err := c.sc.GetTokenAccountsByOwner(owner, ProgramKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token accounts")
	}

	var mints []ed25519.PublicKey
	for _, keyed := range accounts {
		var account Account
		if !account.Unmarshal(keyed.Account.Data) {
			continue
		}
		if !account.IsNft() {
			continue
		}
		mints = append(mints, account.Mint)
	}
	return mints, nil
}
