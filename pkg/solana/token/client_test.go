package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/solanatest"
)

func TestClient_GetAccount(t *testing.T) {
	sc := solanatest.NewClient()
	c := NewClient(sc)

	owner, mint, address := filledKey(1), filledKey(2), filledKey(3)

	_, err := c.GetAccount(address, solana.CommitmentConfirmed)
	assert.Equal(t, ErrAccountNotFound, err)

	account := Account{Mint: mint, Owner: owner, Amount: 1, State: AccountStateInitialized}
	sc.SetAccount(address, solana.AccountInfo{Owner: filledKey(9), Data: account.Marshal()})
	_, err = c.GetAccount(address, solana.CommitmentConfirmed)
	assert.Equal(t, ErrInvalidTokenAccount, err)

	sc.SetAccount(address, solana.AccountInfo{Owner: ProgramKey, Data: account.Marshal()})
	actual, err := c.GetAccount(address, solana.CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, account, *actual)

	sc.SetAccount(address, solana.AccountInfo{Owner: ProgramKey, Data: []byte{1, 2, 3}})
	_, err = c.GetAccount(address, solana.CommitmentConfirmed)
	assert.Equal(t, ErrInvalidTokenAccount, err)
}

func TestClient_GetNftMints(t *testing.T) {
	sc := solanatest.NewClient()
	c := NewClient(sc)

	owner := filledKey(1)
	nft, fungible := filledKey(2), filledKey(3)

	holdings := []Account{
		{Mint: nft, Owner: owner, Amount: 1, State: AccountStateInitialized},
		{Mint: fungible, Owner: owner, Amount: 500, State: AccountStateInitialized},
	}
	for i, holding := range holdings {
		sc.AddTokenAccount(owner, filledKey(byte(10+i)), solana.AccountInfo{Owner: ProgramKey, Data: holding.Marshal()})
	}
	sc.AddTokenAccount(owner, filledKey(20), solana.AccountInfo{Owner: ProgramKey, Data: []byte{0}})

	mints, err := c.GetNftMints(owner)
	require.NoError(t, err)
	assert.Equal(t, []ed25519.PublicKey{nft}, mints)

	mints, err = c.GetNftMints(filledKey(30))
	require.NoError(t, err)
	assert.Empty(t, mints)
}
