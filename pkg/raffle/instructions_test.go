package raffle

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
	"github.com/code-payments/mad-raffle/pkg/solana/token"
	"github.com/code-payments/mad-raffle/pkg/solana/tokenmetadata"
	"github.com/code-payments/mad-raffle/pkg/testutil"
)

// Offsets into the end raffle and distribute prize account lists
const (
	endRaffleRaffleIndex    = 15
	endRaffleNewRaffleIndex = 16
	endRaffleTrackerIndex   = 17
	endRaffleCreatorsIndex  = 18
	endRaffleAccountCount   = endRaffleCreatorsIndex + madraffle.MaxCreators

	distributeRaffleIndex  = 16
	distributeAccountCount = distributeRaffleIndex + 1
)

func TestCreateInitializeInstruction(t *testing.T) {
	env := setup(t, DevCluster)

	ixn, err := env.client.CreateInitializeInstruction()
	require.NoError(t, err)

	tracker, err := env.client.GetTrackerAddress()
	require.NoError(t, err)
	superVault, err := env.client.GetSuperVaultAddress()
	require.NoError(t, err)

	assert.Equal(t, env.cluster.ProgramId, ixn.Program)
	keys := accountKeys(ixn)
	assert.Contains(t, keys, solana.PublicKeyToBase58(tracker))
	assert.Contains(t, keys, solana.PublicKeyToBase58(superVault))
	assert.Contains(t, keys, solana.PublicKeyToBase58(env.rafflePda(t, 1)))
	assertSigner(t, ixn, env.wallet.PublicKey())
}

func TestCreateBuyTicketInstruction(t *testing.T) {
	env := setup(t, DevCluster)

	_, err := env.client.CreateBuyTicketInstruction()
	assert.Equal(t, ErrNoCurrentRaffle, err)

	env.setTracker(t, 1)
	_, err = env.client.BindCurrentRaffle(env.ctx)
	require.NoError(t, err)

	ixn, err := env.client.CreateBuyTicketInstruction()
	require.NoError(t, err)

	tracker, err := env.client.GetTrackerAddress()
	require.NoError(t, err)
	superVault, err := env.client.GetSuperVaultAddress()
	require.NoError(t, err)

	assert.Equal(t, env.cluster.ProgramId, ixn.Program)
	require.Len(t, ixn.Accounts, 6)
	assert.Equal(t, solana.NewAccountMeta(env.rafflePda(t, 1), false), ixn.Accounts[0])
	assert.Equal(t, solana.NewAccountMeta(env.wallet.PublicKey(), true), ixn.Accounts[1])
	assert.Equal(t, solana.NewAccountMeta(env.cluster.FeeVault, false), ixn.Accounts[2])
	assert.Equal(t, madraffle.SYSTEM_PROGRAM_ID, ixn.Accounts[3].PublicKey)
	assert.Equal(t, solana.NewAccountMeta(tracker, false), ixn.Accounts[4])
	assert.Equal(t, solana.NewAccountMeta(superVault, false), ixn.Accounts[5])
}

func TestCreateBuyTicketInstruction_NoWallet(t *testing.T) {
	env := setup(t, DevCluster)

	client, err := NewClient(DevCluster, WithSolanaClient(env.sc))
	require.NoError(t, err)

	_, err = client.CreateBuyTicketInstruction()
	testutil.AssertSolanaQueryError(t, err, apierror.NoWalletConnected)

	_, err = client.CreateInitializeInstruction()
	testutil.AssertSolanaQueryError(t, err, apierror.NoWalletConnected)

	_, err = client.CreateDistributePrizeInstruction(env.ctx, 1)
	testutil.AssertSolanaQueryError(t, err, apierror.NoWalletConnected)
}

func TestCreateEndRaffleInstruction(t *testing.T) {
	for _, tc := range []struct {
		name    string
		ruleSet ed25519.PublicKey
	}{
		{"with rule set", tokenmetadata.DEFAULT_RULE_SET},
		{"without rule set", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := setup(t, DevCluster)

			nft := newTestPnft(t, env.cluster.Collection, true, tc.ruleSet, 2)
			env.setNftMetadata(t, nft.metadata)

			_, err := env.client.CreateEndRaffleInstruction(env.ctx, nft.mint)
			assert.Equal(t, ErrNoCurrentRaffle, err)

			env.setTracker(t, 5)
			current, err := env.client.BindCurrentRaffle(env.ctx)
			require.NoError(t, err)

			ixn, err := env.client.CreateEndRaffleInstruction(env.ctx, nft.mint)
			require.NoError(t, err)

			sourceAta, err := token.GetAssociatedAccount(env.wallet.PublicKey(), nft.mint)
			require.NoError(t, err)
			targetAta, err := token.GetAssociatedAccount(current.Address, nft.mint)
			require.NoError(t, err)

			assert.Equal(t, env.cluster.ProgramId, ixn.Program)
			assert.Equal(t, solana.NewAccountMeta(env.wallet.PublicKey(), true), ixn.Accounts[0])
			assert.Equal(t, sourceAta, ixn.Accounts[1].PublicKey)
			assert.Equal(t, targetAta, ixn.Accounts[2].PublicKey)
			assert.Equal(t, nft.mint, ixn.Accounts[3].PublicKey)
			assert.Equal(t, current.Address, ixn.Accounts[endRaffleRaffleIndex].PublicKey)
			assert.Equal(t, env.rafflePda(t, 6), ixn.Accounts[endRaffleNewRaffleIndex].PublicKey)

			tracker, err := env.client.GetTrackerAddress()
			require.NoError(t, err)
			assert.Equal(t, tracker, ixn.Accounts[endRaffleTrackerIndex].PublicKey)

			// Declared creators first, then the program id for absent slots
			creators := ixn.Accounts[endRaffleCreatorsIndex : endRaffleCreatorsIndex+madraffle.MaxCreators]
			assert.Equal(t, nft.metadata.Creators[0].Address, creators[0].PublicKey)
			assert.Equal(t, nft.metadata.Creators[1].Address, creators[1].PublicKey)
			for _, absent := range creators[2:] {
				assert.Equal(t, env.cluster.ProgramId, absent.PublicKey)
				assert.False(t, absent.IsWritable)
			}

			if tc.ruleSet != nil {
				require.Len(t, ixn.Accounts, endRaffleAccountCount+1)
				assert.Equal(t, solana.NewReadonlyAccountMeta(tc.ruleSet, false), ixn.Accounts[endRaffleAccountCount])
				assert.Equal(t, byte(1), ixn.Data[len(ixn.Data)-1])
			} else {
				require.Len(t, ixn.Accounts, endRaffleAccountCount)
				assert.Equal(t, byte(0), ixn.Data[len(ixn.Data)-1])
			}
		})
	}
}

func TestCreateEndRaffleInstruction_MissingMetadata(t *testing.T) {
	env := setup(t, DevCluster)
	env.setTracker(t, 5)
	_, err := env.client.BindCurrentRaffle(env.ctx)
	require.NoError(t, err)

	_, err = env.client.CreateEndRaffleInstruction(env.ctx, testutil.GenerateSolanaKeys(t, 1)[0])
	assert.Error(t, err)
}

func TestCreateSelectWinnerInstruction(t *testing.T) {
	env := setup(t, DevCluster)

	ixn, err := env.client.CreateSelectWinnerInstruction(env.ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, env.cluster.ProgramId, ixn.Program)
	keys := accountKeys(ixn)
	assert.Contains(t, keys, solana.PublicKeyToBase58(env.rafflePda(t, 3)))
	assert.Contains(t, keys, solana.PublicKeyToBase58(env.cluster.Authority))
	assertSigner(t, ixn, env.cluster.Authority)

	// A fresh random address each time
	again, err := env.client.CreateSelectWinnerInstruction(env.ctx, 3)
	require.NoError(t, err)
	assert.NotEqual(t, accountKeys(ixn), accountKeys(again))

	_, err = env.client.CreateSelectWinnerInstruction(env.ctx, 0)
	testutil.AssertSolanaQueryError(t, err, apierror.InvalidArgument)
}

func TestCreatePickWinnerInstruction(t *testing.T) {
	env := setup(t, ProdCluster)

	ixn, err := env.client.CreatePickWinnerInstruction(env.ctx, 9)
	require.NoError(t, err)

	assert.Equal(t, ProdCluster.ProgramId, ixn.Program)
	keys := accountKeys(ixn)
	assert.Contains(t, keys, solana.PublicKeyToBase58(env.rafflePda(t, 9)))
	assert.Contains(t, keys, solana.PublicKeyToBase58(ProdCluster.PriceFeed))
	assertSigner(t, ixn, ProdCluster.Authority)

	_, err = env.client.CreatePickWinnerInstruction(env.ctx, 0)
	testutil.AssertSolanaQueryError(t, err, apierror.InvalidArgument)
}

func TestCreateDistributePrizeInstruction(t *testing.T) {
	env := setup(t, DevCluster)
	keys := testutil.GenerateSolanaKeys(t, 1)
	winner := keys[0]

	nft := newTestPnft(t, env.cluster.Collection, true, tokenmetadata.DEFAULT_RULE_SET, 1)
	env.setNftMetadata(t, nft.metadata)

	raffleAddress := env.rafflePda(t, 4)
	prizeAta, err := token.GetAssociatedAccount(raffleAddress, nft.mint)
	require.NoError(t, err)

	env.setRaffle(t, &madraffle.RaffleAccount{
		Id:      4,
		Version: 1,
		Tickets: []madraffle.TicketHolder{{User: winner, Qty: 1}},
		Prize:   &madraffle.Prize{Mint: nft.mint, Ata: prizeAta},
		Winner:  winner,
	}, 5_000_000)

	ixn, err := env.client.CreateDistributePrizeInstruction(env.ctx, 4)
	require.NoError(t, err)

	winnerAta, err := token.GetAssociatedAccount(winner, nft.mint)
	require.NoError(t, err)

	assert.Equal(t, env.cluster.ProgramId, ixn.Program)
	require.Len(t, ixn.Accounts, distributeAccountCount+1)
	assert.Equal(t, solana.NewAccountMeta(env.wallet.PublicKey(), true), ixn.Accounts[0])
	assert.Equal(t, winner, ixn.Accounts[1].PublicKey)
	assert.Equal(t, prizeAta, ixn.Accounts[2].PublicKey)
	assert.Equal(t, winnerAta, ixn.Accounts[3].PublicKey)
	assert.Equal(t, nft.mint, ixn.Accounts[4].PublicKey)
	assert.Equal(t, raffleAddress, ixn.Accounts[distributeRaffleIndex].PublicKey)
	assert.Equal(t, solana.NewReadonlyAccountMeta(tokenmetadata.DEFAULT_RULE_SET, false), ixn.Accounts[distributeAccountCount])
}

func TestCreateDistributePrizeInstruction_NotDistributable(t *testing.T) {
	env := setup(t, DevCluster)
	keys := testutil.GenerateSolanaKeys(t, 3)

	_, err := env.client.CreateDistributePrizeInstruction(env.ctx, 1)
	testutil.AssertSolanaQueryError(t, err, apierror.UnableToFindRaffle)

	env.setRaffle(t, &madraffle.RaffleAccount{Id: 1, Version: 1, Winner: keys[0]}, 5_000_000)
	_, err = env.client.CreateDistributePrizeInstruction(env.ctx, 1)
	assert.Equal(t, ErrPrizeNotSet, err)

	env.setRaffle(t, &madraffle.RaffleAccount{Id: 2, Version: 1, Prize: &madraffle.Prize{Mint: keys[1], Ata: keys[2]}}, 5_000_000)
	_, err = env.client.CreateDistributePrizeInstruction(env.ctx, 2)
	assert.Equal(t, ErrWinnerNotSet, err)
}

func accountKeys(ixn solana.Instruction) []string {
	keys := make([]string, len(ixn.Accounts))
	for i, account := range ixn.Accounts {
		keys[i] = solana.PublicKeyToBase58(account.PublicKey)
	}
	return keys
}

func assertSigner(t *testing.T, ixn solana.Instruction, signer ed25519.PublicKey) {
	for _, account := range ixn.Accounts {
		if account.PublicKey.Equal(signer) {
			assert.True(t, account.IsSigner)
			return
		}
	}
	t.Fatalf("missing signer %s", solana.PublicKeyToBase58(signer))
}
