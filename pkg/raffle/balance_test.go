package raffle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

func TestGetUserBalance(t *testing.T) {
	env := setup(t, DevCluster)

	balance, err := env.client.GetUserBalance(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)

	env.sc.SetAccount(env.wallet.PublicKey(), solana.AccountInfo{Lamports: 1_500_000_000})

	balance, err = env.client.GetUserBalance(env.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1_500_000_000, balance)
}

func TestLamportsToSol(t *testing.T) {
	assert.Equal(t, "1.5", LamportsToSol(1_500_000_000).String())
	assert.Equal(t, "0.000000001", LamportsToSol(1).String())
	assert.Equal(t, "0", LamportsToSol(0).String())
	assert.Equal(t, "18446744073.709551615", LamportsToSol(math.MaxUint64).String())

	assert.Equal(t, "-0.0003", SignedLamportsToSol(-300_000).String())
	assert.Equal(t, "0.0085", SignedLamportsToSol(8_500_000).String())
}
