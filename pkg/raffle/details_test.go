package raffle

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
	"github.com/code-payments/mad-raffle/pkg/testutil"
)

func TestSellerShare(t *testing.T) {
	for _, tc := range []struct {
		available int64
		fee       uint64
		expected  uint64
	}{
		{8_500_000, 420, 8_157_389},
		{10_000, 0, 10_000},
		{10_420, 420, 10_000},
		{1, 420, 0},
		{0, 420, 0},
		{-1, 420, 0},
		{math.MinInt64, 420, 0},
	} {
		assert.Equal(t, tc.expected, SellerShare(tc.available, tc.fee), "available=%d fee=%d", tc.available, tc.fee)
	}

	// No overflow for the largest possible balance
	assert.Equal(t, uint64(8851604641895178317), SellerShare(math.MaxInt64, 420))

	// Fees that would wrap the denominator have no share instead of panicking
	assert.NotPanics(t, func() {
		assert.Zero(t, SellerShare(8_500_000, math.MaxUint64-9_999))
		assert.Zero(t, SellerShare(8_500_000, math.MaxUint64))
	})
	assert.Equal(t, uint64(1), SellerShare(8_500_000, 8_499_999*basisPointsDenominator))
}

func TestGetRaffleDetails(t *testing.T) {
	env := setup(t, DevCluster)
	users := testutil.GenerateSolanaKeys(t, 3)

	raffle := &madraffle.RaffleAccount{
		Id:      1,
		Version: 1,
		Bump:    254,
		Active:  true,
		Tickets: []madraffle.TicketHolder{
			{User: users[0], Qty: 5},
			{User: users[1], Qty: 3},
		},
		StartTime: 1_700_000_000,
	}
	address := env.setRaffle(t, raffle, 10_000_000)

	env.sc.SetRent(defaultReferenceAccountSize, 1_000_000)
	env.sc.SetRent(uint64(len(raffle.Marshal())), 500_000)

	details, err := env.client.GetRaffleDetails(env.ctx, RaffleById(1))
	require.NoError(t, err)

	assert.Equal(t, address, details.Address)
	assert.EqualValues(t, 1, details.Id)
	assert.True(t, details.Active)
	assert.EqualValues(t, 10_000_000, details.Lamports)
	assert.EqualValues(t, 8_500_000, details.AvailableLamports)
	assert.EqualValues(t, 8_157_389, details.SellerShareLamports)
	assert.Nil(t, details.Prize)
	assert.Empty(t, details.Winner)

	assert.EqualValues(t, 5, env.client.GetUserTickets(users[0], details))
	assert.EqualValues(t, 3, env.client.GetUserTickets(users[1], details))
	assert.EqualValues(t, 0, env.client.GetUserTickets(users[2], details))
	assert.EqualValues(t, 8, env.client.GetTotalTickets(details))

	assert.EqualValues(t, 0, env.client.GetUserTickets(users[0], nil))
	assert.EqualValues(t, 0, env.client.GetTotalTickets(nil))
}

func TestGetRaffleDetails_CustomFee(t *testing.T) {
	env := setup(t, DevCluster)

	client, err := NewClient(
		DevCluster,
		WithSolanaClient(env.sc),
		WithConfigProvider(withManualTestOverrides(&testOverrides{feeBasisPoints: 1_000})),
	)
	require.NoError(t, err)

	raffle := &madraffle.RaffleAccount{Id: 2, Version: 1, Active: true}
	env.setRaffle(t, raffle, 2_200_000)
	env.sc.SetRent(defaultReferenceAccountSize, 50_000)
	env.sc.SetRent(uint64(len(raffle.Marshal())), 50_000)

	details, err := client.GetRaffleDetails(env.ctx, RaffleById(2))
	require.NoError(t, err)
	assert.EqualValues(t, 2_100_000, details.AvailableLamports)
	assert.EqualValues(t, 1_909_090, details.SellerShareLamports)
}

func TestGetRaffleDetails_BelowRent(t *testing.T) {
	env := setup(t, DevCluster)

	raffle := &madraffle.RaffleAccount{Id: 1, Version: 1, Active: true}
	env.setRaffle(t, raffle, 1_200_000)
	env.sc.SetRent(defaultReferenceAccountSize, 1_000_000)
	env.sc.SetRent(uint64(len(raffle.Marshal())), 500_000)

	details, err := env.client.GetRaffleDetails(env.ctx, RaffleById(1))
	require.NoError(t, err)
	assert.EqualValues(t, -300_000, details.AvailableLamports)
	assert.EqualValues(t, 0, details.SellerShareLamports)
}

func TestGetRaffleDetails_Errors(t *testing.T) {
	env := setup(t, DevCluster)

	_, err := env.client.GetRaffleDetails(env.ctx, RaffleById(0))
	testutil.AssertSolanaQueryError(t, err, apierror.InvalidArgument)

	_, err = env.client.GetRaffleDetails(env.ctx, RaffleById(1))
	testutil.AssertSolanaQueryError(t, err, apierror.UnableToFindRaffle)

	env.sc.SetAccountError(env.rafflePda(t, 2), errors.New("rpc unavailable"))
	_, err = env.client.GetRaffleDetails(env.ctx, RaffleById(2))
	testutil.AssertSolanaQueryError(t, err, apierror.UnableToFindRaffle)

	_, err = env.client.GetRaffleDetails(env.ctx, CurrentRaffleTarget)
	testutil.AssertSolanaQueryError(t, err, apierror.UnableToFindCurrentRaffle)
}

func TestGetRaffleDetails_Current(t *testing.T) {
	env := setup(t, DevCluster)
	env.setTracker(t, 3)
	env.setRaffle(t, &madraffle.RaffleAccount{Id: 3, Version: 1, Active: true}, 5_000_000)

	details, err := env.client.GetRaffleDetails(env.ctx, CurrentRaffleTarget)
	require.NoError(t, err)
	assert.EqualValues(t, 3, details.Id)
}

func TestTickets(t *testing.T) {
	env := setup(t, DevCluster)
	users := testutil.GenerateSolanaKeys(t, 3)

	details := &RaffleDetails{
		RaffleAccount: madraffle.RaffleAccount{
			Id: 1,
			Tickets: []madraffle.TicketHolder{
				{User: users[0], Qty: 3},
				{User: users[1], Qty: 2},
			},
		},
	}
	assert.EqualValues(t, 5, env.client.GetTotalTickets(details))
	assert.EqualValues(t, 3, env.client.GetUserTickets(users[0], details))
	assert.EqualValues(t, 0, env.client.GetUserTickets(users[2], details))

	details.Tickets = nil
	assert.EqualValues(t, 0, env.client.GetTotalTickets(details))
	assert.EqualValues(t, 0, env.client.GetUserTickets(users[0], details))
}
