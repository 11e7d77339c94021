package madraffle

import (
	"crypto/ed25519"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDiscriminators(t *testing.T) {
	for name, discriminator := range map[string][]byte{
		"Raffle":        RaffleAccountDiscriminator,
		"RaffleTracker": RaffleTrackerAccountDiscriminator,
		"SuperVault":    SuperVaultAccountDiscriminator,
	} {
		h := sha256.Sum256([]byte("account:" + name))
		assert.Equal(t, h[:discriminatorSize], discriminator, name)
	}
}

func TestRaffleAccount_RoundTrip(t *testing.T) {
	alice, bob := testKey(1), testKey(2)

	expected := RaffleAccount{
		Id:      7,
		Version: 1,
		Bump:    254,
		Active:  false,
		Tickets: []TicketHolder{
			{User: alice, Qty: 3},
			{User: bob, Qty: 2},
			{User: alice, Qty: 1},
		},
		StartTime: 1_690_000_000,
		EndTime:   1_690_086_400,
		Prize: &Prize{
			Mint: testKey(3),
			Ata:  testKey(4),
			Sent: true,
		},
		Winner: bob,
	}

	data := expected.Marshal()
	assert.Len(t, data, MinRaffleAccountSize+3*TicketHolderSize+PrizeSize+32)

	var actual RaffleAccount
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, expected, actual)

	assert.EqualValues(t, 4, actual.UserTickets(alice))
	assert.EqualValues(t, 2, actual.UserTickets(bob))
	assert.EqualValues(t, 0, actual.UserTickets(testKey(9)))
	assert.EqualValues(t, 6, actual.TotalTickets())
	assert.Contains(t, actual.String(), "tickets=6")
}

func TestRaffleAccount_Empty(t *testing.T) {
	expected := RaffleAccount{Id: 1, Active: true, Tickets: []TicketHolder{}}

	data := expected.Marshal()
	assert.Len(t, data, MinRaffleAccountSize)

	var actual RaffleAccount
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, expected, actual)
	assert.Nil(t, actual.Prize)
	assert.Nil(t, actual.Winner)
	assert.Zero(t, actual.TotalTickets())
}

func TestRaffleAccount_InvalidData(t *testing.T) {
	valid := (&RaffleAccount{Id: 1, Tickets: []TicketHolder{{User: testKey(1), Qty: 1}}}).Marshal()

	var account RaffleAccount
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(valid[:MinRaffleAccountSize-1]))

	wrongDiscriminator := append([]byte{}, valid...)
	wrongDiscriminator[0] ^= 0xff
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(wrongDiscriminator))

	// Claims far more ticket holders than the data holds.
	oversized := append([]byte{}, valid...)
	oversized[8+8+1+1+1] = 0xff
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(oversized))

	tracker := (&RaffleTrackerAccount{CurrentRaffle: 1}).Marshal()
	assert.Error(t, account.Unmarshal(append(tracker, make([]byte, MinRaffleAccountSize)...)))
}

func TestRaffleTrackerAccount_RoundTrip(t *testing.T) {
	expected := RaffleTrackerAccount{
		CurrentRaffle: 12,
		Bump:          252,
		Scoreboard: []UserPoints{
			{User: testKey(1), Points: 100},
			{User: testKey(2), Points: 7},
		},
	}

	var actual RaffleTrackerAccount
	require.NoError(t, actual.Unmarshal(expected.Marshal()))
	assert.Equal(t, expected, actual)

	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(expected.Marshal()[:MinRaffleTrackerAccountSize-1]))
	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal((&RaffleAccount{}).Marshal()))
}

func TestSuperVaultAccount_RoundTrip(t *testing.T) {
	expected := SuperVaultAccount{Bump: 255}

	var actual SuperVaultAccount
	require.NoError(t, actual.Unmarshal(expected.Marshal()))
	assert.Equal(t, expected, actual)

	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal([]byte{1, 2, 3}))
}

func TestPointsMultiplier(t *testing.T) {
	assert.EqualValues(t, 10, PointsMultiplier(1))
	assert.EqualValues(t, 10, PointsMultiplier(11))
	assert.EqualValues(t, 9, PointsMultiplier(12))
	assert.EqualValues(t, 2, PointsMultiplier(99))
	assert.EqualValues(t, 1, PointsMultiplier(100))
	assert.EqualValues(t, 1, PointsMultiplier(5000))
	assert.EqualValues(t, 1, PointsMultiplier(0))
}

func testKey(v byte) ed25519.PublicKey {
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	for i := range key {
		key[i] = v
	}
	return key
}
