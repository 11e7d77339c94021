package madraffle

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrackerAddress(t *testing.T) {
	address, bump, err := GetTrackerAddress(DEVNET_PROGRAM_ID)
	require.NoError(t, err)
	assert.Equal(t, "Bqw7UxAEq9TzJy77RFqEg8tGJf4auhXgztABCQqepxGC", base58.Encode(address))
	assert.EqualValues(t, 252, bump)

	address, _, err = GetTrackerAddress(MAINNET_PROGRAM_ID)
	require.NoError(t, err)
	assert.Equal(t, "EMJqfZvQyaRpwNNmGLfpcEzT7ScNayHL7y7mZibEdX5t", base58.Encode(address))
}

func TestGetSuperVaultAddress(t *testing.T) {
	address, bump, err := GetSuperVaultAddress(DEVNET_PROGRAM_ID)
	require.NoError(t, err)
	assert.Equal(t, "Bzc4AaZsCY9LfJuqNUAafQnVU49nWhmvpKnpvt7T4H5W", base58.Encode(address))
	assert.EqualValues(t, 255, bump)
}

func TestGetRaffleAddress(t *testing.T) {
	for _, tc := range []struct {
		id       uint64
		expected string
		bump     uint8
	}{
		{1, "2fpy1mWBSZRdvh9uYjiBqzr6P3vkB6fmFRdUwCCD4cJu", 254},
		{2, "BU3PGFNern4JgovHA8n66Gp9fMXhnPwYwx8Gyq6R2bvC", 253},
		{256, "Cz2kzkRMzgZL2ZGFVbb7Jag1by9iC9FtDhLqvXveUo4S", 255},
	} {
		address, bump, err := GetRaffleAddress(&GetRaffleAddressArgs{
			Program:  DEVNET_PROGRAM_ID,
			RaffleId: tc.id,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.expected, base58.Encode(address), tc.id)
		assert.Equal(t, tc.bump, bump, tc.id)
	}
}

func TestGetRaffleAddress_Deterministic(t *testing.T) {
	args := &GetRaffleAddressArgs{Program: DEVNET_PROGRAM_ID, RaffleId: 42}

	first, _, err := GetRaffleAddress(args)
	require.NoError(t, err)
	second, _, err := GetRaffleAddress(args)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, _, err := GetRaffleAddress(&GetRaffleAddressArgs{Program: MAINNET_PROGRAM_ID, RaffleId: 42})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestRaffleIdSeed(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, RaffleIdSeed(1))
	assert.Equal(t, []byte{0, 1, 0, 0, 0, 0, 0, 0}, RaffleIdSeed(256))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, RaffleIdSeed(^uint64(0)))

	for _, id := range []uint64{0, 1, 2, 255, 256, 1<<32 - 1, 1<<53 - 1, ^uint64(0)} {
		seed := RaffleIdSeed(id)
		for i := 0; i < raffleIdSeedSize; i++ {
			assert.Equal(t, byte((id>>(8*uint(i)))&0xff), seed[i])
		}

		decoded, err := RaffleIdFromSeed(seed)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}

	_, err := RaffleIdFromSeed([]byte{1, 2, 3})
	assert.Error(t, err)
}
