package tokenmetadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var testMint = solana.MustPublicKeyFromBase58("CLxN2mQsewGLsTKw3gML1AWFQjrWpG6WgLYTLX9BdhRp")

func TestGetMetadataAddress(t *testing.T) {
	address, bump, err := GetMetadataAddress(testMint)
	require.NoError(t, err)
	assert.Equal(t, "CHyPCxG7kKgpFngfDBNF1A5SYMFj9qTadKy96SB5fMyb", solana.PublicKeyToBase58(address))
	assert.EqualValues(t, 255, bump)
}

func TestGetMasterEditionAddress(t *testing.T) {
	address, bump, err := GetMasterEditionAddress(testMint)
	require.NoError(t, err)
	assert.Equal(t, "4sK882tPssTdJvRYuf3EsCCeRY5yhQPuF81VF6HX1wDY", solana.PublicKeyToBase58(address))
	assert.EqualValues(t, 255, bump)
}

func TestGetTokenRecordAddress(t *testing.T) {
	address, bump, err := GetTokenRecordAddress(&GetTokenRecordAddressArgs{
		Mint:         testMint,
		TokenAccount: solana.MustPublicKeyFromBase58("AuthtWB95Cf3KaHh2gTsQLfKNtsGMgFg9BxgqbHjeLVy"),
	})
	require.NoError(t, err)
	assert.Equal(t, "26izdFGMsgj4ojkGKq9fnMXNzthaPsoHftW6os11Nkgj", solana.PublicKeyToBase58(address))
	assert.EqualValues(t, 252, bump)
}
