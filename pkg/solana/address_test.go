package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"hash"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProgramAddress(t *testing.T) {
	programID := MustPublicKeyFromBase58("BPFLoader1111111111111111111111111111111111")
	// Typo preserved from the upstream Solana vectors.
	seedKey := MustPublicKeyFromBase58("SeedPubey1111111111111111111111111111111111")

	_, err := CreateProgramAddress(programID, make([]byte, maxSeedLength+1))
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)

	_, err = CreateProgramAddress(programID, []byte("short seed"), make([]byte, maxSeedLength+1))
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)

	_, err = CreateProgramAddress(programID, make([]byte, maxSeedLength))
	assert.NoError(t, err)

	_, err = CreateProgramAddress(programID, make([][]byte, maxSeeds+1)...)
	assert.Equal(t, ErrTooManySeeds, err)

	for _, tc := range []struct {
		expected string
		seeds    [][]byte
	}{
		{"3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT", [][]byte{{}, {1}}},
		{"7ytmC1nT1xY4RfxCV2ZgyA7UakC93do5ZdyhdF3EtPj7", [][]byte{[]byte("☉")}},
		{"HwRVBufQ4haG5XSgpspwKtNd3PC9GM9m1196uJW36vds", [][]byte{[]byte("Talking"), []byte("Squirrels")}},
		{"GUs5qLUfsEHkcMB9T38vjr18ypEhRuNWiePW2LoK4E3K", [][]byte{seedKey}},
	} {
		actual, err := CreateProgramAddress(programID, tc.seeds...)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, base58.Encode(actual))
	}
}

type fixedHash struct {
	out []byte
}

func (h *fixedHash) Write(p []byte) (int, error) { return len(p), nil }
func (h *fixedHash) Sum(_ []byte) []byte         { return h.out }
func (h *fixedHash) Reset()                      {}
func (h *fixedHash) Size() int                   { return sha256.Size }
func (h *fixedHash) BlockSize() int              { return sha256.BlockSize }

func withOnCurveHash(t *testing.T) {
	onCurve, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	programHashCtor = func() hash.Hash {
		return &fixedHash{out: onCurve}
	}
	t.Cleanup(func() {
		programHashCtor = sha256.New
	})
}

func TestCreateProgramAddress_OnCurve(t *testing.T) {
	withOnCurveHash(t)

	programID, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	_, err = CreateProgramAddress(programID, []byte("Lil'"), []byte("Bits"))
	assert.Equal(t, ErrInvalidPublicKey, err)
}

func TestFindProgramAddress_NoViableBump(t *testing.T) {
	withOnCurveHash(t)

	programID, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	_, _, err = FindProgramAddressAndBump(programID, []byte("raffle"))
	assert.Equal(t, ErrNoValidBump, err)
}

func TestFindProgramAddress_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		programID, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		first, bump, err := FindProgramAddressAndBump(programID, []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)

		again, err := CreateProgramAddress(programID, []byte("Lil'"), []byte("Bits"), []byte{bump})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFindProgramAddress_Ref(t *testing.T) {
	for _, r := range []struct {
		programID string
		expected  string
	}{
		{"4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM", "Bn9pAWUXWc5Kd849xTkQcHqiCbHUEizLFn4r5Cf8XYnd"},
		{"8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh", "oDvUHiiGdMo31xYzjefAzUekWH8EbCKrxgs2FkyTs1S"},
		{"CiDwVBFgWV9E5MvXWoLgnEgn2hK7rJikbvfWavzAQz3", "B2vBn2bmF9GuaGkebrm8oUqDC34pE6m4bagjNcVE6msv"},
		{"GcdayuLaLyrdmUu324nahyv33G5poQdLUEZ1nEytDeP", "2mN5Nfq9v1EwTV9FPTHPESZ3XiZce9wi5PQoULFuxvev"},
		{"LX3EUdRUBUa3TbsYXLEUdj9J3prXkWXvLYSWyYyc2Jj", "9CqF6oTZtW5zSeoLnZRoQmj3s2tXGPqifM1W8Z8LVE1z"},
		{"21Z7hRtGQYRi8NocdZzhRuBRt9UZbFXbm1dKYvevp4vB", "9PPbRbNP3rqwzk16r7NDBzk1YDfo9EpWDWSqCYLn5eaF"},
	} {
		actual, err := FindProgramAddress(MustPublicKeyFromBase58(r.programID), []byte("Lil'"), []byte("Bits"))
		require.NoError(t, err)
		assert.Equal(t, r.expected, base58.Encode(actual))
	}
}
