package madraffle

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var (
	trackerPrefix    = []byte("tracker")
	superVaultPrefix = []byte("skull")
	rafflePrefix     = []byte("raffle")
)

const raffleIdSeedSize = 8

func GetTrackerAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		trackerPrefix,
	)
}

func GetSuperVaultAddress(program ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		superVaultPrefix,
	)
}

type GetRaffleAddressArgs struct {
	Program  ed25519.PublicKey
	RaffleId uint64
}

func GetRaffleAddress(args *GetRaffleAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		args.Program,
		rafflePrefix,
		RaffleIdSeed(args.RaffleId),
	)
}

// RaffleIdSeed encodes a raffle id the way the program's seeds do: 8 bytes,
// least significant first.
func RaffleIdSeed(id uint64) []byte {
	seed := make([]byte, raffleIdSeedSize)
	binary.LittleEndian.PutUint64(seed, id)
	return seed
}

func RaffleIdFromSeed(seed []byte) (uint64, error) {
	if len(seed) != raffleIdSeedSize {
		return 0, errors.Errorf("invalid raffle id seed length: %d", len(seed))
	}
	return binary.LittleEndian.Uint64(seed), nil
}
