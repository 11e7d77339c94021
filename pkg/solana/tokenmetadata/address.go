package tokenmetadata

import (
	"crypto/ed25519"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var (
	metadataPrefix    = []byte("metadata")
	editionPrefix     = []byte("edition")
	tokenRecordPrefix = []byte("token_record")
)

func GetMetadataAddress(mint ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		metadataPrefix,
		PROGRAM_ID,
		mint,
	)
}

func GetMasterEditionAddress(mint ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		metadataPrefix,
		PROGRAM_ID,
		mint,
		editionPrefix,
	)
}

type GetTokenRecordAddressArgs struct {
	Mint         ed25519.PublicKey
	TokenAccount ed25519.PublicKey
}

func GetTokenRecordAddress(args *GetTokenRecordAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		metadataPrefix,
		PROGRAM_ID,
		args.Mint,
		tokenRecordPrefix,
		args.TokenAccount,
	)
}
