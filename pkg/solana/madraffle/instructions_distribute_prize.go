package madraffle

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var distributePrizeInstructionDiscriminator = []byte{
	0x99, 0xaf, 0x43, 0x6f, 0xcd, 0xcf, 0x6a, 0x0f,
}

type DistributePrizeInstructionArgs struct {
	RaffleId          uint64
	AuthorizationData *AuthorizationData
	RulesAccPresent   bool
}

type DistributePrizeInstructionAccounts struct {
	Authority ed25519.PublicKey
	Winner    ed25519.PublicKey
	Transfer  PnftTransferAccounts
	Raffle    ed25519.PublicKey

	RemainingAccounts []solana.AccountMeta
}

func NewDistributePrizeInstruction(
	program ed25519.PublicKey,
	accounts *DistributePrizeInstructionAccounts,
	args *DistributePrizeInstructionArgs,
) (solana.Instruction, error) {
	buf, enc := newInstructionData(distributePrizeInstructionDiscriminator)
	if err := enc.WriteUint64(args.RaffleId, bin.LE); err != nil {
		return solana.Instruction{}, err
	}
	if err := putOptionalAuthorizationData(enc, args.AuthorizationData); err != nil {
		return solana.Instruction{}, err
	}
	if err := enc.WriteBool(args.RulesAccPresent); err != nil {
		return solana.Instruction{}, err
	}

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.Authority,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.Winner,
			IsWritable: true,
			IsSigner:   false,
		},
	}
	metas = append(metas, pnftTransferAccountMetas(&accounts.Transfer)...)
	metas = append(metas, solana.AccountMeta{
		PublicKey:  accounts.Raffle,
		IsWritable: true,
		IsSigner:   false,
	})

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: buf.Bytes(),

		// Instruction accounts
		Accounts: append(metas, accounts.RemainingAccounts...),
	}, nil
}
