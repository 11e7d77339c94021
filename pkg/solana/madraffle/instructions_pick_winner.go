package madraffle

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var pickWinnerInstructionDiscriminator = []byte{
	0xe3, 0x3e, 0x19, 0x49, 0x84, 0x6a, 0x44, 0x60,
}

const (
	PickWinnerInstructionArgsSize = 8 // raffle_id
)

type PickWinnerInstructionArgs struct {
	RaffleId uint64
}

type PickWinnerInstructionAccounts struct {
	Raffle    ed25519.PublicKey
	Authority ed25519.PublicKey
	Random    ed25519.PublicKey
	PriceFeed ed25519.PublicKey
}

// NewPickWinnerInstruction is select winner seeded additionally by a SOL price
// feed read on chain.
func NewPickWinnerInstruction(
	program ed25519.PublicKey,
	accounts *PickWinnerInstructionAccounts,
	args *PickWinnerInstructionArgs,
) solana.Instruction {
	buf, enc := newInstructionData(pickWinnerInstructionDiscriminator)
	_ = enc.WriteUint64(args.RaffleId, bin.LE)

	metas := selectWinnerAccountMetas(&SelectWinnerInstructionAccounts{
		Raffle:    accounts.Raffle,
		Authority: accounts.Authority,
		Random:    accounts.Random,
	})

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: buf.Bytes(),

		// Instruction accounts
		Accounts: append(metas, solana.AccountMeta{
			PublicKey:  accounts.PriceFeed,
			IsWritable: false,
			IsSigner:   false,
		}),
	}
}
