package madraffle

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var selectWinnerInstructionDiscriminator = []byte{
	0x77, 0x42, 0x2c, 0xec, 0x4f, 0x9e, 0x52, 0x33,
}

const (
	SelectWinnerInstructionArgsSize = 8 // raffle_id
)

type SelectWinnerInstructionArgs struct {
	RaffleId uint64
}

type SelectWinnerInstructionAccounts struct {
	Raffle    ed25519.PublicKey
	Authority ed25519.PublicKey
	Random    ed25519.PublicKey
}

func NewSelectWinnerInstruction(
	program ed25519.PublicKey,
	accounts *SelectWinnerInstructionAccounts,
	args *SelectWinnerInstructionArgs,
) solana.Instruction {
	buf, enc := newInstructionData(selectWinnerInstructionDiscriminator)
	_ = enc.WriteUint64(args.RaffleId, bin.LE)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: buf.Bytes(),

		// Instruction accounts
		Accounts: selectWinnerAccountMetas(accounts),
	}
}

func selectWinnerAccountMetas(accounts *SelectWinnerInstructionAccounts) []solana.AccountMeta {
	return []solana.AccountMeta{
		{
			PublicKey:  accounts.Raffle,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Authority,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.Random,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
	}
}
