package madraffle

import (
	"crypto/ed25519"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var initializeInstructionDiscriminator = []byte{
	0xaf, 0xaf, 0x6d, 0x1f, 0x0d, 0x98, 0x9b, 0xed,
}

const (
	InitializeInstructionArgsSize = 0
)

type InitializeInstructionArgs struct {
}

type InitializeInstructionAccounts struct {
	Tracker    ed25519.PublicKey
	SuperVault ed25519.PublicKey
	Raffle     ed25519.PublicKey
	Authority  ed25519.PublicKey
}

// NewInitializeInstruction creates the tracker, the super vault and raffle #1.
func NewInitializeInstruction(
	program ed25519.PublicKey,
	accounts *InitializeInstructionAccounts,
	args *InitializeInstructionArgs,
) solana.Instruction {
	buf, _ := newInstructionData(initializeInstructionDiscriminator)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: buf.Bytes(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Tracker,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.SuperVault,
				IsWritable: true,
				IsSigner:   false,
			},
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
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
