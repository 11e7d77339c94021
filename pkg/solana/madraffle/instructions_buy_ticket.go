package madraffle

import (
	"crypto/ed25519"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var buyTicketInstructionDiscriminator = []byte{
	0x0b, 0x18, 0x11, 0xc1, 0xa8, 0x74, 0xa4, 0xa9,
}

const (
	BuyTicketInstructionArgsSize = 0
)

type BuyTicketInstructionArgs struct {
}

type BuyTicketInstructionAccounts struct {
	Raffle     ed25519.PublicKey
	Buyer      ed25519.PublicKey
	FeeVault   ed25519.PublicKey
	Tracker    ed25519.PublicKey
	SuperVault ed25519.PublicKey
}

func NewBuyTicketInstruction(
	program ed25519.PublicKey,
	accounts *BuyTicketInstructionAccounts,
	args *BuyTicketInstructionArgs,
) solana.Instruction {
	buf, _ := newInstructionData(buyTicketInstructionDiscriminator)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: buf.Bytes(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Raffle,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Buyer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.FeeVault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
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
		},
	}
}
