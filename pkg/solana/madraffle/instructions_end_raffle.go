package madraffle

import (
	"crypto/ed25519"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var endRaffleInstructionDiscriminator = []byte{
	0x10, 0x81, 0xe2, 0xe7, 0x66, 0xd4, 0x5b, 0xec,
}

type EndRaffleInstructionArgs struct {
	AuthorizationData *AuthorizationData
	RulesAccPresent   bool
}

// PnftTransferAccounts are the token metadata accounts shared by every
// instruction that moves a programmable NFT.
type PnftTransferAccounts struct {
	Source           ed25519.PublicKey
	Destination      ed25519.PublicKey
	NftMint          ed25519.PublicKey
	NftMetadata      ed25519.PublicKey
	Edition          ed25519.PublicKey
	OwnerTokenRecord ed25519.PublicKey
	DestTokenRecord  ed25519.PublicKey
}

type EndRaffleInstructionAccounts struct {
	Owner     ed25519.PublicKey
	Transfer  PnftTransferAccounts
	Raffle    ed25519.PublicKey
	NewRaffle ed25519.PublicKey
	Tracker   ed25519.PublicKey

	// Up to MaxCreators royalty recipients, in metadata order. Missing
	// entries are passed as absent optional accounts.
	Creators []ed25519.PublicKey

	RemainingAccounts []solana.AccountMeta
}

func NewEndRaffleInstruction(
	program ed25519.PublicKey,
	accounts *EndRaffleInstructionAccounts,
	args *EndRaffleInstructionArgs,
) (solana.Instruction, error) {
	if len(accounts.Creators) > MaxCreators {
		return solana.Instruction{}, ErrTooManyCreators
	}

	buf, enc := newInstructionData(endRaffleInstructionDiscriminator)
	if err := putOptionalAuthorizationData(enc, args.AuthorizationData); err != nil {
		return solana.Instruction{}, err
	}
	if err := enc.WriteBool(args.RulesAccPresent); err != nil {
		return solana.Instruction{}, err
	}

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.Owner,
			IsWritable: true,
			IsSigner:   true,
		},
	}
	metas = append(metas, pnftTransferAccountMetas(&accounts.Transfer)...)
	metas = append(metas,
		solana.AccountMeta{
			PublicKey:  accounts.Raffle,
			IsWritable: true,
			IsSigner:   false,
		},
		solana.AccountMeta{
			PublicKey:  accounts.NewRaffle,
			IsWritable: true,
			IsSigner:   false,
		},
		solana.AccountMeta{
			PublicKey:  accounts.Tracker,
			IsWritable: true,
			IsSigner:   false,
		},
	)
	for i := 0; i < MaxCreators; i++ {
		var creator ed25519.PublicKey
		if i < len(accounts.Creators) {
			creator = accounts.Creators[i]
		}
		metas = append(metas, optionalAccountMeta(program, creator, true))
	}

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: buf.Bytes(),

		// Instruction accounts
		Accounts: append(metas, accounts.RemainingAccounts...),
	}, nil
}

// pnftTransferAccountMetas lists src through authorizationRulesProgram in the
// order the program's account structs declare them.
func pnftTransferAccountMetas(accounts *PnftTransferAccounts) []solana.AccountMeta {
	return []solana.AccountMeta{
		{
			PublicKey:  accounts.Source,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Destination,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.NftMint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SPL_TOKEN_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSVAR_RENT_PUBKEY,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.NftMetadata,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Edition,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.OwnerTokenRecord,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.DestTokenRecord,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  TOKEN_METADATA_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSVAR_INSTRUCTIONS_PUBKEY,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  AUTHORIZATION_RULES_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
	}
}

// optionalAccountMeta follows Anchor's convention for an absent optional
// account: the program id itself, read only.
func optionalAccountMeta(program, account ed25519.PublicKey, isWritable bool) solana.AccountMeta {
	if len(account) == 0 {
		return solana.AccountMeta{
			PublicKey:  program,
			IsWritable: false,
			IsSigner:   false,
		}
	}
	return solana.AccountMeta{
		PublicKey:  account,
		IsWritable: isWritable,
		IsSigner:   false,
	}
}
