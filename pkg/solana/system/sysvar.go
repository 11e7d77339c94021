package system

import (
	"crypto/ed25519"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

// RentSysVar points to the system variable "Rent"
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/rent.rs#L11
var RentSysVar = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")

// InstructionsSysVar points to the system variable "Instructions", which token
// metadata inspects when moving programmable NFTs.
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/sysvar/instructions.rs#L30
var InstructionsSysVar = solana.MustPublicKeyFromBase58("Sysvar1nstructions1111111111111111111111111")

// ProgramKey is the system program's address, the all-zero key.
var ProgramKey [32]byte

// SystemAccount is the system program's address.
//
// https://explorer.solana.com/address/11111111111111111111111111111111
var SystemAccount ed25519.PublicKey = ProgramKey[:]
