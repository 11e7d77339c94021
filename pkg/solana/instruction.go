package solana

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"
)

// ErrIncorrectInstruction is returned when instruction data does not match the
// instruction it is parsed as.
var ErrIncorrectInstruction = errors.New("incorrect instruction")

// AccountMeta describes one account referenced by an instruction.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	isPayer    bool
	isProgram  bool
}

// NewAccountMeta creates a writable AccountMeta.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a readonly AccountMeta.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey: pub,
		IsSigner:  isSigner,
	}
}

// sortableAccountMeta orders accounts the way the runtime expects them in a
// message: payer first, then signers, then writable accounts, programs last.
//
// Reference: https://docs.solana.com/transaction#account-addresses-format
type sortableAccountMeta []AccountMeta

func (s sortableAccountMeta) Len() int      { return len(s) }
func (s sortableAccountMeta) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s sortableAccountMeta) Less(i, j int) bool {
	a, b := s[i], s[j]
	switch {
	case a.isPayer != b.isPayer:
		return a.isPayer
	case a.isProgram != b.isProgram:
		return !a.isProgram
	case a.IsSigner != b.IsSigner:
		return a.IsSigner
	case a.IsWritable != b.IsWritable:
		return a.IsWritable
	}
	return bytes.Compare(a.PublicKey, b.PublicKey) < 0
}

// Instruction is a single program invocation within a transaction.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// CompiledInstruction is an Instruction with accounts replaced by indexes into
// the message account list.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}
