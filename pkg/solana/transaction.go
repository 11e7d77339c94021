package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (b Blockhash) String() string {
	return base58.Encode(b[:])
}

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is a legacy transaction message.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles the instructions into an unsigned transaction paid
// for by payer.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	accounts := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}
	for _, ixn := range instructions {
		accounts = append(accounts, AccountMeta{PublicKey: ixn.Program, isProgram: true})
		accounts = append(accounts, ixn.Accounts...)
	}

	accounts = filterUnique(accounts)
	sort.Sort(sortableAccountMeta(accounts))

	var m Message
	for _, account := range accounts {
		m.Accounts = append(m.Accounts, account.PublicKey)

		if account.IsSigner {
			m.Header.NumSignatures++
			if !account.IsWritable {
				m.Header.NumReadonlySigned++
			}
		} else if !account.IsWritable {
			m.Header.NumReadOnly++
		}
	}

	for _, ixn := range instructions {
		compiled := CompiledInstruction{
			ProgramIndex: byte(indexOf(m.Accounts, ixn.Program)),
			Data:         ixn.Data,
		}
		for _, a := range ixn.Accounts {
			compiled.Accounts = append(compiled.Accounts, byte(indexOf(m.Accounts, a.PublicKey)))
		}
		m.Instructions = append(m.Instructions, compiled)
	}

	for i := range m.Accounts {
		if len(m.Accounts[i]) == 0 {
			m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		}
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// Signature returns the first (fee payer) signature.
func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

// Sign signs the message with each of the provided keys. Every signer must be
// one of the message's signing accounts.
func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)
		index := indexOf(t.Message.Accounts, pub)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, messageBytes))
	}

	return nil
}

func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString("Signatures:\n")
	for i, s := range t.Signatures {
		sb.WriteString(fmt.Sprintf("  %d: %s\n", i, s))
	}
	sb.WriteString("Message:\n")
	sb.WriteString(fmt.Sprintf("  Header: %d signatures, %d readonly signed, %d readonly\n",
		t.Message.Header.NumSignatures,
		t.Message.Header.NumReadonlySigned,
		t.Message.Header.NumReadOnly,
	))
	sb.WriteString(fmt.Sprintf("  Blockhash: %s\n", t.Message.RecentBlockhash))
	sb.WriteString("  Accounts:\n")
	for i, a := range t.Message.Accounts {
		sb.WriteString(fmt.Sprintf("    %d: %s\n", i, base58.Encode(a)))
	}
	sb.WriteString("  Instructions:\n")
	for i, ixn := range t.Message.Instructions {
		sb.WriteString(fmt.Sprintf("    %d: program=%d accounts=%v data=%x\n", i, ixn.ProgramIndex, ixn.Accounts, ixn.Data))
	}
	return sb.String()
}

// filterUnique merges duplicate accounts, promoting permissions so that an
// account is a signer or writable if any reference requires it.
func filterUnique(accounts []AccountMeta) []AccountMeta {
	filtered := make([]AccountMeta, 0, len(accounts))

	for _, account := range accounts {
		existing := -1
		for j := range filtered {
			if bytes.Equal(account.PublicKey, filtered[j].PublicKey) {
				existing = j
				break
			}
		}

		if existing < 0 {
			filtered = append(filtered, account)
			continue
		}

		filtered[existing].IsSigner = filtered[existing].IsSigner || account.IsSigner
		filtered[existing].IsWritable = filtered[existing].IsWritable || account.IsWritable
		filtered[existing].isPayer = filtered[existing].isPayer || account.isPayer
	}

	return filtered
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}
	return -1
}
