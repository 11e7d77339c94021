package token

import (
	"bytes"
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"
)

type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L125
const AccountSize = 165

type Account struct {
	// The mint associated with this account
	Mint ed25519.PublicKey
	// The owner of this account.
	Owner ed25519.PublicKey
	// The amount of tokens this account holds.
	Amount uint64
	// If set, then the 'DelegatedAmount' represents the amount
	// authorized by the delegate.
	Delegate ed25519.PublicKey
	/// The account's state
	State AccountState
	// If set, this is a native token, and the value logs the rent-exempt reserve.
	IsNative *uint64
	// The amount delegated
	DelegatedAmount uint64
	// Optional authority to close the account.
	CloseAuthority ed25519.PublicKey
}

// Marshal encodes the account in its on-chain layout. COption values carry a
// four byte tag.
func (a *Account) Marshal() []byte {
	b := bytes.NewBuffer(make([]byte, 0, AccountSize))
	enc := bin.NewBinEncoder(b)

	_ = enc.WriteBytes(padKey(a.Mint), false)
	_ = enc.WriteBytes(padKey(a.Owner), false)
	_ = enc.WriteUint64(a.Amount, bin.LE)
	writeOptionalKey(enc, a.Delegate)
	_ = enc.WriteUint8(uint8(a.State))
	if a.IsNative != nil {
		_ = enc.WriteUint32(1, bin.LE)
		_ = enc.WriteUint64(*a.IsNative, bin.LE)
	} else {
		_ = enc.WriteUint32(0, bin.LE)
		_ = enc.WriteUint64(0, bin.LE)
	}
	_ = enc.WriteUint64(a.DelegatedAmount, bin.LE)
	writeOptionalKey(enc, a.CloseAuthority)

	return b.Bytes()
}

func (a *Account) Unmarshal(b []byte) bool {
	if len(b) != AccountSize {
		return false
	}

	dec := bin.NewBinDecoder(b)

	var err error
	if a.Mint, err = dec.ReadNBytes(ed25519.PublicKeySize); err != nil {
		return false
	}
	if a.Owner, err = dec.ReadNBytes(ed25519.PublicKeySize); err != nil {
		return false
	}
	if a.Amount, err = dec.ReadUint64(bin.LE); err != nil {
		return false
	}
	if a.Delegate, err = readOptionalKey(dec); err != nil {
		return false
	}
	state, err := dec.ReadUint8()
	if err != nil {
		return false
	}
	a.State = AccountState(state)

	tag, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return false
	}
	native, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return false
	}
	a.IsNative = nil
	if tag != 0 {
		a.IsNative = &native
	}

	if a.DelegatedAmount, err = dec.ReadUint64(bin.LE); err != nil {
		return false
	}
	if a.CloseAuthority, err = readOptionalKey(dec); err != nil {
		return false
	}

	return true
}

// IsNft returns whether the account holds exactly one token, the shape every
// NFT holding takes.
func (a *Account) IsNft() bool {
	return a.Amount == 1 && a.State != AccountStateUninitialized
}

func readOptionalKey(dec *bin.Decoder) (ed25519.PublicKey, error) {
	tag, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	key, err := dec.ReadNBytes(ed25519.PublicKeySize)
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil
	}
	return key, nil
}

func writeOptionalKey(enc *bin.Encoder, key ed25519.PublicKey) {
	if len(key) == 0 {
		_ = enc.WriteUint32(0, bin.LE)
	} else {
		_ = enc.WriteUint32(1, bin.LE)
	}
	_ = enc.WriteBytes(padKey(key), false)
}

func padKey(key ed25519.PublicKey) []byte {
	padded := make([]byte, ed25519.PublicKeySize)
	copy(padded, key)
	return padded
}
