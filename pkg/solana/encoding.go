package solana

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/solana/shortvec"
)

// Legacy messages have the high bit of the first byte clear; versioned
// messages set it.
const versionPrefixMask = 0x80

var zeroPublicKey [ed25519.PublicKeySize]byte

func (t Transaction) Marshal() []byte {
	var b bytes.Buffer

	_, _ = shortvec.EncodeLen(&b, len(t.Signatures))
	for _, s := range t.Signatures {
		b.Write(s[:])
	}
	b.Write(t.Message.Marshal())

	return b.Bytes()
}

func (t *Transaction) Unmarshal(b []byte) error {
	r := bytes.NewReader(b)

	sigLen, err := shortvec.DecodeLen(r)
	if err != nil {
		return errors.Wrap(err, "failed to read signature length")
	}

	t.Signatures = make([]Signature, sigLen)
	for i := range t.Signatures {
		if _, err = io.ReadFull(r, t.Signatures[i][:]); err != nil {
			return errors.Wrapf(err, "failed to read signature at %d", i)
		}
	}

	rest := make([]byte, r.Len())
	_, _ = r.Read(rest)
	return (&t.Message).Unmarshal(rest)
}

func (m Message) Marshal() []byte {
	var b bytes.Buffer

	b.WriteByte(m.Header.NumSignatures)
	b.WriteByte(m.Header.NumReadonlySigned)
	b.WriteByte(m.Header.NumReadOnly)

	_, _ = shortvec.EncodeLen(&b, len(m.Accounts))
	for _, a := range m.Accounts {
		// Unset accounts encode as the zero key
		if len(a) != ed25519.PublicKeySize {
			b.Write(zeroPublicKey[:])
			continue
		}
		b.Write(a)
	}

	b.Write(m.RecentBlockhash[:])

	_, _ = shortvec.EncodeLen(&b, len(m.Instructions))
	for _, ixn := range m.Instructions {
		b.WriteByte(ixn.ProgramIndex)
		writeVec(&b, ixn.Accounts)
		writeVec(&b, ixn.Data)
	}

	return b.Bytes()
}

func (m *Message) Unmarshal(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty message")
	}
	if b[0]&versionPrefixMask != 0 {
		return errors.New("versioned messages not supported")
	}

	r := bytes.NewReader(b)

	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); err != nil {
		return errors.Wrap(err, "failed to read message header")
	}
	m.Header = Header{
		NumSignatures:     header[0],
		NumReadonlySigned: header[1],
		NumReadOnly:       header[2],
	}

	accountLen, err := shortvec.DecodeLen(r)
	if err != nil {
		return errors.Wrap(err, "failed to read account len")
	}
	m.Accounts = make([]ed25519.PublicKey, accountLen)
	for i := range m.Accounts {
		m.Accounts[i] = make(ed25519.PublicKey, ed25519.PublicKeySize)
		if _, err := io.ReadFull(r, m.Accounts[i]); err != nil {
			return errors.Wrapf(err, "failed to read account at index %d", i)
		}
	}

	if _, err := io.ReadFull(r, m.RecentBlockhash[:]); err != nil {
		return errors.Wrap(err, "failed to read recent block hash")
	}

	instructionLen, err := shortvec.DecodeLen(r)
	if err != nil {
		return errors.Wrap(err, "failed to read instruction len")
	}
	m.Instructions = make([]CompiledInstruction, instructionLen)
	for i := range m.Instructions {
		ixn, err := readCompiledInstruction(r, len(m.Accounts))
		if err != nil {
			return errors.Wrapf(err, "invalid instruction %d", i)
		}
		m.Instructions[i] = ixn
	}

	return nil
}

func readCompiledInstruction(r *bytes.Reader, numAccounts int) (ixn CompiledInstruction, err error) {
	if ixn.ProgramIndex, err = r.ReadByte(); err != nil {
		return ixn, errors.Wrap(err, "failed to read program index")
	}
	if int(ixn.ProgramIndex) >= numAccounts {
		return ixn, errors.Errorf("program index out of range: %d", ixn.ProgramIndex)
	}

	if ixn.Accounts, err = readVec(r); err != nil {
		return ixn, errors.Wrap(err, "failed to read accounts")
	}
	for _, index := range ixn.Accounts {
		if int(index) >= numAccounts {
			return ixn, errors.Errorf("account index out of range: %d", index)
		}
	}

	if ixn.Data, err = readVec(r); err != nil {
		return ixn, errors.Wrap(err, "failed to read data")
	}
	return ixn, nil
}

func writeVec(b *bytes.Buffer, v []byte) {
	_, _ = shortvec.EncodeLen(b, len(v))
	b.Write(v)
}

func readVec(r *bytes.Reader) ([]byte, error) {
	n, err := shortvec.DecodeLen(r)
	if err != nil {
		return nil, err
	}
	if n > r.Len() {
		return nil, io.ErrUnexpectedEOF
	}

	v := make([]byte, n)
	if _, err := io.ReadFull(r, v); err != nil {
		return nil, err
	}
	return v, nil
}
