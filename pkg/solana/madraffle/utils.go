package madraffle

import (
	"bytes"
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"
)

// Anchor prefixes instruction data and account data with the first 8 bytes of
// sha256("global:<instruction>") and sha256("account:<Account>").
const discriminatorSize = 8

func newInstructionData(discriminator []byte) (*bytes.Buffer, *bin.Encoder) {
	buf := bytes.NewBuffer(nil)
	buf.Write(discriminator)
	return buf, bin.NewBorshEncoder(buf)
}

func newAccountDecoder(data, discriminator []byte) (*bin.Decoder, error) {
	if len(data) < discriminatorSize || !bytes.Equal(data[:discriminatorSize], discriminator) {
		return nil, ErrInvalidAccountData
	}
	return bin.NewBorshDecoder(data[discriminatorSize:]), nil
}

func putKey(enc *bin.Encoder, key ed25519.PublicKey) error {
	padded := make([]byte, ed25519.PublicKeySize)
	copy(padded, key)
	return enc.WriteBytes(padded, false)
}

func getKey(dec *bin.Decoder) (ed25519.PublicKey, error) {
	b, err := dec.ReadNBytes(ed25519.PublicKeySize)
	if err != nil {
		return nil, err
	}
	return ed25519.PublicKey(b), nil
}

func getOptionalKey(dec *bin.Decoder) (ed25519.PublicKey, error) {
	present, err := dec.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	return getKey(dec)
}

// Borsh prefixes strings and byte vectors with a u32 length.
func putVec(enc *bin.Encoder, b []byte) error {
	if err := enc.WriteUint32(uint32(len(b)), bin.LE); err != nil {
		return err
	}
	return enc.WriteBytes(b, false)
}

func putString(enc *bin.Encoder, s string) error {
	return putVec(enc, []byte(s))
}
