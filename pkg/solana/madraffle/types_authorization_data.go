package madraffle

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

type PayloadType uint8

const (
	PayloadTypePubkey PayloadType = iota
	PayloadTypeSeeds
	PayloadTypeMerkleProof
	PayloadTypeNumber
)

// Payload is one rule-set payload value. Exactly the field matching Type is
// used.
type Payload struct {
	Type        PayloadType
	Pubkey      ed25519.PublicKey
	Seeds       [][]byte
	MerkleProof [][32]byte
	Number      uint64
}

type TaggedPayload struct {
	Name    string
	Payload Payload
}

// AuthorizationData is the optional payload forwarded to the token
// authorization rules program when moving a programmable NFT.
type AuthorizationData struct {
	Payload []TaggedPayload
}

// putOptionalAuthorizationData writes Option<AuthorizationDataLocal>.
func putOptionalAuthorizationData(enc *bin.Encoder, data *AuthorizationData) error {
	if data == nil {
		return enc.WriteBool(false)
	}
	if err := enc.WriteBool(true); err != nil {
		return err
	}

	if err := enc.WriteUint32(uint32(len(data.Payload)), bin.LE); err != nil {
		return err
	}
	for _, tagged := range data.Payload {
		if err := putString(enc, tagged.Name); err != nil {
			return err
		}
		if err := putPayload(enc, tagged.Payload); err != nil {
			return errors.Wrapf(err, "invalid payload %q", tagged.Name)
		}
	}
	return nil
}

func putPayload(enc *bin.Encoder, payload Payload) error {
	if err := enc.WriteUint8(uint8(payload.Type)); err != nil {
		return err
	}

	switch payload.Type {
	case PayloadTypePubkey:
		return putKey(enc, payload.Pubkey)
	case PayloadTypeSeeds:
		if err := enc.WriteUint32(uint32(len(payload.Seeds)), bin.LE); err != nil {
			return err
		}
		for _, seed := range payload.Seeds {
			if err := putVec(enc, seed); err != nil {
				return err
			}
		}
		return nil
	case PayloadTypeMerkleProof:
		if err := enc.WriteUint32(uint32(len(payload.MerkleProof)), bin.LE); err != nil {
			return err
		}
		for _, node := range payload.MerkleProof {
			if err := enc.WriteBytes(node[:], false); err != nil {
				return err
			}
		}
		return nil
	case PayloadTypeNumber:
		return enc.WriteUint64(payload.Number, bin.LE)
	default:
		return errors.Errorf("unknown payload type: %d", payload.Type)
	}
}
