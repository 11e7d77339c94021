package tokenmetadata

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"io"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

type Key uint8

const (
	KeyUninitialized Key = iota
	KeyEditionV1
	KeyMasterEditionV1
	KeyReservationListV1
	KeyMetadataV1
)

type TokenStandard uint8

const (
	TokenStandardNonFungible TokenStandard = iota
	TokenStandardFungibleAsset
	TokenStandardFungible
	TokenStandardNonFungibleEdition
	TokenStandardProgrammableNonFungible
)

type Creator struct {
	Address  ed25519.PublicKey
	Verified bool
	Share    uint8
}

type Collection struct {
	Verified bool
	Key      ed25519.PublicKey
}

type Uses struct {
	UseMethod uint8
	Remaining uint64
	Total     uint64
}

type CollectionDetails struct {
	// Version 0 is V1 (size), version 1 is V2 (padding only).
	Version uint8
	Size    uint64
}

type ProgrammableConfig struct {
	RuleSet ed25519.PublicKey
}

// MetadataAccount is the Metaplex token metadata account of a mint. Fields
// after IsMutable are absent on accounts created by older program versions.
type MetadataAccount struct {
	Key                  Key
	UpdateAuthority      ed25519.PublicKey
	Mint                 ed25519.PublicKey
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator
	PrimarySaleHappened  bool
	IsMutable            bool
	EditionNonce         *uint8
	TokenStandard        *TokenStandard
	Collection           *Collection
	Uses                 *Uses
	CollectionDetails    *CollectionDetails
	ProgrammableConfig   *ProgrammableConfig
}

// Reference: https://github.com/metaplex-foundation/mpl-token-metadata/blob/a7ee5e17a0f10a1ba4ba2bb7ae2d3b01e47e2fef/programs/token-metadata/program/src/state/metadata.rs#L72
func (obj *MetadataAccount) Unmarshal(data []byte) error {
	dec := bin.NewBorshDecoder(data)

	key, err := dec.ReadUint8()
	if err != nil {
		return ErrInvalidAccountData
	}
	obj.Key = Key(key)
	if obj.Key != KeyMetadataV1 {
		return ErrInvalidAccountData
	}

	if obj.UpdateAuthority, err = getKey(dec); err != nil {
		return errors.Wrap(err, "invalid update authority")
	}
	if obj.Mint, err = getKey(dec); err != nil {
		return errors.Wrap(err, "invalid mint")
	}
	if obj.Name, err = getString(dec); err != nil {
		return errors.Wrap(err, "invalid name")
	}
	if obj.Symbol, err = getString(dec); err != nil {
		return errors.Wrap(err, "invalid symbol")
	}
	if obj.Uri, err = getString(dec); err != nil {
		return errors.Wrap(err, "invalid uri")
	}
	if obj.SellerFeeBasisPoints, err = dec.ReadUint16(bin.LE); err != nil {
		return errors.Wrap(err, "invalid seller fee basis points")
	}

	hasCreators, err := dec.ReadBool()
	if err != nil {
		return errors.Wrap(err, "invalid creators")
	}
	obj.Creators = nil
	if hasCreators {
		count, err := dec.ReadUint32(bin.LE)
		if err != nil {
			return errors.Wrap(err, "invalid creators")
		}
		if int(count)*(32+1+1) > dec.Remaining() {
			return ErrInvalidAccountData
		}

		obj.Creators = make([]Creator, count)
		for i := range obj.Creators {
			if obj.Creators[i].Address, err = getKey(dec); err != nil {
				return errors.Wrapf(err, "invalid creator %d", i)
			}
			if obj.Creators[i].Verified, err = dec.ReadBool(); err != nil {
				return errors.Wrapf(err, "invalid creator %d", i)
			}
			if obj.Creators[i].Share, err = dec.ReadUint8(); err != nil {
				return errors.Wrapf(err, "invalid creator %d", i)
			}
		}
	}

	if obj.PrimarySaleHappened, err = dec.ReadBool(); err != nil {
		return errors.Wrap(err, "invalid primary sale happened")
	}
	if obj.IsMutable, err = dec.ReadBool(); err != nil {
		return errors.Wrap(err, "invalid is mutable")
	}

	obj.EditionNonce, obj.TokenStandard, obj.Collection = nil, nil, nil
	obj.Uses, obj.CollectionDetails, obj.ProgrammableConfig = nil, nil, nil

	err = obj.unmarshalOptionalFields(dec)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil
	}
	return err
}

func (obj *MetadataAccount) unmarshalOptionalFields(dec *bin.Decoder) error {
	present, err := readOption(dec)
	if err != nil {
		return err
	}
	if present {
		nonce, err := dec.ReadUint8()
		if err != nil {
			return err
		}
		obj.EditionNonce = &nonce
	}

	if present, err = readOption(dec); err != nil {
		return err
	}
	if present {
		standard, err := dec.ReadUint8()
		if err != nil {
			return err
		}
		tokenStandard := TokenStandard(standard)
		obj.TokenStandard = &tokenStandard
	}

	if present, err = readOption(dec); err != nil {
		return err
	}
	if present {
		var collection Collection
		if collection.Verified, err = dec.ReadBool(); err != nil {
			return err
		}
		if collection.Key, err = getKey(dec); err != nil {
			return err
		}
		obj.Collection = &collection
	}

	if present, err = readOption(dec); err != nil {
		return err
	}
	if present {
		var uses Uses
		if uses.UseMethod, err = dec.ReadUint8(); err != nil {
			return err
		}
		if uses.Remaining, err = dec.ReadUint64(bin.LE); err != nil {
			return err
		}
		if uses.Total, err = dec.ReadUint64(bin.LE); err != nil {
			return err
		}
		obj.Uses = &uses
	}

	if present, err = readOption(dec); err != nil {
		return err
	}
	if present {
		var details CollectionDetails
		if details.Version, err = dec.ReadUint8(); err != nil {
			return err
		}
		switch details.Version {
		case 0:
			if details.Size, err = dec.ReadUint64(bin.LE); err != nil {
				return err
			}
		case 1:
			if _, err = dec.ReadNBytes(8); err != nil {
				return err
			}
		default:
			return errors.Errorf("unknown collection details version: %d", details.Version)
		}
		obj.CollectionDetails = &details
	}

	if present, err = readOption(dec); err != nil {
		return err
	}
	if present {
		version, err := dec.ReadUint8()
		if err != nil {
			return err
		}
		if version != 0 {
			return errors.Errorf("unknown programmable config version: %d", version)
		}

		var config ProgrammableConfig
		hasRuleSet, err := readOption(dec)
		if err != nil {
			return err
		}
		if hasRuleSet {
			if config.RuleSet, err = getKey(dec); err != nil {
				return err
			}
		}
		obj.ProgrammableConfig = &config
	}

	return nil
}

// Marshal encodes the account without trailing padding.
func (obj *MetadataAccount) Marshal() []byte {
	buf := bytes.NewBuffer(nil)
	enc := bin.NewBorshEncoder(buf)

	_ = enc.WriteUint8(uint8(obj.Key))
	putKey(enc, obj.UpdateAuthority)
	putKey(enc, obj.Mint)
	putString(enc, obj.Name)
	putString(enc, obj.Symbol)
	putString(enc, obj.Uri)
	_ = enc.WriteUint16(obj.SellerFeeBasisPoints, bin.LE)

	_ = enc.WriteBool(obj.Creators != nil)
	if obj.Creators != nil {
		_ = enc.WriteUint32(uint32(len(obj.Creators)), bin.LE)
		for _, creator := range obj.Creators {
			putKey(enc, creator.Address)
			_ = enc.WriteBool(creator.Verified)
			_ = enc.WriteUint8(creator.Share)
		}
	}

	_ = enc.WriteBool(obj.PrimarySaleHappened)
	_ = enc.WriteBool(obj.IsMutable)

	_ = enc.WriteBool(obj.EditionNonce != nil)
	if obj.EditionNonce != nil {
		_ = enc.WriteUint8(*obj.EditionNonce)
	}

	_ = enc.WriteBool(obj.TokenStandard != nil)
	if obj.TokenStandard != nil {
		_ = enc.WriteUint8(uint8(*obj.TokenStandard))
	}

	_ = enc.WriteBool(obj.Collection != nil)
	if obj.Collection != nil {
		_ = enc.WriteBool(obj.Collection.Verified)
		putKey(enc, obj.Collection.Key)
	}

	_ = enc.WriteBool(obj.Uses != nil)
	if obj.Uses != nil {
		_ = enc.WriteUint8(obj.Uses.UseMethod)
		_ = enc.WriteUint64(obj.Uses.Remaining, bin.LE)
		_ = enc.WriteUint64(obj.Uses.Total, bin.LE)
	}

	_ = enc.WriteBool(obj.CollectionDetails != nil)
	if obj.CollectionDetails != nil {
		_ = enc.WriteUint8(obj.CollectionDetails.Version)
		if obj.CollectionDetails.Version == 0 {
			_ = enc.WriteUint64(obj.CollectionDetails.Size, bin.LE)
		} else {
			_ = enc.WriteBytes(make([]byte, 8), false)
		}
	}

	_ = enc.WriteBool(obj.ProgrammableConfig != nil)
	if obj.ProgrammableConfig != nil {
		_ = enc.WriteUint8(0)
		_ = enc.WriteBool(len(obj.ProgrammableConfig.RuleSet) > 0)
		if len(obj.ProgrammableConfig.RuleSet) > 0 {
			putKey(enc, obj.ProgrammableConfig.RuleSet)
		}
	}

	return buf.Bytes()
}

// IsProgrammable returns whether transfers of the mint go through token
// records and authorization rules.
func (obj *MetadataAccount) IsProgrammable() bool {
	return obj.TokenStandard != nil && *obj.TokenStandard == TokenStandardProgrammableNonFungible
}

// RuleSet returns the declared authorization rule set, if any.
func (obj *MetadataAccount) RuleSet() (ed25519.PublicKey, bool) {
	if obj.ProgrammableConfig == nil || len(obj.ProgrammableConfig.RuleSet) == 0 {
		return nil, false
	}
	return obj.ProgrammableConfig.RuleSet, true
}

func (obj *MetadataAccount) String() string {
	collection := "none"
	if obj.Collection != nil {
		collection = fmt.Sprintf("{key=%s,verified=%t}", base58.Encode(obj.Collection.Key), obj.Collection.Verified)
	}

	return fmt.Sprintf(
		"Metadata{mint=%s,name=%s,symbol=%s,uri=%s,seller_fee_basis_points=%d,creators=%d,collection=%s}",
		base58.Encode(obj.Mint),
		obj.Name,
		obj.Symbol,
		obj.Uri,
		obj.SellerFeeBasisPoints,
		len(obj.Creators),
		collection,
	)
}

func readOption(dec *bin.Decoder) (bool, error) {
	if !dec.HasRemaining() {
		return false, io.EOF
	}
	present, err := dec.ReadUint8()
	if err != nil {
		return false, err
	}
	switch present {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Errorf("invalid option tag: %d", present)
	}
}

func getKey(dec *bin.Decoder) (ed25519.PublicKey, error) {
	b, err := dec.ReadNBytes(ed25519.PublicKeySize)
	if err != nil {
		return nil, err
	}
	return ed25519.PublicKey(b), nil
}

func putKey(enc *bin.Encoder, key ed25519.PublicKey) {
	padded := make([]byte, ed25519.PublicKeySize)
	copy(padded, key)
	_ = enc.WriteBytes(padded, false)
}

// Strings are borsh encoded but padded with NULs to a fixed size on chain.
func getString(dec *bin.Decoder) (string, error) {
	length, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return "", err
	}
	if int(length) > dec.Remaining() {
		return "", ErrInvalidAccountData
	}
	b, err := dec.ReadNBytes(int(length))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\x00"), nil
}

func putString(enc *bin.Encoder, s string) {
	_ = enc.WriteUint32(uint32(len(s)), bin.LE)
	_ = enc.WriteBytes([]byte(s), false)
}
