package madraffle

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

var SuperVaultAccountDiscriminator = []byte{0x36, 0xb0, 0x8f, 0x69, 0x5f, 0x2a, 0x90, 0x5b}

const (
	SuperVaultAccountSize = (8 + // discriminator
		1) // bump
)

type SuperVaultAccount struct {
	Bump uint8
}

func (obj *SuperVaultAccount) Unmarshal(data []byte) error {
	if len(data) < SuperVaultAccountSize {
		return ErrInvalidAccountData
	}

	dec, err := newAccountDecoder(data, SuperVaultAccountDiscriminator)
	if err != nil {
		return err
	}

	obj.Bump, err = dec.ReadUint8()
	return err
}

func (obj *SuperVaultAccount) Marshal() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(SuperVaultAccountDiscriminator)
	_ = bin.NewBorshEncoder(buf).WriteUint8(obj.Bump)
	return buf.Bytes()
}

func (obj *SuperVaultAccount) String() string {
	return fmt.Sprintf("SuperVault{bump=%d}", obj.Bump)
}
