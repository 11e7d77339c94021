package madraffle

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

var RaffleTrackerAccountDiscriminator = []byte{0x4c, 0x15, 0xc1, 0x22, 0x67, 0x5d, 0x29, 0xba}

const (
	UserPointsSize = (32 + // user
		4) // points

	MinRaffleTrackerAccountSize = (8 + // discriminator
		8 + // current_raffle
		1 + // bump
		4) // scoreboard
)

type UserPoints struct {
	User   ed25519.PublicKey
	Points uint32
}

type RaffleTrackerAccount struct {
	CurrentRaffle uint64
	Bump          uint8
	Scoreboard    []UserPoints
}

func (obj *RaffleTrackerAccount) Unmarshal(data []byte) error {
	if len(data) < MinRaffleTrackerAccountSize {
		return ErrInvalidAccountData
	}

	dec, err := newAccountDecoder(data, RaffleTrackerAccountDiscriminator)
	if err != nil {
		return err
	}

	if obj.CurrentRaffle, err = dec.ReadUint64(bin.LE); err != nil {
		return errors.Wrap(err, "invalid current raffle")
	}
	if obj.Bump, err = dec.ReadUint8(); err != nil {
		return errors.Wrap(err, "invalid bump")
	}

	count, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return errors.Wrap(err, "invalid scoreboard size")
	}
	if int(count)*UserPointsSize > dec.Remaining() {
		return ErrInvalidAccountData
	}
	obj.Scoreboard = make([]UserPoints, count)
	for i := range obj.Scoreboard {
		if obj.Scoreboard[i].User, err = getKey(dec); err != nil {
			return errors.Wrapf(err, "invalid scoreboard entry %d", i)
		}
		if obj.Scoreboard[i].Points, err = dec.ReadUint32(bin.LE); err != nil {
			return errors.Wrapf(err, "invalid scoreboard entry %d", i)
		}
	}

	return nil
}

func (obj *RaffleTrackerAccount) Marshal() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(RaffleTrackerAccountDiscriminator)

	enc := bin.NewBorshEncoder(buf)
	_ = enc.WriteUint64(obj.CurrentRaffle, bin.LE)
	_ = enc.WriteUint8(obj.Bump)
	_ = enc.WriteUint32(uint32(len(obj.Scoreboard)), bin.LE)
	for _, entry := range obj.Scoreboard {
		_ = putKey(enc, entry.User)
		_ = enc.WriteUint32(entry.Points, bin.LE)
	}

	return buf.Bytes()
}

func (obj *RaffleTrackerAccount) String() string {
	return fmt.Sprintf(
		"RaffleTracker{current_raffle=%d,bump=%d,scoreboard=%d}",
		obj.CurrentRaffle,
		obj.Bump,
		len(obj.Scoreboard),
	)
}
