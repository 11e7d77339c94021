package madraffle

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var RaffleAccountDiscriminator = []byte{0x8f, 0x85, 0x3f, 0xad, 0x8a, 0x0a, 0x8e, 0xc8}

const (
	TicketHolderSize = (32 + // user
		1) // qty

	PrizeSize = (32 + // mint
		32 + // ata
		1) // sent

	// Size of a raffle account holding no tickets, no prize and no winner.
	MinRaffleAccountSize = (8 + // discriminator
		8 + // id
		1 + // version
		1 + // bump
		1 + // active
		4 + // tickets
		8 + // start_time
		8 + // end_time
		1 + // prize
		1) // winner
)

type TicketHolder struct {
	User ed25519.PublicKey
	Qty  uint8
}

type Prize struct {
	Mint ed25519.PublicKey
	Ata  ed25519.PublicKey
	Sent bool
}

type RaffleAccount struct {
	Id        uint64
	Version   uint8
	Bump      uint8
	Active    bool
	Tickets   []TicketHolder
	StartTime int64
	EndTime   int64
	Prize     *Prize
	Winner    ed25519.PublicKey
}

func (obj *RaffleAccount) Unmarshal(data []byte) error {
	if len(data) < MinRaffleAccountSize {
		return ErrInvalidAccountData
	}

	dec, err := newAccountDecoder(data, RaffleAccountDiscriminator)
	if err != nil {
		return err
	}

	if obj.Id, err = dec.ReadUint64(bin.LE); err != nil {
		return errors.Wrap(err, "invalid id")
	}
	if obj.Version, err = dec.ReadUint8(); err != nil {
		return errors.Wrap(err, "invalid version")
	}
	if obj.Bump, err = dec.ReadUint8(); err != nil {
		return errors.Wrap(err, "invalid bump")
	}
	if obj.Active, err = dec.ReadBool(); err != nil {
		return errors.Wrap(err, "invalid active flag")
	}

	count, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return errors.Wrap(err, "invalid ticket count")
	}
	if int(count)*TicketHolderSize > dec.Remaining() {
		return ErrInvalidAccountData
	}
	obj.Tickets = make([]TicketHolder, count)
	for i := range obj.Tickets {
		if obj.Tickets[i].User, err = getKey(dec); err != nil {
			return errors.Wrapf(err, "invalid ticket holder %d", i)
		}
		if obj.Tickets[i].Qty, err = dec.ReadUint8(); err != nil {
			return errors.Wrapf(err, "invalid ticket holder %d", i)
		}
	}

	if obj.StartTime, err = dec.ReadInt64(bin.LE); err != nil {
		return errors.Wrap(err, "invalid start time")
	}
	if obj.EndTime, err = dec.ReadInt64(bin.LE); err != nil {
		return errors.Wrap(err, "invalid end time")
	}

	hasPrize, err := dec.ReadBool()
	if err != nil {
		return errors.Wrap(err, "invalid prize")
	}
	obj.Prize = nil
	if hasPrize {
		var prize Prize
		if prize.Mint, err = getKey(dec); err != nil {
			return errors.Wrap(err, "invalid prize mint")
		}
		if prize.Ata, err = getKey(dec); err != nil {
			return errors.Wrap(err, "invalid prize ata")
		}
		if prize.Sent, err = dec.ReadBool(); err != nil {
			return errors.Wrap(err, "invalid prize sent flag")
		}
		obj.Prize = &prize
	}

	if obj.Winner, err = getOptionalKey(dec); err != nil {
		return errors.Wrap(err, "invalid winner")
	}

	return nil
}

func (obj *RaffleAccount) Marshal() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(RaffleAccountDiscriminator)

	enc := bin.NewBorshEncoder(buf)
	_ = enc.WriteUint64(obj.Id, bin.LE)
	_ = enc.WriteUint8(obj.Version)
	_ = enc.WriteUint8(obj.Bump)
	_ = enc.WriteBool(obj.Active)
	_ = enc.WriteUint32(uint32(len(obj.Tickets)), bin.LE)
	for _, ticket := range obj.Tickets {
		_ = putKey(enc, ticket.User)
		_ = enc.WriteUint8(ticket.Qty)
	}
	_ = enc.WriteInt64(obj.StartTime, bin.LE)
	_ = enc.WriteInt64(obj.EndTime, bin.LE)

	_ = enc.WriteBool(obj.Prize != nil)
	if obj.Prize != nil {
		_ = putKey(enc, obj.Prize.Mint)
		_ = putKey(enc, obj.Prize.Ata)
		_ = enc.WriteBool(obj.Prize.Sent)
	}

	_ = enc.WriteBool(len(obj.Winner) > 0)
	if len(obj.Winner) > 0 {
		_ = putKey(enc, obj.Winner)
	}

	return buf.Bytes()
}

// UserTickets returns how many tickets user holds in the raffle.
func (obj *RaffleAccount) UserTickets(user ed25519.PublicKey) uint32 {
	var total uint32
	for _, ticket := range obj.Tickets {
		if bytes.Equal(ticket.User, user) {
			total += uint32(ticket.Qty)
		}
	}
	return total
}

// TotalTickets returns the number of tickets sold in the raffle.
func (obj *RaffleAccount) TotalTickets() uint32 {
	var total uint32
	for _, ticket := range obj.Tickets {
		total += uint32(ticket.Qty)
	}
	return total
}

func (obj *RaffleAccount) String() string {
	prize := "none"
	if obj.Prize != nil {
		prize = fmt.Sprintf("{mint=%s,ata=%s,sent=%t}", base58.Encode(obj.Prize.Mint), base58.Encode(obj.Prize.Ata), obj.Prize.Sent)
	}

	winner := "none"
	if len(obj.Winner) > 0 {
		winner = base58.Encode(obj.Winner)
	}

	return fmt.Sprintf(
		"Raffle{id=%d,version=%d,bump=%d,active=%t,ticket_holders=%d,tickets=%d,start_time=%s,end_time=%s,prize=%s,winner=%s}",
		obj.Id,
		obj.Version,
		obj.Bump,
		obj.Active,
		len(obj.Tickets),
		obj.TotalTickets(),
		time.Unix(obj.StartTime, 0).UTC().String(),
		time.Unix(obj.EndTime, 0).UTC().String(),
		prize,
		winner,
	)
}
