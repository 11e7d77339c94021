package sqlite

import (
	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
)

type model struct {
	Position   int     `gorm:"primaryKey;autoIncrement:false"`
	RaffleId   uint64  `gorm:"not null;index"`
	Version    uint8   `gorm:"not null"`
	Bump       uint8   `gorm:"not null"`
	Active     bool    `gorm:"not null"`
	NumTickets uint32  `gorm:"not null"`
	StartTime  int64   `gorm:"not null"`
	EndTime    int64   `gorm:"not null"`
	PrizeNft   *string `gorm:"size:44"`
	Winner     *string `gorm:"size:44"`
	Claimed    bool    `gorm:"not null"`
}

func (model) TableName() string {
	return "local_raffles"
}

func toModel(position int, r *history.LocalRaffle) (*model, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	cloned := r.Clone()
	return &model{
		Position:   position,
		RaffleId:   cloned.Id,
		Version:    cloned.Version,
		Bump:       cloned.Bump,
		Active:     cloned.Active,
		NumTickets: cloned.NumTickets,
		StartTime:  cloned.StartTime,
		EndTime:    cloned.EndTime,
		PrizeNft:   cloned.PrizeNft,
		Winner:     cloned.Winner,
		Claimed:    cloned.Claimed,
	}, nil
}

func fromModel(m *model) *history.LocalRaffle {
	return &history.LocalRaffle{
		Id:         m.RaffleId,
		Version:    m.Version,
		Bump:       m.Bump,
		Active:     m.Active,
		NumTickets: m.NumTickets,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		PrizeNft:   m.PrizeNft,
		Winner:     m.Winner,
		Claimed:    m.Claimed,
	}
}
