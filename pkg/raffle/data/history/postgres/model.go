package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/code-payments/mad-raffle/pkg/database/postgres"
	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
)

const (
	tableName = "madraffle__core_localraffle"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Position   int            `db:"position"`
	RaffleId   int64          `db:"raffle_id"`
	Version    int16          `db:"version"`
	Bump       int16          `db:"bump"`
	Active     bool           `db:"active"`
	NumTickets int64          `db:"num_tickets"`
	StartTime  int64          `db:"start_time"`
	EndTime    int64          `db:"end_time"`
	PrizeNft   sql.NullString `db:"prize_nft"`
	Winner     sql.NullString `db:"winner"`
	Claimed    bool           `db:"claimed"`
}

func toModel(position int, r *history.LocalRaffle) (*model, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &model{
		Position:   position,
		RaffleId:   int64(r.Id),
		Version:    int16(r.Version),
		Bump:       int16(r.Bump),
		Active:     r.Active,
		NumTickets: int64(r.NumTickets),
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		PrizeNft:   toNullString(r.PrizeNft),
		Winner:     toNullString(r.Winner),
		Claimed:    r.Claimed,
	}, nil
}

func fromModel(m *model) *history.LocalRaffle {
	return &history.LocalRaffle{
		Id:         uint64(m.RaffleId),
		Version:    uint8(m.Version),
		Bump:       uint8(m.Bump),
		Active:     m.Active,
		NumTickets: uint32(m.NumTickets),
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		PrizeNft:   fromNullString(m.PrizeNft),
		Winner:     fromNullString(m.Winner),
		Claimed:    m.Claimed,
	}
}

func dbReplaceAll(ctx context.Context, db *sqlx.DB, models []*model) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelSerializable, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM `+tableName)
		if err != nil {
			return err
		}

		query := `INSERT INTO ` + tableName + `
			(position, raffle_id, version, bump, active, num_tickets, start_time, end_time, prize_nft, winner, claimed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

		for _, m := range models {
			_, err = tx.ExecContext(
				ctx,
				query,
				m.Position,
				m.RaffleId,
				m.Version,
				m.Bump,
				m.Active,
				m.NumTickets,
				m.StartTime,
				m.EndTime,
				m.PrizeNft,
				m.Winner,
				m.Claimed,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func dbGetAll(ctx context.Context, db *sqlx.DB) ([]*model, error) {
	var res []*model

	query := `SELECT id, position, raffle_id, version, bump, active, num_tickets, start_time, end_time, prize_nft, winner, claimed
		FROM ` + tableName + `
		ORDER BY position ASC`

	err := db.SelectContext(ctx, &res, query)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, history.ErrNotFound)
	}
	if len(res) == 0 {
		return nil, history.ErrNotFound
	}
	return res, nil
}

func toNullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{Valid: true, String: *value}
}

func fromNullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}
