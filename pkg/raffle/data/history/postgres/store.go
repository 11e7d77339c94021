package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres history.Store
func New(db *sql.DB) history.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Load implements history.Store.Load
func (s *store) Load(ctx context.Context) ([]*history.LocalRaffle, error) {
	models, err := dbGetAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	records := make([]*history.LocalRaffle, len(models))
	for i, m := range models {
		records[i] = fromModel(m)
		if err := records[i].Validate(); err != nil {
			return nil, history.ErrNotFound
		}
	}
	return records, nil
}

// Save implements history.Store.Save
func (s *store) Save(ctx context.Context, records []*history.LocalRaffle) error {
	models := make([]*model, len(records))
	for i, record := range records {
		m, err := toModel(i+1, record)
		if err != nil {
			return err
		}
		models[i] = m
	}
	return dbReplaceAll(ctx, s.db, models)
}
