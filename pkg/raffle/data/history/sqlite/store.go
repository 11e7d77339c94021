package sqlite

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
)

const batchSize = 100

type store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at path and returns a
// history.Store over it
func Open(path string) (history.Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	return New(db)
}

// New returns a history.Store using an existing gorm handle, migrating the
// schema as needed
func New(db *gorm.DB) (history.Store, error) {
	if err := db.AutoMigrate(&model{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate history table")
	}
	return &store{db: db}, nil
}

// Load implements history.Store.Load
func (s *store) Load(ctx context.Context) ([]*history.LocalRaffle, error) {
	var models []*model
	err := s.db.WithContext(ctx).Order("position asc").Find(&models).Error
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, history.ErrNotFound
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

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(models, batchSize).Error
	})
}
