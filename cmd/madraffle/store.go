package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	pg "github.com/code-payments/mad-raffle/pkg/database/postgres"
	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
	history_file "github.com/code-payments/mad-raffle/pkg/raffle/data/history/file"
	history_memory "github.com/code-payments/mad-raffle/pkg/raffle/data/history/memory"
	history_postgres "github.com/code-payments/mad-raffle/pkg/raffle/data/history/postgres"
	history_redis "github.com/code-payments/mad-raffle/pkg/raffle/data/history/redis"
	history_sqlite "github.com/code-payments/mad-raffle/pkg/raffle/data/history/sqlite"
)

var errUnknownHistoryBackend = errors.New("unknown history backend")

// newHistoryStore opens the configured history backend. The returned closer
// releases any connections it holds.
func newHistoryStore(config Config) (history.Store, func(), error) {
	noop := func() {}

	switch strings.ToLower(config.HistoryBackend) {
	case "memory":
		return history_memory.New(), noop, nil
	case "", "file":
		if len(config.HistoryPath) == 0 {
			return nil, nil, errors.New("history path is required for the file backend")
		}
		return history_file.New(config.HistoryPath), noop, nil
	case "sqlite":
		if len(config.HistoryPath) == 0 {
			return nil, nil, errors.New("history path is required for the sqlite backend")
		}
		store, err := history_sqlite.Open(config.HistoryPath)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case "postgres":
		db, err := pg.New(&pg.Config{
			User:     config.PostgresUser,
			Password: config.PostgresPassword,
			Host:     config.PostgresHost,
			Port:     config.PostgresPort,
			DbName:   config.PostgresDbName,

			MaxOpenConnections: 2,
			MaxIdleConnections: 1,
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to connect to postgres")
		}
		return history_postgres.New(db), func() { db.Close() }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
			DB:       config.RedisDb,
		})
		return history_redis.New(client, config.RedisKey), func() { client.Close() }, nil
	}
	return nil, nil, errors.Wrapf(errUnknownHistoryBackend, "backend %q", config.HistoryBackend)
}
