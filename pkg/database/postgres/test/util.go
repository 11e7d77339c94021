package test

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pkg/errors"

	_ "github.com/jackc/pgx/v4/stdlib" //nolint:revive

	"github.com/code-payments/mad-raffle/pkg/retry"
	"github.com/code-payments/mad-raffle/pkg/retry/backoff"
)

const (
	repository = "postgres"

	defaultTag      = "14-alpine"
	defaultAutoKill = 120 * time.Second

	port     = 5432
	user     = "localtest"
	password = "localpassword"
	dbname   = "madraffle"
)

type options struct {
	tag      string
	autoKill time.Duration
	schema   []string
}

// Option configures the container started by StartPostgresDB
type Option func(*options)

// WithImageTag overrides the postgres image tag
func WithImageTag(tag string) Option {
	return func(o *options) {
		o.tag = tag
	}
}

// WithAutoKill sets how long the container may live before docker kills it
func WithAutoKill(d time.Duration) Option {
	return func(o *options) {
		o.autoKill = d
	}
}

// WithSchema runs the statements, in order, once the database accepts
// connections.
func WithSchema(statements ...string) Option {
	return func(o *options) {
		o.schema = append(o.schema, statements...)
	}
}

// StartPostgresDB starts a postgres container and returns a client for
// testing. closeFunc closes the client and purges the container.
func StartPostgresDB(pool *dockertest.Pool, opts ...Option) (db *sql.DB, closeFunc func(), err error) {
	o := &options{
		tag:      defaultTag,
		autoKill: defaultAutoKill,
	}
	for _, opt := range opts {
		opt(o)
	}

	closeFunc = func() {}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: repository,
		Tag:        o.tag,
		Env: []string{
			"listen_addresses = '*'",
			"POSTGRES_USER=" + user,
			"POSTGRES_PASSWORD=" + password,
			"POSTGRES_DB=" + dbname,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, closeFunc, errors.Wrap(err, "failed to start postgres container")
	}

	purge := func() {
		_ = pool.Purge(resource)
	}

	// Expire never returns an error
	_ = resource.Expire(uint(o.autoKill.Seconds()))

	databaseUrl := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		user,
		password,
		resource.GetHostPort(fmt.Sprintf("%d/tcp", port)),
		dbname,
	)

	_, err = retry.Retry(
		func() error {
			db, err = sql.Open("pgx", databaseUrl)
			if err != nil {
				return err
			}
			return db.Ping()
		},
		retry.Limit(50),
		retry.Backoff(backoff.Constant(500*time.Millisecond), 500*time.Second),
	)
	if err != nil {
		purge()
		return nil, closeFunc, errors.Wrap(err, "timed out waiting for postgres container to become available")
	}

	if err := Exec(db, o.schema...); err != nil {
		db.Close()
		purge()
		return nil, closeFunc, err
	}

	closeFunc = func() {
		db.Close()
		purge()
	}
	return db, closeFunc, nil
}

// Exec runs each statement, stopping at the first failure
func Exec(db *sql.DB, statements ...string) error {
	for i, statement := range statements {
		if _, err := db.ExecContext(context.Background(), statement); err != nil {
			return errors.Wrapf(err, "failed to execute statement %d", i)
		}
	}
	return nil
}
