package pg

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx"
)

type Config struct {
	User               string
	Host               string
	Password           string
	Port               int
	DbName             string
	MaxOpenConnections int
	MaxIdleConnections int
}

// New opens a connection pool from a Config, applying its pool limits
func New(config *Config) (*sql.DB, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}
	if config.Host == "" || config.DbName == "" {
		return nil, errors.New("host and database name are required")
	}

	port := config.Port
	if port == 0 {
		port = 5432
	}

	db, err := NewWithUsernameAndPassword(config.User, config.Password, config.Host, strconv.Itoa(port), config.DbName)
	if err != nil {
		return nil, err
	}

	if config.MaxOpenConnections > 0 {
		db.SetMaxOpenConns(config.MaxOpenConnections)
	}
	if config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(config.MaxIdleConnections)
	}
	return db, nil
}

// NewWithUsernameAndPassword opens an instrumented connection pool using
// username/password credentials
func NewWithUsernameAndPassword(username, password, hostname, port, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		username, password, hostname, port, dbname,
	)

	// The nrpgx driver wraps pgx with New Relic datastore segments
	db, err := sql.Open("nrpgx", dsn)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, nil
}
