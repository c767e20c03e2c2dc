package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"mariachi/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits traffic between a read replica and the primary.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Target is one database endpoint.
type Target struct {
	Name     string
	Username string
	Password string
	Host     string
	Port     string
	Database string
	SSLMode  string
	Timezone string
}

// DSN renders the target as a lib/pq URL with escaped credentials.
func (t Target) DSN() string {
	query := url.Values{}
	query.Set("sslmode", t.SSLMode)

	if t.Timezone != "" {
		query.Set("timezone", t.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(t.Username, t.Password),
		Host:     net.JoinHostPort(t.Host, t.Port),
		Path:     t.Database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func ReadTarget(cfg *config.Config) Target {
	pg := cfg.DB.Postgres

	return Target{
		Name:     "read",
		Username: pg.Read.Username,
		Password: pg.Read.Password,
		Host:     pg.Read.Host,
		Port:     pg.Read.Port,
		Database: pg.Prefix + pg.Read.Name,
		SSLMode:  pg.Read.SSLMode,
		Timezone: pg.Read.Timezone,
	}
}

func WriteTarget(cfg *config.Config) Target {
	pg := cfg.DB.Postgres

	return Target{
		Name:     "write",
		Username: pg.Write.Username,
		Password: pg.Write.Password,
		Host:     pg.Write.Host,
		Port:     pg.Write.Port,
		Database: pg.Prefix + pg.Write.Name,
		SSLMode:  pg.Write.SSLMode,
		Timezone: pg.Write.Timezone,
	}
}

func New(cfg *config.Config) *Connection {
	retries, wait := cfg.DB.Postgres.MaxRetry, time.Duration(cfg.DB.Postgres.RetryWaitTime)*time.Second

	return &Connection{
		Read:  Connect(ReadTarget(cfg), retries, wait),
		Write: Connect(WriteTarget(cfg), retries, wait),
	}
}

// Connect dials target up to maxRetry times and returns nil when every attempt fails.
func Connect(target Target, maxRetry int, wait time.Duration) *sqlx.DB {
	logger := log.With().Str("name", target.Name).Str("host", target.Host).Str("dbName", target.Database).Logger()

	for attempt := 1; attempt <= maxRetry; attempt++ {
		db, err := sqlx.Connect("postgres", target.DSN())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		if attempt < maxRetry {
			time.Sleep(wait)
		}
	}

	return nil
}

// WithTransaction runs fn inside a transaction on the primary, committing on success
// and rolling back on error or panic.
func (c *Connection) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")

			return errors.Join(err, rbErr)
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("failed to close database connection")
		}
	}
}
