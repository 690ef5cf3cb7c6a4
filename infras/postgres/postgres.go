package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fleetdesk/config"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConns    = 10
	maxOpenConns    = 20
	connMaxLifetime = 30 * time.Minute
)

var errNotConnected = errors.New("database not connected")

// Connection holds the replica pool for reads and the primary pool for writes.
// Both point at the same database when no replica is configured.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  Connect("read", DSN(cfg, pg.Read, nil), pg.MaxRetry, time.Duration(pg.RetryWaitTime)*time.Second),
		Write: Connect("write", DSN(cfg, pg.Write, nil), pg.MaxRetry, time.Duration(pg.RetryWaitTime)*time.Second),
	}
}

// Ping checks both pools. Used by the readiness probe.
func (c *Connection) Ping(ctx context.Context) error {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			return fmt.Errorf("%s: %w", name, errNotConnected)
		}

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping %s database: %w", name, err)
		}
	}

	return nil
}

func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}

// DSN renders a lib/pq connection URL for one endpoint. The configured prefix
// is prepended to the database name; extra is merged into the query string.
func DSN(cfg *config.Config, endpoint config.DBEndpoint, extra url.Values) string {
	query := url.Values{}
	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect retries until the database answers or attempts run out. A nil pool
// is returned on give-up; the readiness probe reports it.
func Connect(role, dsn string, attempts int, wait time.Duration) *sqlx.DB {
	attempts = max(attempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConns)
			db.SetMaxOpenConns(maxOpenConns)
			db.SetConnMaxLifetime(connMaxLifetime)

			logFor(role, dsn, log.Info()).Msg("Connected to database")

			return db
		}

		logFor(role, dsn, log.Error().Err(err)).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		if attempt < attempts {
			time.Sleep(wait)
		}
	}

	log.Error().Str("role", role).Msg("Giving up connecting to database")

	return nil
}

// logFor tags an event with the target without leaking the password.
func logFor(role, dsn string, event *zerolog.Event) *zerolog.Event {
	event = event.Str("role", role)

	parsed, err := url.Parse(dsn)
	if err != nil {
		return event
	}

	return event.Str("host", parsed.Host).Str("db", strings.TrimPrefix(parsed.Path, "/"))
}
