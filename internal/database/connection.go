package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Connect opens a single connection for the given database URL.
// It parses the connection string, applies connectTimeout when positive,
// and pings the database to verify connectivity. The caller owns the
// returned connection and must close it.
func Connect(ctx context.Context, databaseURL string, connectTimeout time.Duration) (*pgx.Conn, error) {
	connCfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDatabaseURL, err)
	}

	if connectTimeout > 0 {
		connCfg.ConnectTimeout = connectTimeout
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx) //nolint:errcheck // connection is unusable either way

		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return conn, nil
}
