// Package db owns the process-wide SQL connection pool and the parameterized statement
// helpers every store goes through.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"mentorai/backend/config"
)

// DefaultMaxConns is the pool capacity used when settings leave it unset.
const DefaultMaxConns = 10

// DatabaseError wraps any failure reported by the driver or the pool.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database %s failed: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// IsDatabaseError reports whether err carries a *DatabaseError.
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}

// Result describes the outcome of a write statement.
type Result struct {
	AffectedRows int64
}

// Client issues parameterized statements over a bounded pool.
type Client struct {
	db     *sql.DB
	logger logrus.FieldLogger
}

// Open connects to PostgreSQL with the given settings and verifies the connection.
func Open(ctx context.Context, settings config.DatabaseSettings, logger logrus.FieldLogger) (*Client, error) {
	sqlDB, err := sql.Open("postgres", settings.DSN())
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}

	maxConns := settings.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns / 2)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	client := New(sqlDB, logger)
	if err := client.Ping(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"host":      settings.Host,
		"port":      settings.Port,
		"database":  settings.Name,
		"max_conns": maxConns,
	}).Info("Database connection established")
	return client, nil
}

// New wraps an already opened pool.
func New(sqlDB *sql.DB, logger logrus.FieldLogger) *Client {
	return &Client{db: sqlDB, logger: logger}
}

// Ping checks that a connection can be obtained from the pool.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return &DatabaseError{Op: "ping", Err: err}
	}
	return nil
}

// Close releases the pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// Query runs a read statement. The caller closes the returned rows.
func (c *Client) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		c.logger.WithError(err).Error("Error executing query")
		return nil, &DatabaseError{Op: "query", Err: err}
	}
	return rows, nil
}

// QueryRow runs a read statement expected to return at most one row and scans it into
// dest. sql.ErrNoRows is returned unwrapped; every other failure is a *DatabaseError.
func (c *Client) QueryRow(ctx context.Context, dest []any, query string, args ...any) error {
	err := c.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	c.logger.WithError(err).Error("Error executing query")
	return &DatabaseError{Op: "query", Err: err}
}

// Exec runs a write statement and reports how many rows it touched.
func (c *Client) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		c.logger.WithError(err).Error("Error executing statement")
		return Result{}, &DatabaseError{Op: "exec", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Result{}, &DatabaseError{Op: "rows affected", Err: err}
	}
	return Result{AffectedRows: n}, nil
}
