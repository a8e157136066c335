package db

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// createTestClient opens an in-memory SQLite database. A single connection keeps every
// statement on the same in-memory database.
func createTestClient(t *testing.T) *Client {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(sqlDB, logger)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	client := createTestClient(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := client.EnsureSchema(ctx); err != nil {
			t.Fatalf("EnsureSchema run %d: %v", i+1, err)
		}
	}

	var name string
	err := client.QueryRow(ctx, []any{&name}, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, "classes")
	if err != nil {
		t.Fatalf("classes table missing: %v", err)
	}
}

func TestEnsureSchemaRejectsUnknownStatus(t *testing.T) {
	client := createTestClient(t)
	ctx := context.Background()
	if err := client.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}

	_, err := client.Exec(ctx, `
		INSERT INTO classes (id, name, teacher, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		"id-1", "Math", "Smith", "archived", "2024-01-01 00:00:00", "2024-01-01 00:00:00")
	if !IsDatabaseError(err) {
		t.Errorf("err = %v, want *DatabaseError from the status check", err)
	}
}

func TestExecReportsAffectedRows(t *testing.T) {
	client := createTestClient(t)
	ctx := context.Background()
	if _, err := client.Exec(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`); err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{"a", "b", "c"} {
		if _, err := client.Exec(ctx, `INSERT INTO t (v) VALUES ($1)`, v); err != nil {
			t.Fatal(err)
		}
	}

	res, err := client.Exec(ctx, `UPDATE t SET v = $1 WHERE v <> $2`, "z", "a")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if res.AffectedRows != 2 {
		t.Errorf("AffectedRows = %d, want 2", res.AffectedRows)
	}
}

func TestQueryRowNoRows(t *testing.T) {
	client := createTestClient(t)
	ctx := context.Background()
	if _, err := client.Exec(ctx, `CREATE TABLE t (v TEXT)`); err != nil {
		t.Fatal(err)
	}

	var v string
	err := client.QueryRow(ctx, []any{&v}, `SELECT v FROM t WHERE v = $1`, "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
	if IsDatabaseError(err) {
		t.Error("no rows should not be a *DatabaseError")
	}
}

func TestQueryWrapsErrors(t *testing.T) {
	client := createTestClient(t)

	_, err := client.Query(context.Background(), `SELECT * FROM does_not_exist`)
	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("err = %v, want *DatabaseError", err)
	}
	if dbErr.Op != "query" || dbErr.Err == nil {
		t.Errorf("DatabaseError = %+v", dbErr)
	}
}

func TestPingAfterClose(t *testing.T) {
	client := createTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	client.Close()
	if err := client.Ping(context.Background()); !IsDatabaseError(err) {
		t.Errorf("Ping after close = %v, want *DatabaseError", err)
	}
}
