package db

import "context"

const createClassesTable = `
	CREATE TABLE IF NOT EXISTS classes (
		id            VARCHAR(36) PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		teacher       VARCHAR(255) NOT NULL,
		description   TEXT,
		subject       VARCHAR(255),
		grade_level   VARCHAR(100),
		duration      DOUBLE PRECISION,
		status        VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		recording_url TEXT,
		transcript    TEXT,
		analysis_data TEXT,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)
`

const createClassesCreatedAtIndex = `
	CREATE INDEX IF NOT EXISTS idx_classes_created_at ON classes (created_at)
`

// EnsureSchema creates the classes table and its index when missing. Both statements are
// idempotent and valid on PostgreSQL and SQLite.
func (c *Client) EnsureSchema(ctx context.Context) error {
	c.logger.Info("Ensuring database schema...")

	for _, stmt := range []string{createClassesTable, createClassesCreatedAtIndex} {
		if _, err := c.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	c.logger.Info("Database schema ready")
	return nil
}
