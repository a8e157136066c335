// Package classes implements CRUD and search over the classes table.
package classes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mentorai/backend/internal/db"
	"mentorai/backend/models"
)

const classColumns = `id, name, teacher, description, subject, grade_level, duration, status,
	recording_url, transcript, analysis_data, created_at, updated_at`

// ValidationError reports caller input the store refuses to write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// Store maps class operations one to one onto single SQL statements.
type Store struct {
	db     *db.Client
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewStore creates a Store over the shared client.
func NewStore(client *db.Client, logger logrus.FieldLogger) *Store {
	return &Store{
		db:     client,
		logger: logger,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

// GetAll returns every class, newest first.
func (s *Store) GetAll(ctx context.Context) ([]models.Class, error) {
	return s.list(ctx, `SELECT `+classColumns+` FROM classes ORDER BY created_at DESC`)
}

// GetByID returns the class with the given id. found is false when there is none.
func (s *Store) GetByID(ctx context.Context, id string) (class *models.Class, found bool, err error) {
	var row classRow
	err = s.db.QueryRow(ctx, row.dest(), `SELECT `+classColumns+` FROM classes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.model(), true, nil
}

// Create inserts a new class and returns its generated id. Name and teacher are required;
// status defaults to active.
func (s *Store) Create(ctx context.Context, input models.ClassInput) (string, error) {
	if isBlank(input.Name) || isBlank(input.Teacher) {
		return "", &ValidationError{Field: "name,teacher", Message: "Name and teacher are required"}
	}
	status := models.StatusActive
	if input.Status != nil {
		if !input.Status.Valid() {
			return "", invalidStatus(*input.Status)
		}
		status = *input.Status
	}

	id := uuid.NewString()
	now := s.now()
	_, err := s.db.Exec(ctx, `
		INSERT INTO classes (id, name, teacher, description, subject, grade_level, duration, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		id,
		*input.Name,
		*input.Teacher,
		nullableString(input.Description),
		nullableString(input.Subject),
		nullableString(input.GradeLevel),
		nullableFloat(input.Duration),
		string(status),
		now,
		now,
	)
	if err != nil {
		return "", err
	}

	s.logger.WithField("class_id", id).Info("Class created")
	return id, nil
}

// Update rewrites every column of the class, keeping the stored value for each field the
// input leaves unset. It reports whether a row matched.
func (s *Store) Update(ctx context.Context, id string, input models.ClassInput) (bool, error) {
	if input.Name != nil && isBlank(input.Name) {
		return false, &ValidationError{Field: "name", Message: "Name cannot be empty"}
	}
	if input.Teacher != nil && isBlank(input.Teacher) {
		return false, &ValidationError{Field: "teacher", Message: "Teacher cannot be empty"}
	}
	var status any
	if input.Status != nil {
		if !input.Status.Valid() {
			return false, invalidStatus(*input.Status)
		}
		status = string(*input.Status)
	}

	res, err := s.db.Exec(ctx, `
		UPDATE classes
		SET name = COALESCE($1, name),
		    teacher = COALESCE($2, teacher),
		    description = COALESCE($3, description),
		    subject = COALESCE($4, subject),
		    grade_level = COALESCE($5, grade_level),
		    duration = COALESCE($6, duration),
		    status = COALESCE($7, status),
		    updated_at = $8
		WHERE id = $9
	`,
		nullableString(input.Name),
		nullableString(input.Teacher),
		nullableString(input.Description),
		nullableString(input.Subject),
		nullableString(input.GradeLevel),
		nullableFloat(input.Duration),
		status,
		s.now(),
		id,
	)
	if err != nil {
		return false, err
	}
	return res.AffectedRows > 0, nil
}

// Delete removes the class. It reports whether a row matched.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.AffectedRows > 0, nil
}

// Search returns classes whose name or teacher contains term, ignoring case, newest first.
func (s *Store) Search(ctx context.Context, term string) ([]models.Class, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, &ValidationError{Field: "q", Message: "Search term is required"}
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	return s.list(ctx, `
		SELECT `+classColumns+`
		FROM classes
		WHERE LOWER(name) LIKE $1 ESCAPE '\' OR LOWER(teacher) LIKE $1 ESCAPE '\'
		ORDER BY created_at DESC
	`, pattern)
}

// UpdateRecordingURL sets recording_url. It reports whether a row matched.
func (s *Store) UpdateRecordingURL(ctx context.Context, id, recordingURL string) (bool, error) {
	if strings.TrimSpace(recordingURL) == "" {
		return false, &ValidationError{Field: "recordingUrl", Message: "Recording URL is required"}
	}
	return s.updateField(ctx, "recording_url", id, recordingURL)
}

// UpdateTranscript sets transcript. It reports whether a row matched.
func (s *Store) UpdateTranscript(ctx context.Context, id, transcript string) (bool, error) {
	if strings.TrimSpace(transcript) == "" {
		return false, &ValidationError{Field: "transcript", Message: "Transcript is required"}
	}
	return s.updateField(ctx, "transcript", id, transcript)
}

// UpdateAnalysisData stores data as serialized JSON. It reports whether a row matched.
func (s *Store) UpdateAnalysisData(ctx context.Context, id string, data json.RawMessage) (bool, error) {
	if len(data) == 0 || string(data) == "null" {
		return false, &ValidationError{Field: "analysisData", Message: "Analysis data is required"}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return false, &ValidationError{Field: "analysisData", Message: "Analysis data must be valid JSON"}
	}
	return s.updateField(ctx, "analysis_data", id, string(encoded))
}

// updateField sets one column. column is always one of the constants above, never input.
func (s *Store) updateField(ctx context.Context, column, id string, value any) (bool, error) {
	res, err := s.db.Exec(ctx,
		`UPDATE classes SET `+column+` = $1, updated_at = $2 WHERE id = $3`,
		value, s.now(), id,
	)
	if err != nil {
		return false, err
	}
	return res.AffectedRows > 0, nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]models.Class, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []models.Class{}
	for rows.Next() {
		var row classRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, &db.DatabaseError{Op: "scan", Err: err}
		}
		classes = append(classes, *row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, &db.DatabaseError{Op: "query", Err: err}
	}
	return classes, nil
}

type classRow struct {
	class        models.Class
	status       string
	description  sql.NullString
	subject      sql.NullString
	gradeLevel   sql.NullString
	duration     sql.NullFloat64
	recordingURL sql.NullString
	transcript   sql.NullString
	analysisData sql.NullString
}

func (r *classRow) dest() []any {
	return []any{
		&r.class.ID, &r.class.Name, &r.class.Teacher, &r.description, &r.subject, &r.gradeLevel,
		&r.duration, &r.status, &r.recordingURL, &r.transcript, &r.analysisData,
		&r.class.CreatedAt, &r.class.UpdatedAt,
	}
}

func (r *classRow) model() *models.Class {
	c := r.class
	c.Status = models.ClassStatus(r.status)
	c.Description = stringPtr(r.description)
	c.Subject = stringPtr(r.subject)
	c.GradeLevel = stringPtr(r.gradeLevel)
	c.RecordingURL = stringPtr(r.recordingURL)
	c.Transcript = stringPtr(r.transcript)
	if r.duration.Valid {
		d := r.duration.Float64
		c.Duration = &d
	}
	if r.analysisData.Valid {
		c.AnalysisData = analysisJSON(r.analysisData.String)
	}
	return &c
}

// analysisJSON returns stored analysis data as-is when it is valid JSON and as a JSON
// string otherwise.
func analysisJSON(stored string) json.RawMessage {
	if json.Valid([]byte(stored)) {
		return json.RawMessage(stored)
	}
	quoted, _ := json.Marshal(stored)
	return quoted
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// nullableString maps nil and empty strings to NULL.
func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func invalidStatus(status models.ClassStatus) *ValidationError {
	return &ValidationError{
		Field:   "status",
		Message: "Status must be 'active' or 'inactive', got '" + string(status) + "'",
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
