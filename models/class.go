package models

import (
	"encoding/json"
	"time"
)

// ClassStatus is the lifecycle flag of a class record.
type ClassStatus string

const (
	StatusActive   ClassStatus = "active"
	StatusInactive ClassStatus = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s ClassStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Class represents a row of the classes table. Nullable columns use pointers so that
// "not set" (null) stays distinct from "set to empty".
type Class struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Teacher      string          `json:"teacher"`
	Description  *string         `json:"description"`
	Subject      *string         `json:"subject"`
	GradeLevel   *string         `json:"grade_level"`
	Duration     *float64        `json:"duration"`
	Status       ClassStatus     `json:"status"`
	RecordingURL *string         `json:"recording_url"`
	Transcript   *string         `json:"transcript"`
	AnalysisData json.RawMessage `json:"analysis_data" swaggertype:"object"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ClassInput carries the caller-editable fields for create and update.
// A nil field means the caller did not supply it.
type ClassInput struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,max=255"`
	Teacher     *string      `json:"teacher,omitempty" validate:"omitempty,max=255"`
	Description *string      `json:"description,omitempty"`
	Subject     *string      `json:"subject,omitempty" validate:"omitempty,max=255"`
	GradeLevel  *string      `json:"grade_level,omitempty" validate:"omitempty,max=100"`
	Duration    *float64     `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Status      *ClassStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}
