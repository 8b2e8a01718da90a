package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunStatus represents the lifecycle of a batch run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one batch analysis over a set of dialogue files
type Run struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UUID      string    `json:"id" gorm:"uniqueIndex;not null;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ScriptID string    `json:"script_id,omitempty" gorm:"index;size:100"`
	Profile  string    `json:"profile,omitempty" gorm:"size:100"`
	Status   RunStatus `json:"status" gorm:"size:20;default:running"`

	// Summary counters, filled in on completion
	Total      int `json:"total"`
	Clean      int `json:"clean"`
	Suspicious int `json:"suspicious"`
	Failed     int `json:"failed"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// BeforeCreate generates a UUID before creating a new run
func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = RunStatusRunning
	}
	return nil
}

// TableName returns the table name for the Run model
func (Run) TableName() string {
	return "runs"
}

// IsTerminal reports whether the run has finished
func (r *Run) IsTerminal() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}
