package domain

import "time"

// Project statuses as stored.
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusPaused    = "paused"
)

// Project is the read-only project metadata attached to summaries.
type Project struct {
	ID          string
	Name        string
	Description *string
	Status      string
	IsActive    bool
	CreatedAt   time.Time
}
