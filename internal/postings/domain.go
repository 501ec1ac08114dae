package postings

import (
	"strings"
	"time"
)

// Audit actions published after a successful mutation.
const (
	ActionCreated = "posting:created"
	ActionDeleted = "posting:deleted"
)

// Job is a stored job posting.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	JobType     string    `json:"job_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewJob carries the content fields of a posting to create.
type NewJob struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location" validate:"required"`
	JobType     string `json:"job_type" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Normalize trims surrounding whitespace from every field.
func (n NewJob) Normalize() NewJob {
	return NewJob{
		Title:       strings.TrimSpace(n.Title),
		Company:     strings.TrimSpace(n.Company),
		Location:    strings.TrimSpace(n.Location),
		JobType:     strings.TrimSpace(n.JobType),
		Description: strings.TrimSpace(n.Description),
	}
}

// Filter narrows a listing by exact job type and location. Empty fields
// match everything.
type Filter struct {
	JobType  string
	Location string
}

// Facets lists the distinct values available for filtering.
type Facets struct {
	JobTypes  []string
	Locations []string
}

// Event describes a mutation for the audit trail.
type Event struct {
	Action     string
	Job        Job
	ActorID    int64
	ActorEmail string
	At         time.Time
}
