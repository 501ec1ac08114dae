// Package tasks carries the asynq background tasks of the job board.
package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jobboard/jobboard/internal/postings"
)

const (
	// QueueDefault is the queue every task is enqueued on.
	QueueDefault = "default"
	// TypePostingAudit records a posting mutation in audit_logs.
	TypePostingAudit = "posting:audit"
	// MaxRetry bounds redelivery of a failed task.
	MaxRetry = 3
)

// PostingAuditPayload describes one admin mutation of a posting.
type PostingAuditPayload struct {
	Action     string    `json:"action"`
	JobID      int64     `json:"job_id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	ActorID    int64     `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PayloadFromEvent maps a posting event onto the task payload.
func PayloadFromEvent(event postings.Event) PostingAuditPayload {
	return PostingAuditPayload{
		Action:     event.Action,
		JobID:      event.Job.ID,
		Title:      event.Job.Title,
		Company:    event.Job.Company,
		ActorID:    event.ActorID,
		ActorEmail: event.ActorEmail,
		OccurredAt: event.At,
	}
}

// NewPostingAuditTask constructs an Asynq task.
func NewPostingAuditTask(payload PostingAuditPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePostingAudit, data, asynq.Queue(QueueDefault), asynq.MaxRetry(MaxRetry)), nil
}
