package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/hibiken/asynq"

	"github.com/jobboard/jobboard/internal/observability"
	"github.com/jobboard/jobboard/internal/shared"
)

// AuditRecorder persists audit entries. *shared.AuditLogger satisfies it.
type AuditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// PostingAuditHandler writes posting:audit tasks into the audit trail.
type PostingAuditHandler struct {
	recorder AuditRecorder
	logger   *slog.Logger
	metrics  *observability.TaskMetrics
}

// NewPostingAuditHandler constructs the handler. metrics may be nil.
func NewPostingAuditHandler(recorder AuditRecorder, logger *slog.Logger, metrics *observability.TaskMetrics) *PostingAuditHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostingAuditHandler{recorder: recorder, logger: logger, metrics: metrics}
}

// Handle processes TypePostingAudit tasks. Payloads that cannot be decoded
// are not retried.
func (h *PostingAuditHandler) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := h.metrics.Track(TypePostingAudit)

	var payload PostingAuditPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Warn("audit task payload", slog.Any("error", err))
		return tracker.End(fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry))
	}
	if payload.Action == "" || payload.JobID <= 0 {
		h.logger.Warn("audit task incomplete", slog.String("action", payload.Action), slog.Int64("job_id", payload.JobID))
		return tracker.End(fmt.Errorf("incomplete payload: %w", asynq.SkipRetry))
	}

	err := h.recorder.Record(ctx, shared.AuditLog{
		ActorID:  payload.ActorID,
		Action:   payload.Action,
		Entity:   "job_posting",
		EntityID: strconv.FormatInt(payload.JobID, 10),
		Meta: map[string]any{
			"title":       payload.Title,
			"company":     payload.Company,
			"actor_email": payload.ActorEmail,
		},
		At: payload.OccurredAt,
	})
	if err != nil {
		h.logger.Error("audit task failed",
			slog.String("action", payload.Action),
			slog.Int64("job_id", payload.JobID),
			slog.Any("error", err))
	}
	return tracker.End(err)
}
