package postings

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jobboard/jobboard/internal/shared"
)

var (
	// ErrMissingFields is returned when a content field is empty.
	ErrMissingFields = shared.Validation("missing job fields")
	// ErrMissingID is returned when a delete names no posting.
	ErrMissingID = shared.Validation("job id is required")
	// ErrInvalidID is returned when a posting id is not a positive integer.
	ErrInvalidID = shared.Validation("invalid job id")
	// ErrJobNotFound is returned when no posting matches the id.
	ErrJobNotFound = shared.NotFound("job not found")
)

// Verifier checks a raw bearer token.
type Verifier interface {
	Verify(raw string) (shared.Identity, error)
}

// Publisher forwards mutation events to the audit trail.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards events.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Service exposes public reads and token-gated mutations of postings.
type Service struct {
	repo      Repository
	verifier  Verifier
	publisher Publisher
	logger    *slog.Logger
	validator *validator.Validate
	now       func() time.Time
}

// NewService constructs a Service. A nil publisher discards events.
func NewService(repo Repository, verifier Verifier, publisher Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		verifier:  verifier,
		publisher: publisher,
		logger:    logger,
		validator: validator.New(),
		now:       time.Now,
	}
}

// ListJobs returns postings newest first. No token is required.
func (s *Service) ListJobs(ctx context.Context, filter Filter) ([]Job, error) {
	filter = Filter{
		JobType:  strings.TrimSpace(filter.JobType),
		Location: strings.TrimSpace(filter.Location),
	}
	return s.repo.List(ctx, filter)
}

// Facets returns the values offered by the listing filters.
func (s *Service) Facets(ctx context.Context) (Facets, error) {
	return s.repo.Facets(ctx)
}

// Authorize verifies rawToken without touching the store.
func (s *Service) Authorize(rawToken string) (shared.Identity, error) {
	return s.verifier.Verify(rawToken)
}

// CreateJob stores a posting on behalf of the token holder. The token is
// checked before the input.
func (s *Service) CreateJob(ctx context.Context, rawToken string, input NewJob) (Job, error) {
	actor, err := s.verifier.Verify(rawToken)
	if err != nil {
		return Job{}, err
	}
	input = input.Normalize()
	if err := s.validator.Struct(input); err != nil {
		return Job{}, ErrMissingFields
	}
	job, err := s.repo.Create(ctx, input)
	if err != nil {
		return Job{}, err
	}
	s.publish(ctx, ActionCreated, job, actor)
	return job, nil
}

// DeleteJob removes the posting identified by rawID and returns it.
func (s *Service) DeleteJob(ctx context.Context, rawToken, rawID string) (Job, error) {
	actor, err := s.verifier.Verify(rawToken)
	if err != nil {
		return Job{}, err
	}
	id, err := ParseID(rawID)
	if err != nil {
		return Job{}, err
	}
	job, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Job{}, err
	}
	s.publish(ctx, ActionDeleted, job, actor)
	return job, nil
}

// ParseID parses a posting id from a path segment or form value.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMissingID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func (s *Service) publish(ctx context.Context, action string, job Job, actor shared.Identity) {
	event := Event{
		Action:     action,
		Job:        job,
		ActorID:    actor.AccountID,
		ActorEmail: actor.Email,
		At:         s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish posting event",
			slog.String("action", action),
			slog.Int64("job_id", job.ID),
			slog.Any("error", err))
	}
}
