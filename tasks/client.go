package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jobboard/jobboard/internal/postings"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client submits tasks to the queue.
type Client struct {
	client enqueuer
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueuePostingAudit enqueues a posting:audit task.
func (c *Client) EnqueuePostingAudit(ctx context.Context, payload PostingAuditPayload) (*asynq.TaskInfo, error) {
	task, err := NewPostingAuditTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task)
}

// Publish implements postings.Publisher.
func (c *Client) Publish(ctx context.Context, event postings.Event) error {
	if _, err := c.EnqueuePostingAudit(ctx, PayloadFromEvent(event)); err != nil {
		return fmt.Errorf("tasks: enqueue %s: %w", TypePostingAudit, err)
	}
	return nil
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}

var _ postings.Publisher = (*Client)(nil)
