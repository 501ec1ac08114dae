package postings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for job postings.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Job, error)
	Facets(ctx context.Context) (Facets, error)
	Create(ctx context.Context, input NewJob) (Job, error)
	Delete(ctx context.Context, id int64) (Job, error)
}

const jobColumns = `id, title, company, location, job_type, description, created_at`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns postings newest first.
func (r *PGRepository) List(ctx context.Context, filter Filter) ([]Job, error) {
	var conditions []string
	var args []any
	if filter.JobType != "" {
		args = append(args, filter.JobType)
		conditions = append(conditions, fmt.Sprintf("job_type = $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		conditions = append(conditions, fmt.Sprintf("location = $%d", len(args)))
	}
	query := `SELECT ` + jobColumns + ` FROM job_postings`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postings: list: %w", err)
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("postings: scan: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postings: list: %w", err)
	}
	return jobs, nil
}

// Facets returns the distinct job types and locations in alphabetical order.
func (r *PGRepository) Facets(ctx context.Context) (Facets, error) {
	types, err := r.distinct(ctx, `SELECT DISTINCT job_type FROM job_postings ORDER BY job_type`)
	if err != nil {
		return Facets{}, err
	}
	locations, err := r.distinct(ctx, `SELECT DISTINCT location FROM job_postings ORDER BY location`)
	if err != nil {
		return Facets{}, err
	}
	return Facets{JobTypes: types, Locations: locations}, nil
}

func (r *PGRepository) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postings: facets: %w", err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postings: facets: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// Create inserts a posting and returns the stored row.
func (r *PGRepository) Create(ctx context.Context, input NewJob) (Job, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO job_postings (title, company, location, job_type, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+jobColumns,
		input.Title, input.Company, input.Location, input.JobType, input.Description)
	job, err := scanJob(row)
	if err != nil {
		return Job{}, fmt.Errorf("postings: create: %w", err)
	}
	return job, nil
}

// Delete removes one posting and returns its prior contents.
func (r *PGRepository) Delete(ctx context.Context, id int64) (Job, error) {
	row := r.pool.QueryRow(ctx, `DELETE FROM job_postings WHERE id = $1 RETURNING `+jobColumns, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, fmt.Errorf("postings: delete: %w", err)
	}
	return job, nil
}

func scanJob(row pgx.Row) (Job, error) {
	var job Job
	err := row.Scan(&job.ID, &job.Title, &job.Company, &job.Location, &job.JobType, &job.Description, &job.CreatedAt)
	return job, err
}

var _ Repository = (*PGRepository)(nil)
