// Package memstore provides in-memory repositories for tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jobboard/jobboard/internal/auth"
	"github.com/jobboard/jobboard/internal/postings"
	"github.com/jobboard/jobboard/internal/shared"
	_ "github.com/jobboard/jobboard/internal/testing/guard"
)

// Accounts is an in-memory auth.Repository.
type Accounts struct {
	txMu    sync.Mutex
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]auth.Account
}

// NewAccounts returns an empty account store.
func NewAccounts() *Accounts {
	return &Accounts{byEmail: make(map[string]auth.Account)}
}

// WithTx serialises fn against other transactions.
func (a *Accounts) WithTx(ctx context.Context, fn func(context.Context, auth.Repository) error) error {
	a.txMu.Lock()
	defer a.txMu.Unlock()
	return fn(ctx, a)
}

// FindByEmail implements auth.Repository.
func (a *Accounts) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	acc, ok := a.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &acc, nil
}

// EmailExists implements auth.Repository.
func (a *Accounts) EmailExists(_ context.Context, email string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.byEmail[email]
	return ok, nil
}

// Create implements auth.Repository.
func (a *Accounts) Create(_ context.Context, email, passwordHash string) (*auth.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.byEmail[email]; ok {
		return nil, auth.ErrUserExists
	}
	a.nextID++
	acc := auth.Account{ID: a.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	a.byEmail[email] = acc
	return &acc, nil
}

// Count returns the number of stored accounts.
func (a *Accounts) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.byEmail)
}

// Jobs is an in-memory postings.Repository. created_at strictly increases
// with every insert.
type Jobs struct {
	mu     sync.Mutex
	nextID int64
	rows   []postings.Job
	last   time.Time
	now    func() time.Time
}

// NewJobs returns an empty job store.
func NewJobs() *Jobs {
	return &Jobs{now: time.Now}
}

// List implements postings.Repository.
func (j *Jobs) List(_ context.Context, filter postings.Filter) ([]postings.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]postings.Job, 0, len(j.rows))
	for _, row := range j.rows {
		if filter.JobType != "" && row.JobType != filter.JobType {
			continue
		}
		if filter.Location != "" && row.Location != filter.Location {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}

// Facets implements postings.Repository.
func (j *Jobs) Facets(_ context.Context) (postings.Facets, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	types := map[string]struct{}{}
	locations := map[string]struct{}{}
	for _, row := range j.rows {
		types[row.JobType] = struct{}{}
		locations[row.Location] = struct{}{}
	}
	return postings.Facets{JobTypes: sortedKeys(types), Locations: sortedKeys(locations)}, nil
}

// Create implements postings.Repository.
func (j *Jobs) Create(_ context.Context, input postings.NewJob) (postings.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	created := j.now().UTC().Truncate(time.Microsecond)
	if !created.After(j.last) {
		created = j.last.Add(time.Microsecond)
	}
	j.last = created
	j.nextID++
	job := postings.Job{
		ID:          j.nextID,
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		JobType:     input.JobType,
		Description: input.Description,
		CreatedAt:   created,
	}
	j.rows = append(j.rows, job)
	return job, nil
}

// Delete implements postings.Repository.
func (j *Jobs) Delete(_ context.Context, id int64) (postings.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i, row := range j.rows {
		if row.ID == id {
			j.rows = append(j.rows[:i], j.rows[i+1:]...)
			return row, nil
		}
	}
	return postings.Job{}, postings.ErrJobNotFound
}

// Count returns the number of stored postings.
func (j *Jobs) Count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.rows)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	_ auth.Repository     = (*Accounts)(nil)
	_ postings.Repository = (*Jobs)(nil)
)
