// Package importjob tracks asynchronous batch-import jobs. Jobs are created
// when a batch import is initiated and then polled by id; a pending job
// probabilistically advances toward a terminal state on each poll, emulating
// a backend worker making progress between requests.
package importjob

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/openpassport/dppsrv/internal/common/apperrors"
)

var (
	ErrImportJob         apperrors.Error = apperrors.New("error in processing import job").SetStatusCode(http.StatusInternalServerError)
	ErrImportJobNotFound apperrors.Error = ErrImportJob.New("import job not found").SetStatusCode(http.StatusNotFound)
)

type Status string

const (
	StatusPendingProcessing Status = "PendingProcessing"
	StatusCompleted         Status = "Completed"
	StatusFailed            Status = "Failed"
)

type Job struct {
	ID      string `json:"id"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Terminal reports whether the job can never change state again.
func (j *Job) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

const (
	// chance that a pending job advances on a poll
	transitionProbability = 0.30
	// chance that an advancing job completes rather than fails
	completionProbability = 0.70

	minProcessedRecords = 10
	maxProcessedRecords = 250
)

var failureReasons = []string{
	"Source file contained malformed rows",
	"Duplicate passport identifiers detected in batch",
	"Upstream supplier registry was unreachable",
}

// Rand is the random source behind the simulated transitions. Draws are
// request-scoped: the tracker calls it fresh on every poll, never caching
// state between requests, so concurrent polling of different jobs is safe.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// stdRand delegates to math/rand/v2's top-level generator, which is safe for
// concurrent use.
type stdRand struct{}

func (stdRand) Float64() float64 { return rand.Float64() }
func (stdRand) IntN(n int) int   { return rand.IntN(n) }

// Tracker is the process-wide keyed store of import jobs.
type Tracker struct {
	mu   sync.Mutex
	jobs map[string]*Job
	rng  Rand
}

type Option func(*Tracker)

// WithRand overrides the random source so tests can force transitions.
func WithRand(r Rand) Option {
	return func(t *Tracker) {
		t.rng = r
	}
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		jobs: make(map[string]*Job),
		rng:  stdRand{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Create registers a new pending job. An empty id gets a generated one.
func (t *Tracker) Create(id string) *Job {
	if id == "" {
		id = uuid.NewString()
	}
	job := &Job{
		ID:      id,
		Status:  StatusPendingProcessing,
		Message: "Batch import queued for processing",
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[id] = job
	cp := *job
	return &cp
}

// Poll returns the job's current state, advancing a pending job with fixed
// probability. Transitions only move forward: once a job is terminal it is
// returned unchanged on every subsequent poll.
func (t *Tracker) Poll(id string) (*Job, apperrors.Error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	job, ok := t.jobs[id]
	if !ok {
		return nil, ErrImportJobNotFound.New("import job not found: " + id)
	}
	if !job.Terminal() && t.rng.Float64() < transitionProbability {
		if t.rng.Float64() < completionProbability {
			n := minProcessedRecords + t.rng.IntN(maxProcessedRecords-minProcessedRecords+1)
			job.Status = StatusCompleted
			job.Message = fmt.Sprintf("Import completed successfully. %d records processed.", n)
		} else {
			job.Status = StatusFailed
			job.Message = failureReasons[t.rng.IntN(len(failureReasons))]
		}
	}
	cp := *job
	return &cp, nil
}
