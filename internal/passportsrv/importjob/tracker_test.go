package importjob

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays a fixed sequence of draws.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// panicRand fails the test if the tracker draws at all.
type panicRand struct{}

func (panicRand) Float64() float64 { panic("unexpected random draw") }
func (panicRand) IntN(n int) int   { panic("unexpected random draw") }

func TestCreate(t *testing.T) {
	tracker := NewTracker()

	job := tracker.Create("JOB-1")
	assert.Equal(t, "JOB-1", job.ID)
	assert.Equal(t, StatusPendingProcessing, job.Status)
	assert.NotEmpty(t, job.Message)

	generated := tracker.Create("")
	assert.NotEmpty(t, generated.ID)
}

func TestPollUnknownJob(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Poll("NOPE")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrImportJobNotFound))
	assert.Contains(t, err.Error(), "NOPE")
}

func TestPollStaysPending(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.9, 0.5, 0.31}}
	tracker := NewTracker(WithRand(rng))
	tracker.Create("JOB-1")

	for i := 0; i < 3; i++ {
		job, err := tracker.Poll("JOB-1")
		require.Nil(t, err)
		assert.Equal(t, StatusPendingProcessing, job.Status)
	}
}

func TestPollCompletes(t *testing.T) {
	// first draw fires the transition, second resolves it to completion,
	// the int draw picks the processed-record count
	rng := &scriptedRand{floats: []float64{0.1, 0.5}, ints: []int{5}}
	tracker := NewTracker(WithRand(rng))
	tracker.Create("JOB-1")

	job, err := tracker.Poll("JOB-1")
	require.Nil(t, err)
	assert.Equal(t, StatusCompleted, job.Status)
	assert.Contains(t, job.Message, "15 records processed")
}

func TestPollFails(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.1, 0.9}, ints: []int{1}}
	tracker := NewTracker(WithRand(rng))
	tracker.Create("JOB-1")

	job, err := tracker.Poll("JOB-1")
	require.Nil(t, err)
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, failureReasons[1], job.Message)
}

func TestTerminalJobsNeverChange(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.1, 0.5}, ints: []int{5}}
	tracker := NewTracker(WithRand(rng))
	tracker.Create("JOB-1")

	done, err := tracker.Poll("JOB-1")
	require.Nil(t, err)
	require.Equal(t, StatusCompleted, done.Status)

	// a terminal job takes no further draws and returns unchanged state
	tracker.rng = panicRand{}
	for i := 0; i < 100; i++ {
		job, err := tracker.Poll("JOB-1")
		require.Nil(t, err)
		assert.Equal(t, done.Status, job.Status)
		assert.Equal(t, done.Message, job.Message)
	}
}

func TestEventuallyTerminal(t *testing.T) {
	// with the default source a pending job reaches a terminal state over
	// repeated polls with probability approaching one
	tracker := NewTracker()
	tracker.Create("JOB-1")

	for i := 0; i < 1000; i++ {
		job, err := tracker.Poll("JOB-1")
		require.Nil(t, err)
		if job.Terminal() {
			return
		}
	}
	t.Fatal("job never reached a terminal state after 1000 polls")
}
