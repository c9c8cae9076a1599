package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs int
	err  error
}

func (j *countingJob) Run() error   { j.runs++; return j.err }
func (j *countingJob) Name() string { return "counting" }

func TestAddJob_ValidSchedules(t *testing.T) {
	s := New(zerolog.Nop())

	require.NoError(t, s.AddJob("@every 1m", &countingJob{}))
	require.NoError(t, s.AddJob("0 */5 * * * *", &countingJob{}))
	require.NoError(t, s.AddJob("@daily", &countingJob{}))
	assert.Equal(t, 3, s.Jobs())
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	assert.Error(t, s.AddJob("every minute", &countingJob{}))
	assert.Zero(t, s.Jobs())
}

func TestRunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{err: errors.New("boom")}

	assert.EqualError(t, s.RunNow(job), "boom")
	assert.Equal(t, 1, job.runs)
}

func TestStartStop(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.AddJob("@every 1h", &countingJob{}))

	s.Start()
	s.Stop()
}

type fakeSyncer struct {
	symbols []string
	stored  int
	err     error
}

func (f *fakeSyncer) Sync(_ context.Context, symbols []string) (int, error) {
	f.symbols = symbols
	return f.stored, f.err
}

func list(symbols ...string) SymbolsFunc {
	return func(context.Context) ([]string, error) { return symbols, nil }
}

func failing(err error) SymbolsFunc {
	return func(context.Context) ([]string, error) { return nil, err }
}

func TestPriceSyncJob_SyncsHoldingsAndWatchlist(t *testing.T) {
	syncer := &fakeSyncer{stored: 3}
	job := NewPriceSyncJob(list("AAPL", "MSFT"), list("TSLA"), syncer, 0, zerolog.Nop())

	require.NoError(t, job.Run())
	assert.Equal(t, []string{"AAPL", "MSFT", "TSLA"}, syncer.symbols)
	assert.Equal(t, "price_sync", job.Name())
}

func TestPriceSyncJob_NothingToSync(t *testing.T) {
	syncer := &fakeSyncer{}
	job := NewPriceSyncJob(list(), nil, syncer, 0, zerolog.Nop())

	require.NoError(t, job.Run())
	assert.Nil(t, syncer.symbols)
}

func TestPriceSyncJob_HoldingsError(t *testing.T) {
	job := NewPriceSyncJob(failing(errors.New("db closed")), nil, &fakeSyncer{}, 0, zerolog.Nop())
	assert.Error(t, job.Run())
}

func TestPriceSyncJob_WatchlistErrorIsNotFatal(t *testing.T) {
	syncer := &fakeSyncer{}
	job := NewPriceSyncJob(list("AAPL"), failing(errors.New("db closed")), syncer, 0, zerolog.Nop())

	require.NoError(t, job.Run())
	assert.Equal(t, []string{"AAPL"}, syncer.symbols)
}

func TestPriceSyncJob_SyncError(t *testing.T) {
	job := NewPriceSyncJob(list("AAPL"), nil, &fakeSyncer{err: errors.New("yahoo down")}, 0, zerolog.Nop())
	assert.Error(t, job.Run())
}
