package clientdata

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupJobName(t *testing.T) {
	repo, _ := setupTestRepo(t)
	job := NewCleanupJob(repo, time.Hour, zerolog.Nop())

	assert.Equal(t, "price_cache_cleanup", job.Name())
}

func TestNewCleanupJob_DefaultRetention(t *testing.T) {
	repo, _ := setupTestRepo(t)
	job := NewCleanupJob(repo, 0, zerolog.Nop())

	assert.Equal(t, StaleRetention, job.retention)
}

func TestCleanupJobRun_KeepsRecentlyExpired(t *testing.T) {
	repo, c := setupTestRepo(t)
	job := NewCleanupJob(repo, time.Hour, zerolog.Nop())

	require.NoError(t, repo.Store("ANCIENT", 1, time.Minute))
	c.advance(3 * time.Hour)
	require.NoError(t, repo.Store("RECENT", 2, time.Minute))
	c.advance(10 * time.Minute)

	require.NoError(t, job.Run())

	ancient, err := repo.Get("ANCIENT")
	require.NoError(t, err)
	assert.Nil(t, ancient)

	recent, err := repo.Get("RECENT")
	require.NoError(t, err)
	require.NotNil(t, recent, "expired within retention stays as a fallback")
}
