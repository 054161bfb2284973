package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCleanupJob_Process(t *testing.T) {
	repo := new(MockRepository)
	repo.On("PurgeBefore", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(100), nil)

	assert.NoError(t, NewCleanupJob(NewService(repo), 10*24*time.Hour).Process(context.Background()))
	repo.AssertExpectations(t)
}

func TestCleanupJob_DefaultRetentionAndFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("PurgeBefore", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	job := NewCleanupJob(NewService(repo), 0)
	assert.Equal(t, DefaultRetention, job.retention)
	assert.Error(t, job.Process(context.Background()))
}
