package jobs

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockJob struct{}

func (mj *mockJob) Run() {
	// do nothing
}

func testLogger() *logrus.Entry {
	lgr := logrus.New()
	lgr.SetOutput(io.Discard)
	return lgr.WithField("test", "jobs")
}

func TestNewJobSchedulerWithoutJob(t *testing.T) {
	js, err := NewJobScheduler(testLogger(), "0 0 * * *", nil)
	require.NoError(t, err)

	js.Start()
	t.Cleanup(js.Stop)

	assert.Empty(t, js.scheduler.Entries())
	assert.True(t, js.NextRun().IsZero())
}

func TestNewJobScheduler(t *testing.T) {
	logger := testLogger()
	job := &mockJob{}

	js, err := NewJobScheduler(logger, "0 0 * * *", job)
	require.NoError(t, err)

	assert.Equal(t, logger, js.logger)
	assert.Equal(t, job, js.job)
	assert.NotZero(t, js.jobId)
}

func TestNewJobSchedulerInvalidExpression(t *testing.T) {
	_, err := NewJobScheduler(testLogger(), "every now and then", &mockJob{})
	assert.Error(t, err)
}

func TestJobSchedulerNextRun(t *testing.T) {
	js, err := NewJobScheduler(testLogger(), "0 0 * * *", &mockJob{})
	require.NoError(t, err)

	js.Start()
	t.Cleanup(js.Stop)

	assert.False(t, js.NextRun().IsZero())
}

func TestJobSchedulerInSeconds(t *testing.T) {
	js, err := NewJobScheduler(testLogger(), "*/30 * * * * *", &mockJob{})
	require.NoError(t, err)

	js.Start()
	t.Cleanup(js.Stop)

	assert.False(t, js.NextRun().IsZero())
}

func TestJobSchedulerStop(t *testing.T) {
	js, err := NewJobScheduler(testLogger(), "0 0 * * *", &mockJob{})
	require.NoError(t, err)

	js.Start()
	js.Stop()

	assert.True(t, js.NextRun().IsZero())
}
