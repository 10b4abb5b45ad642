package jobs

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type JobScheduler struct {
	scheduler *cron.Cron
	logger    *logrus.Entry
	job       cron.Job
	jobId     cron.EntryID
}

// NewJobScheduler schedules job with a standard (5 field) or a seconds level (6 field) cron expression.
func NewJobScheduler(logger *logrus.Entry, frequency string, job cron.Job) (*JobScheduler, error) {
	scheduler := cron.New()

	logger.Infof("enabling periodic job with cron expression: '%s'", frequency)
	if len(strings.Fields(frequency)) == 6 {
		logger.Warn("periodic job contains 'second level' scheduling. This may cause performance issues in production scenarios")
		scheduler = cron.New(cron.WithSeconds())
	}

	var jobId cron.EntryID
	if job != nil {
		var err error
		jobId, err = scheduler.AddJob(frequency, job)
		if err != nil {
			return nil, fmt.Errorf("could not add scheduled run for job: %w", err)
		}
	}

	return &JobScheduler{
		scheduler: scheduler,
		logger:    logger,
		job:       job,
		jobId:     jobId,
	}, nil
}

func (js *JobScheduler) Start() {
	js.scheduler.Start()
}

func (js *JobScheduler) NextRun() time.Time {
	return js.scheduler.Entry(js.jobId).Next
}

func (js *JobScheduler) Stop() {
	js.scheduler.Remove(js.jobId)
	<-js.scheduler.Stop().Done()
}
