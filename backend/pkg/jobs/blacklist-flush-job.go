package jobs

import (
	"time"

	"github.com/lamassuiot/authping/core/pkg/engines/storage"
	"github.com/lamassuiot/authping/core/pkg/helpers"
	"github.com/sirupsen/logrus"
)

// BlacklistFlushJob removes blacklisted tokens that would be rejected anyway because they already expired.
type BlacklistFlushJob struct {
	logger    *logrus.Entry
	blacklist storage.TokenBlacklistRepo
	now       func() time.Time
}

func NewBlacklistFlushJob(blacklist storage.TokenBlacklistRepo, logger *logrus.Entry) *BlacklistFlushJob {
	return &BlacklistFlushJob{
		logger:    logger,
		blacklist: blacklist,
		now:       time.Now,
	}
}

func (job *BlacklistFlushJob) Run() {
	ctx := helpers.InitContext()
	lFunc := helpers.ConfigureLogger(ctx, job.logger)

	start := job.now()
	lFunc.Debug("starting blacklist flush")

	deleted, err := job.blacklist.DeleteExpired(ctx, start)
	if err != nil {
		lFunc.Errorf("could not flush expired blacklisted tokens: %s", err)
		return
	}

	lFunc.Infof("flushed %d expired blacklisted tokens. Took %v", deleted, time.Since(start))
}
