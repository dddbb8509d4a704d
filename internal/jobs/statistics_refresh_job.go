package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/robfig/cron/v3"
)

// DefaultStatisticsSchedule refreshes the statistics gauges every thirty seconds.
const DefaultStatisticsSchedule = "*/30 * * * * *"

const statisticsMaxRetries = 3

type statisticsReader interface {
	Handle(ctx context.Context, query queries.GetStatisticsQuery) (queries.GetStatisticsQueryResponse, error)
}

type statisticsSink interface {
	SetStatistics(s services.Statistics)
}

// StatisticsRefreshJob recomputes order statistics and publishes them to the
// metrics gauges. Storage failures are retried with exponential backoff.
type StatisticsRefreshJob struct {
	reader   statisticsReader
	sink     statisticsSink
	schedule string
	query    queries.GetStatisticsQuery
	backoff  func() backoff.BackOff
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStatisticsRefreshJob(
	reader statisticsReader,
	sink statisticsSink,
	schedule string,
	logger *slog.Logger,
) (*StatisticsRefreshJob, error) {
	query, err := queries.NewGetStatisticsQuery(0)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultStatisticsSchedule
	}
	return &StatisticsRefreshJob{
		reader:   reader,
		sink:     sink,
		schedule: schedule,
		query:    query,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 10 * time.Second
			return backoff.WithMaxRetries(b, statisticsMaxRetries)
		},
		cron:   newCron(),
		logger: logger.With("component", "statistics_refresh_job"),
	}, nil
}

// WithBackOff replaces the retry policy.
func (j *StatisticsRefreshJob) WithBackOff(policy func() backoff.BackOff) *StatisticsRefreshJob {
	j.backoff = policy
	return j
}

func (j *StatisticsRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if runErr := j.RunOnce(context.Background()); runErr != nil {
			j.logger.Error("Statistics refresh failed", "error", runErr)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Statistics refresh job started", "schedule", j.schedule)
	return nil
}

// RunOnce computes statistics and updates the sink. Only persistence
// failures are retried.
func (j *StatisticsRefreshJob) RunOnce(ctx context.Context) error {
	operation := func() (queries.GetStatisticsQueryResponse, error) {
		response, err := j.reader.Handle(ctx, j.query)
		if err != nil && !errors.Is(err, errs.ErrPersistence) {
			return response, backoff.Permanent(err)
		}
		return response, err
	}

	response, err := backoff.RetryWithData(operation, backoff.WithContext(j.backoff(), ctx))
	if err != nil {
		return err
	}

	j.sink.SetStatistics(response.Statistics)
	return nil
}

func (j *StatisticsRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Statistics refresh job stopped")
}
