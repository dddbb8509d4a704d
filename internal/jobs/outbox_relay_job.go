package jobs

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

type outboxMetrics interface {
	OutboxPublished(n int)
	OutboxFailed()
}

// OutboxRelayJob publishes pending outbox messages on a schedule. A run that
// is still publishing when the next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	handler  outboxRelayer
	metrics  outboxMetrics
	schedule string
	cmd      commands.RelayOutboxCommand
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOutboxRelayJob(
	handler outboxRelayer,
	metrics outboxMetrics,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:  handler,
		metrics:  metrics,
		schedule: schedule,
		cmd:      cmd,
		cron:     newCron(),
		logger:   logger.With("component", "outbox_relay_job"),
	}, nil
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce publishes one batch.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) {
	published, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.metrics.OutboxFailed()
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}
	if published > 0 {
		j.metrics.OutboxPublished(published)
		j.logger.DebugContext(ctx, "Outbox messages published", "count", published)
	}
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}

func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}
