// Package janitor removes stale support data on a schedule. Every
// sweep re-reads its candidate set, so running a sweep twice in a row
// is harmless.
package janitor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"freightdesk/services/support-api/internal/domain/conversation"
	"freightdesk/services/support-api/internal/domain/shipment"
	"freightdesk/services/support-api/internal/infrastructure/metrics"
	"freightdesk/services/support-api/internal/utils/functional"
)

const (
	SweepExpiredConversations  = "expired_conversations"
	SweepOrphanedConversations = "orphaned_conversations"
	SweepCanceledPackages      = "canceled_packages"

	defaultIntervalMinutes        = 1
	defaultPackageIntervalMinutes = 60
	defaultSweepTimeout           = 5 * time.Minute
	defaultDeleteConcurrency      = 10
)

// Config separates the conversation cadence from the package cadence.
// Conversation sweeps run every minute; canceled packages age out on a
// much longer retention so their sweep runs hourly.
type Config struct {
	Enabled                bool
	IntervalMinutes        int
	PackageIntervalMinutes int
	ConversationMaxAge     time.Duration
	CanceledPackageMaxAge  time.Duration
	SweepTimeout           time.Duration
	DeleteConcurrency      int
}

type Janitor struct {
	ctab          *crontab.Crontab
	cfg           Config
	conversations conversation.Repository
	shipments     shipment.Repository
	logger        zerolog.Logger
	now           func() time.Time
}

func New(
	cfg Config,
	conversations conversation.Repository,
	shipments shipment.Repository,
	logger zerolog.Logger,
) *Janitor {
	if cfg.IntervalMinutes <= 0 {
		cfg.IntervalMinutes = defaultIntervalMinutes
	}
	if cfg.PackageIntervalMinutes <= 0 {
		cfg.PackageIntervalMinutes = defaultPackageIntervalMinutes
	}
	if cfg.SweepTimeout <= 0 {
		cfg.SweepTimeout = defaultSweepTimeout
	}
	if cfg.DeleteConcurrency <= 0 {
		cfg.DeleteConcurrency = defaultDeleteConcurrency
	}
	return &Janitor{
		ctab:          crontab.New(),
		cfg:           cfg,
		conversations: conversations,
		shipments:     shipments,
		logger:        logger,
		now:           time.Now,
	}
}

// Run executes the sweeps once at startup, schedules them, and blocks
// until the context is canceled.
func (j *Janitor) Run(ctx context.Context) error {
	if !j.cfg.Enabled {
		j.logger.Info().Msg("janitor disabled")
		<-ctx.Done()
		return nil
	}

	j.runConversationSweeps()
	j.runPackageSweep()

	if err := j.ctab.AddJob(scheduleExpr(j.cfg.IntervalMinutes), j.runConversationSweeps); err != nil {
		return fmt.Errorf("schedule conversation sweeps: %w", err)
	}
	if err := j.ctab.AddJob(scheduleExpr(j.cfg.PackageIntervalMinutes), j.runPackageSweep); err != nil {
		return fmt.Errorf("schedule package sweep: %w", err)
	}
	j.logger.Info().
		Int("interval_minutes", j.cfg.IntervalMinutes).
		Int("package_interval_minutes", j.cfg.PackageIntervalMinutes).
		Dur("conversation_max_age", j.cfg.ConversationMaxAge).
		Dur("canceled_package_max_age", j.cfg.CanceledPackageMaxAge).
		Msg("janitor scheduled")

	<-ctx.Done()
	j.ctab.Shutdown()
	return nil
}

func (j *Janitor) runConversationSweeps() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.SweepTimeout)
	defer cancel()
	j.sweepExpiredConversations(ctx)
	j.sweepOrphanedConversations(ctx)
}

func (j *Janitor) runPackageSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.SweepTimeout)
	defer cancel()
	j.sweepCanceledPackages(ctx)
}

// RunAllSweeps executes every sweep. A failure in one sweep does not
// stop the others.
func (j *Janitor) RunAllSweeps(ctx context.Context) {
	j.sweepExpiredConversations(ctx)
	j.sweepOrphanedConversations(ctx)
	j.sweepCanceledPackages(ctx)
}

// sweepExpiredConversations deletes conversations past the retention
// age whose status allows it. Approved conversations are always kept.
func (j *Janitor) sweepExpiredConversations(ctx context.Context) {
	start := j.now()
	cutoff := start.Add(-j.cfg.ConversationMaxAge)

	expired, err := j.conversations.FindExpired(ctx, cutoff, conversation.JanitorDeletableStatuses)
	if err != nil {
		j.logger.Error().Err(err).Str("sweep", SweepExpiredConversations).Msg("listing candidates failed, skipping cycle")
		metrics.RecordSweep(SweepExpiredConversations, "list_failed", 0, time.Since(start).Seconds())
		return
	}

	deleted, failed := j.deleteConversations(ctx, expired)
	j.finishSweep(SweepExpiredConversations, start, len(expired), deleted, failed)
}

// sweepOrphanedConversations deletes rows without customer identity,
// regardless of age.
func (j *Janitor) sweepOrphanedConversations(ctx context.Context) {
	start := j.now()

	orphaned, err := j.conversations.FindOrphaned(ctx)
	if err != nil {
		j.logger.Error().Err(err).Str("sweep", SweepOrphanedConversations).Msg("listing candidates failed, skipping cycle")
		metrics.RecordSweep(SweepOrphanedConversations, "list_failed", 0, time.Since(start).Seconds())
		return
	}

	deleted, failed := j.deleteConversations(ctx, orphaned)
	j.finishSweep(SweepOrphanedConversations, start, len(orphaned), deleted, failed)
}

// sweepCanceledPackages deletes canceled shipment packages past the
// retention age in one batch.
func (j *Janitor) sweepCanceledPackages(ctx context.Context) {
	start := j.now()
	cutoff := start.Add(-j.cfg.CanceledPackageMaxAge)

	canceled, err := j.shipments.FindCanceledBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error().Err(err).Str("sweep", SweepCanceledPackages).Msg("listing candidates failed, skipping cycle")
		metrics.RecordSweep(SweepCanceledPackages, "list_failed", 0, time.Since(start).Seconds())
		return
	}
	if len(canceled) == 0 {
		j.finishSweep(SweepCanceledPackages, start, 0, 0, 0)
		return
	}

	ids := functional.Map(canceled, func(pkg *shipment.ShipmentPackage) uint { return pkg.ID })

	if err := j.shipments.DeleteByIDs(ctx, ids); err != nil {
		j.logger.Error().Err(err).Str("sweep", SweepCanceledPackages).Int("candidates", len(ids)).Msg("batch delete failed")
		metrics.RecordSweep(SweepCanceledPackages, "failed", 0, time.Since(start).Seconds())
		return
	}
	j.finishSweep(SweepCanceledPackages, start, len(ids), len(ids), 0)
}

// deleteConversations removes candidates with bounded concurrency.
// Individual failures are counted, not fatal.
func (j *Janitor) deleteConversations(ctx context.Context, candidates []*conversation.Conversation) (int, int) {
	if len(candidates) == 0 {
		return 0, 0
	}

	sem := make(chan struct{}, j.cfg.DeleteConcurrency)
	var wg sync.WaitGroup
	var failed atomic.Int64

	for _, conv := range candidates {
		wg.Add(1)
		go func(c *conversation.Conversation) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := j.conversations.DeleteWithMessages(ctx, c.ID); err != nil {
				failed.Add(1)
				j.logger.Debug().Err(err).Str("conversation_id", c.PublicID).Msg("delete failed")
			}
		}(conv)
	}
	wg.Wait()

	failures := int(failed.Load())
	return len(candidates) - failures, failures
}

func (j *Janitor) finishSweep(sweep string, start time.Time, candidates, deleted, failed int) {
	duration := time.Since(start)
	status := "ok"
	if failed > 0 {
		status = "partial"
		j.logger.Error().
			Str("sweep", sweep).
			Int("candidates", candidates).
			Int("deleted", deleted).
			Int("failed", failed).
			Msg("sweep completed with failures")
	} else if deleted > 0 {
		j.logger.Info().
			Str("sweep", sweep).
			Int("deleted", deleted).
			Dur("duration", duration).
			Msg("sweep completed")
	}
	metrics.RecordSweep(sweep, status, deleted, duration.Seconds())
}

// scheduleExpr builds a crontab spec for the interval. Intervals that
// land on whole hours switch to an hourly expression, since minute
// steps above 59 are invalid.
func scheduleExpr(intervalMinutes int) string {
	if intervalMinutes >= 60 {
		hours := intervalMinutes / 60
		if hours > 23 {
			hours = 23
		}
		return fmt.Sprintf("0 */%d * * *", hours)
	}
	return fmt.Sprintf("*/%d * * * *", intervalMinutes)
}
