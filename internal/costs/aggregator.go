// Package costs recomputes event costs from reserved logistics on a fixed
// interval.
package costs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/eventsdesk/internal/calculator"
	"github.com/mmynk/eventsdesk/internal/metrics"
	"github.com/mmynk/eventsdesk/internal/models"
	"github.com/mmynk/eventsdesk/internal/storage"
)

// ErrRunInProgress is returned when a recompute is requested while another
// one is still running.
var ErrRunInProgress = errors.New("cost recompute already running")

// EventSource is the storage the aggregator reads from and writes to.
type EventSource interface {
	ListEventsByParticipant(ctx context.Context, filter storage.ParticipantFilter) ([]*models.Event, error)
	UpdateEventCost(ctx context.Context, eventID string, cost float64) error
}

// Report summarizes one recompute run.
type Report struct {
	RunID    string
	Matched  int
	Updated  int
	Failed   int
	Duration time.Duration
}

// Aggregator recomputes the cost of every event that has a participant
// matching its filter.
type Aggregator struct {
	store    EventSource
	filter   storage.ParticipantFilter
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger

	running atomic.Bool
}

// NewAggregator creates an aggregator. interval is only used by Run.
func NewAggregator(store EventSource, filter storage.ParticipantFilter, interval time.Duration, m *metrics.Metrics, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		store:    store,
		filter:   filter,
		interval: interval,
		metrics:  m,
		logger:   logger,
	}
}

// Run recomputes costs every interval until ctx is cancelled.
func (a *Aggregator) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info("Cost aggregator started",
		"interval", a.interval,
		"surname", a.filter.Surname,
		"given_name", a.filter.GivenName,
		"role", a.filter.Role,
	)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Cost aggregator stopped")
			return
		case <-ticker.C:
			_, err := a.RecomputeCosts(ctx)
			switch {
			case errors.Is(err, ErrRunInProgress):
				a.logger.Warn("Skipping scheduled cost recompute, previous run still active")
			case err != nil && ctx.Err() == nil:
				a.logger.Error("Scheduled cost recompute failed", "error", err)
			}
		}
	}
}

// Start runs the aggregator on its own goroutine. The returned channel is
// closed once Run has returned, after any in-flight recompute finished.
func (a *Aggregator) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Run(ctx)
	}()
	return done
}

// RecomputeCosts sets each matching event's cost to the sum of its reserved
// logistics. A failure on one event does not stop the others; all failures
// are joined into the returned error. Only one run executes at a time.
func (a *Aggregator) RecomputeCosts(ctx context.Context) (Report, error) {
	if !a.running.CompareAndSwap(false, true) {
		a.metrics.CostRuns.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return Report{}, ErrRunInProgress
	}
	defer a.running.Store(false)

	start := time.Now()
	report := Report{RunID: uuid.New().String()}
	logger := a.logger.With("run_id", report.RunID)

	events, err := a.store.ListEventsByParticipant(ctx, a.filter)
	if err != nil {
		a.finish(&report, start, metrics.OutcomeFailed)
		return report, fmt.Errorf("failed to select events: %w", err)
	}
	report.Matched = len(events)

	var errs []error
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		summary := calculator.CalculateCost(toItems(event.Logistics))
		if err := a.store.UpdateEventCost(ctx, event.ID, summary.Total); err != nil {
			logger.Error("Failed to update event cost",
				"event_id", event.ID,
				"description", event.Description,
				"error", err,
			)
			a.metrics.CostEvents.WithLabelValues(metrics.OutcomeFailed).Inc()
			report.Failed++
			errs = append(errs, fmt.Errorf("event %s: %w", event.ID, err))
			continue
		}

		a.metrics.CostEvents.WithLabelValues(metrics.OutcomeUpdated).Inc()
		report.Updated++
		logger.Info("Event cost computed",
			"event_id", event.ID,
			"description", event.Description,
			"total_cost", summary.Total,
			"reserved_count", summary.ReservedCount,
			"skipped_count", summary.SkippedCount,
		)
	}

	outcome := metrics.OutcomeOK
	if len(errs) > 0 {
		outcome = metrics.OutcomePartial
		if report.Updated == 0 {
			outcome = metrics.OutcomeFailed
		}
	}
	a.finish(&report, start, outcome)

	logger.Info("Cost recompute finished",
		"matched", report.Matched,
		"updated", report.Updated,
		"failed", report.Failed,
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report, errors.Join(errs...)
}

func (a *Aggregator) finish(report *Report, start time.Time, outcome string) {
	report.Duration = time.Since(start)
	a.metrics.CostRunDuration.Observe(report.Duration.Seconds())
	a.metrics.CostRuns.WithLabelValues(outcome).Inc()
}

func toItems(logistics []models.Logistics) []calculator.Item {
	items := make([]calculator.Item, len(logistics))
	for i, l := range logistics {
		items[i] = calculator.Item{
			ID:        l.ID,
			Reserved:  l.Reserved,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	return items
}
