package worker

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"gifts_buyer/internal/domain/entity"
	service "gifts_buyer/internal/domain/service/gift"
	"gifts_buyer/internal/metrics"
	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultJitter = 3 * time.Second

type Connector interface {
	EnsureConnected(ctx context.Context) error
}

type Differ interface {
	Diff(ctx context.Context) (service.CatalogDiff, error)
	Commit(ctx context.Context, diff service.CatalogDiff) error
}

type Ranker interface {
	Rank(newItems entity.CatalogSnapshot, orderedIDs []int64) []entity.GiftItem
}

type Evaluator interface {
	Evaluate(item entity.GiftItem) service.Decision
}

type Distributor interface {
	Distribute(ctx context.Context, item entity.GiftItem, match service.Match) []entity.PurchaseOutcome
}

type Notifier interface {
	RangeMismatch(ctx context.Context, item entity.GiftItem)
	SkipSummary(ctx context.Context, counts entity.SkipCounts)
}

// CycleStatus summarizes the last finished detection cycle.
type CycleStatus struct {
	TraceID    string
	FinishedAt time.Time
	NewGifts   int
	Purchased  int
	Skipped    entity.SkipCounts
	Mismatched int
	Errors     int
	Known      int
	Err        error
}

// GiftDetector polls the catalog and buys new gifts, one cycle at a time.
type GiftDetector struct {
	conn        Connector
	differ      Differ
	ranker      Ranker
	evaluator   Evaluator
	distributor Distributor
	notifier    Notifier
	metrics     *metrics.Metrics

	interval time.Duration
	jitter   time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	randN    func(n int64) int64

	mu     sync.RWMutex
	status CycleStatus
	ran    bool
}

func NewGiftDetector(
	conn Connector,
	differ Differ,
	ranker Ranker,
	evaluator Evaluator,
	distributor Distributor,
	notifier Notifier,
	interval time.Duration,
) *GiftDetector {
	return &GiftDetector{
		conn:        conn,
		differ:      differ,
		ranker:      ranker,
		evaluator:   evaluator,
		distributor: distributor,
		notifier:    notifier,
		interval:    interval,
		jitter:      defaultJitter,
		sleep:       contextx.Sleep,
		randN:       rand.Int64N,
	}
}

func (w *GiftDetector) WithMetrics(m *metrics.Metrics) *GiftDetector {
	w.metrics = m
	return w
}

func (w *GiftDetector) WithJitter(jitter time.Duration) *GiftDetector {
	w.jitter = jitter
	return w
}

func (w *GiftDetector) WithSleep(sleep func(ctx context.Context, d time.Duration) error) *GiftDetector {
	w.sleep = sleep
	return w
}

func (w *GiftDetector) WithRand(randN func(n int64) int64) *GiftDetector {
	w.randN = randN
	return w
}

// Run repeats cycles until ctx is done. Cycle errors are logged and the
// loop carries on after the usual pause.
func (w *GiftDetector) Run(ctx context.Context) error {
	for {
		if _, err := w.RunCycle(ctx); err != nil && ctx.Err() == nil {
			logger(ctx).Error("detection cycle failed", logx.Error(err))
		}

		if err := w.sleep(ctx, w.nextDelay()); err != nil {
			return err
		}
	}
}

// RunCycle performs one fetch, evaluate, purchase and persist pass. The
// snapshot is not written when the connection check or the diff fails.
func (w *GiftDetector) RunCycle(ctx context.Context) (CycleStatus, error) {
	traceID := contextx.NewTraceID()
	ctx = contextx.WithCycle(ctx, traceID)
	started := time.Now()

	logger(ctx).Debug("checking for new gifts")

	status, err := w.runCycle(ctx)
	status.TraceID = traceID.String()
	status.FinishedAt = time.Now()
	status.Err = err

	if w.metrics != nil {
		w.metrics.ObserveCycle(started, err)
	}

	w.mu.Lock()
	w.status = status
	w.ran = true
	w.mu.Unlock()

	return status, err
}

func (w *GiftDetector) runCycle(ctx context.Context) (CycleStatus, error) {
	var status CycleStatus

	if err := w.conn.EnsureConnected(ctx); err != nil {
		return status, fmt.Errorf("ensure connected: %w", err)
	}

	diff, err := w.differ.Diff(ctx)
	if err != nil {
		return status, fmt.Errorf("diff catalog: %w", err)
	}

	status.Known = len(diff.Current)
	status.NewGifts = len(diff.New)

	if status.NewGifts > 0 {
		logger(ctx).Info("new gifts detected", slog.Int(logx.FieldCount, status.NewGifts))
	}

	for _, item := range w.ranker.Rank(diff.New, diff.OrderedIDs) {
		if ctx.Err() != nil {
			// The snapshot stays untouched on interruption.
			return status, ctx.Err()
		}

		w.route(ctx, item, &status)
	}

	if err := w.differ.Commit(ctx, diff); err != nil {
		return status, fmt.Errorf("commit snapshot: %w", err)
	}

	if status.Skipped.Total() > 0 {
		logger(ctx).Info("skipped gifts",
			slog.Int("sold-out", status.Skipped.SoldOut),
			slog.Int("non-limited", status.Skipped.NonLimited),
			slog.Int("non-upgradable", status.Skipped.NonUpgradable),
		)
		w.notifier.SkipSummary(ctx, status.Skipped)
	}

	if w.metrics != nil {
		w.metrics.NewGifts.Add(float64(status.NewGifts))
		w.metrics.ObserveSkips(status.Skipped)
	}

	return status, nil
}

func (w *GiftDetector) route(ctx context.Context, item entity.GiftItem, status *CycleStatus) {
	decision := w.evaluator.Evaluate(item)

	switch decision.Verdict {
	case service.VerdictExcluded:
		logger(ctx).Debug("gift excluded",
			slog.Int64(logx.FieldGiftID, item.ID),
			slog.String(logx.FieldReason, string(decision.Reason)),
		)
		status.Skipped.Add(decision.Reason)

	case service.VerdictNoRange:
		logger(ctx).Info("gift does not match any range",
			slog.Int64(logx.FieldGiftID, item.ID),
			slog.Int64(logx.FieldPrice, item.Price),
			slog.Int64(logx.FieldSupply, item.MatchSupply()),
		)
		status.Mismatched++
		w.notifier.RangeMismatch(ctx, item)

		if w.metrics != nil {
			w.metrics.RangeMismatches.Inc()
		}

	case service.VerdictEligible:
		for _, outcome := range w.distributor.Distribute(ctx, item, decision.Match) {
			status.Purchased += outcome.PurchasedQuantity
			if outcome.Failure != entity.FailureNone {
				status.Errors++
			}

			if w.metrics != nil {
				w.metrics.ObserveOutcome(outcome)
			}
		}
	}
}

// Status returns the last finished cycle. ok is false before the first one.
func (w *GiftDetector) Status() (CycleStatus, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.status, w.ran
}

// Ready reports whether the last cycle succeeded.
func (w *GiftDetector) Ready() bool {
	status, ok := w.Status()
	return ok && status.Err == nil
}

func (w *GiftDetector) nextDelay() time.Duration {
	delay := w.interval
	if w.jitter > 0 {
		delay += time.Duration(w.randN(int64(2*w.jitter)+1)) - w.jitter
	}

	return max(delay, 0)
}
