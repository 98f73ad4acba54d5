package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/skinsentry/skinsentry/internal/domain"
)

const dateLayout = "2006-01-02"

// Notifier delivers a message to a destination chat, mentioning the user it
// concerns. Delivery failure is an error; the watcher decides what that means
// for the entity.
type Notifier interface {
	Notify(destination, user int64, text string) error
}

// Watcher drives the two periodic loops: one-shot alert checks and daily
// digests. Each loop's ticks run back to back on its own goroutine, and every
// tick holds the store lock for its whole load-evaluate-save cycle, so the
// two loops cannot overwrite each other's state.
type Watcher struct {
	store          domain.StateStore
	sources        map[domain.Source]domain.PriceSource
	notifier       Notifier
	minSupport     int
	alertInterval  time.Duration
	digestInterval time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

func NewWatcher(
	store domain.StateStore,
	sources map[domain.Source]domain.PriceSource,
	notifier Notifier,
	minSupport int,
	alertInterval, digestInterval time.Duration,
	logger *zap.Logger,
) *Watcher {
	return &Watcher{
		store:          store,
		sources:        sources,
		notifier:       notifier,
		minSupport:     minSupport,
		alertInterval:  alertInterval,
		digestInterval: digestInterval,
		logger:         logger,
		now:            time.Now,
	}
}

// Run blocks until the context is canceled or a tick fails to persist.
// A failed save aborts both loops rather than carrying on with state that
// was never written out.
func (w *Watcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- w.loop(ctx, "alerts", w.alertInterval, w.CheckAlerts)
	}()
	go func() {
		errCh <- w.loop(ctx, "digests", w.digestInterval, w.SendDigests)
	}()

	err := <-errCh
	cancel()
	<-errCh
	return err
}

func (w *Watcher) loop(ctx context.Context, name string, interval time.Duration, tick func(context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch loop stopped", zap.String("loop", name))
			return nil
		case <-ticker.C:
			if err := tick(ctx); err != nil {
				w.logger.Error("watch loop aborting", zap.String("loop", name), zap.Error(err))
				return fmt.Errorf("%s loop: %w", name, err)
			}
		}
	}
}

// CheckAlerts evaluates every alert once and removes those that fired. An
// alert is removed only after its notification was delivered; an unreachable
// destination keeps the alert for the next tick. The document is saved even
// when nothing fired.
func (w *Watcher) CheckAlerts(ctx context.Context) error {
	return w.store.Update(ctx, func(doc *domain.Document) error {
		pending := make([]domain.Alert, len(doc.Alerts))
		copy(pending, doc.Alerts)

		for _, alert := range pending {
			source, ok := w.sources[alert.Source]
			if !ok {
				w.logger.Warn("no price source for alert", zap.String("source", string(alert.Source)))
				continue
			}

			quote, err := source.FetchQuote(ctx, alert.Item, domain.NewTarget(alert.TargetPrice, alert.Direction))
			if err != nil {
				w.logger.Warn("quote fetch failed",
					zap.String("item", alert.Item),
					zap.String("source", string(alert.Source)),
					zap.Error(err))
				continue
			}
			if !domain.Evaluate(quote, domain.NewTarget(alert.TargetPrice, alert.Direction), w.minSupport) {
				continue
			}

			if err := w.notifier.Notify(alert.Destination, alert.User, formatAlertText(alert, quote)); err != nil {
				w.logger.Warn("alert delivery failed, keeping alert",
					zap.Int64("destination", alert.Destination),
					zap.String("item", alert.Item),
					zap.Error(err))
				continue
			}

			doc.RemoveAlert(alert)
			w.logger.Info("alert fired",
				zap.Int64("user", alert.User),
				zap.String("item", alert.Item),
				zap.String("source", string(alert.Source)),
				zap.String("price", quote.Price.String()),
				zap.Int("supporting", quote.SupportingCount))
		}
		return nil
	})
}

// SendDigests delivers at most one digest per subscription per calendar day.
// The last-sent date is recorded only after a successful send, so an
// unavailable quote or a failed delivery leaves the subscription eligible for
// the rest of the day.
func (w *Watcher) SendDigests(ctx context.Context) error {
	today := w.now().Format(dateLayout)

	return w.store.Update(ctx, func(doc *domain.Document) error {
		for i := range doc.Daily {
			sub := &doc.Daily[i]
			if sub.LastSent == today {
				continue
			}

			source, ok := w.sources[sub.Source]
			if !ok {
				w.logger.Warn("no price source for subscription", zap.String("source", string(sub.Source)))
				continue
			}

			quote, err := source.FetchQuote(ctx, sub.Item, domain.AnyPrice())
			if err != nil {
				w.logger.Warn("digest quote fetch failed",
					zap.String("item", sub.Item),
					zap.String("source", string(sub.Source)),
					zap.Error(err))
				continue
			}
			if !quote.Available {
				continue
			}

			if err := w.notifier.Notify(sub.Destination, sub.User, formatDigestText(*sub, quote)); err != nil {
				w.logger.Warn("digest delivery failed",
					zap.Int64("destination", sub.Destination),
					zap.String("item", sub.Item),
					zap.Error(err))
				continue
			}

			sub.LastSent = today
			w.logger.Info("digest sent",
				zap.Int64("user", sub.User),
				zap.String("item", sub.Item),
				zap.String("date", today))
		}
		return nil
	})
}

func formatAlertText(alert domain.Alert, quote domain.Quote) string {
	return fmt.Sprintf(
		"Price alert: %s (%s)\nPrice %s, %d supporting listings (target %s %s)",
		alert.Item, alert.Source, quote.Price, quote.SupportingCount, alert.Direction, alert.TargetPrice,
	)
}

func formatDigestText(sub domain.DailySubscription, quote domain.Quote) string {
	return fmt.Sprintf(
		"Daily update: %s (%s)\nPrice %s, %d listings checked",
		sub.Item, sub.Source, quote.Price, quote.SupportingCount,
	)
}
