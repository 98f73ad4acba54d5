package domain

import (
	"context"

	"github.com/samber/lo"
)

// Document is the durable aggregate: every alert and daily subscription in
// the system. It is rewritten in full on every successful tick.
type Document struct {
	Alerts []Alert
	Daily  []DailySubscription
}

func (d *Document) AddAlert(alert Alert) {
	d.Alerts = append(d.Alerts, alert)
}

// RemoveAlert deletes the first alert equal to the given one and reports
// whether anything was removed.
func (d *Document) RemoveAlert(alert Alert) bool {
	for i, a := range d.Alerts {
		if a.Equal(alert) {
			d.Alerts = append(d.Alerts[:i], d.Alerts[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAlerts deletes every alert of the user for the given item and source,
// returning the number removed.
func (d *Document) RemoveAlerts(user int64, item string, source Source) int {
	before := len(d.Alerts)
	d.Alerts = lo.Reject(d.Alerts, func(a Alert, _ int) bool {
		return a.User == user && a.Item == item && a.Source == source
	})
	return before - len(d.Alerts)
}

func (d *Document) AlertsForUser(user int64) []Alert {
	return lo.Filter(d.Alerts, func(a Alert, _ int) bool {
		return a.User == user
	})
}

func (d *Document) AddSubscription(sub DailySubscription) {
	d.Daily = append(d.Daily, sub)
}

func (d *Document) HasSubscription(user int64, item string, source Source) bool {
	return lo.ContainsBy(d.Daily, func(s DailySubscription) bool {
		return s.User == user && s.Item == item && s.Source == source
	})
}

// RemoveSubscriptions deletes every subscription of the user for the given
// item, regardless of source, returning the number removed.
func (d *Document) RemoveSubscriptions(user int64, item string) int {
	before := len(d.Daily)
	d.Daily = lo.Reject(d.Daily, func(s DailySubscription, _ int) bool {
		return s.User == user && s.Item == item
	})
	return before - len(d.Daily)
}

func (d *Document) SubscriptionsForUser(user int64) []DailySubscription {
	return lo.Filter(d.Daily, func(s DailySubscription, _ int) bool {
		return s.User == user
	})
}

// StateStore serializes all access to the document. Update covers
// load, mutate and save under one lock so the alert loop, the digest loop
// and the command surface cannot lose each other's writes.
type StateStore interface {
	View(ctx context.Context, fn func(doc Document) error) error
	Update(ctx context.Context, fn func(doc *Document) error) error
}
