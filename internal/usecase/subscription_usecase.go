package usecase

import (
	"context"
	"strings"

	"github.com/skinsentry/skinsentry/internal/domain"
)

// SubscriptionUsecase manages daily digest subscriptions.
type SubscriptionUsecase struct {
	store domain.StateStore
}

func NewSubscriptionUsecase(store domain.StateStore) *SubscriptionUsecase {
	return &SubscriptionUsecase{store: store}
}

// SetDaily turns the digest for an item on or off. Turning it on is
// idempotent: an existing subscription for the same item and source keeps its
// last-sent date. Turning it off removes every subscription of the user for
// the item, regardless of source.
func (u *SubscriptionUsecase) SetDaily(ctx context.Context, user, destination int64, item, source, mode string) (bool, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return false, ErrInvalidItem
	}
	parsedSource, ok := domain.ParseSource(source)
	if !ok {
		return false, ErrInvalidSource
	}

	var enabled bool
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return false, ErrInvalidMode
	}

	err := u.store.Update(ctx, func(doc *domain.Document) error {
		if !enabled {
			doc.RemoveSubscriptions(user, item)
			return nil
		}
		if doc.HasSubscription(user, item, parsedSource) {
			return nil
		}
		doc.AddSubscription(domain.DailySubscription{
			User:        user,
			Destination: destination,
			Item:        item,
			Source:      parsedSource,
		})
		return nil
	})
	return enabled, err
}

func (u *SubscriptionUsecase) List(ctx context.Context, user int64) ([]domain.DailySubscription, error) {
	var subs []domain.DailySubscription
	err := u.store.View(ctx, func(doc domain.Document) error {
		subs = doc.SubscriptionsForUser(user)
		return nil
	})
	return subs, err
}
