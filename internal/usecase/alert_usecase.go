package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/skinsentry/skinsentry/internal/domain"
)

var (
	ErrInvalidItem      = errors.New("invalid item")
	ErrInvalidSource    = errors.New("invalid source")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidMode      = errors.New("invalid mode")
)

// AlertUsecase exposes the one-shot alert operations invoked by the command
// surface. All enum validation happens here; the watch engine never sees an
// unrecognized source or direction.
type AlertUsecase struct {
	store domain.StateStore
}

func NewAlertUsecase(store domain.StateStore) *AlertUsecase {
	return &AlertUsecase{store: store}
}

func (u *AlertUsecase) Track(ctx context.Context, user, destination int64, item, source, direction, price string) (domain.Alert, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return domain.Alert{}, ErrInvalidItem
	}

	parsedSource, ok := domain.ParseSource(source)
	if !ok {
		return domain.Alert{}, ErrInvalidSource
	}
	parsedDirection, ok := domain.ParseDirection(direction)
	if !ok {
		return domain.Alert{}, ErrInvalidDirection
	}
	targetPrice, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil || !targetPrice.IsPositive() {
		return domain.Alert{}, ErrInvalidPrice
	}

	alert := domain.Alert{
		User:        user,
		Destination: destination,
		Item:        item,
		Source:      parsedSource,
		Direction:   parsedDirection,
		TargetPrice: targetPrice,
	}

	err = u.store.Update(ctx, func(doc *domain.Document) error {
		doc.AddAlert(alert)
		return nil
	})
	if err != nil {
		return domain.Alert{}, err
	}
	return alert, nil
}

// Untrack removes every alert of the user for the given item and source and
// returns how many were removed.
func (u *AlertUsecase) Untrack(ctx context.Context, user int64, item, source string) (int, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return 0, ErrInvalidItem
	}
	parsedSource, ok := domain.ParseSource(source)
	if !ok {
		return 0, ErrInvalidSource
	}

	removed := 0
	err := u.store.Update(ctx, func(doc *domain.Document) error {
		removed = doc.RemoveAlerts(user, item, parsedSource)
		return nil
	})
	return removed, err
}

func (u *AlertUsecase) List(ctx context.Context, user int64) ([]domain.Alert, error) {
	var alerts []domain.Alert
	err := u.store.View(ctx, func(doc domain.Document) error {
		alerts = doc.AlertsForUser(user)
		return nil
	})
	return alerts, err
}
