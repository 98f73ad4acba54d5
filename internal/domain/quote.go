package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Quote is an ephemeral market snapshot for one item from one source.
// It is recomputed on every evaluation and never persisted.
type Quote struct {
	Available       bool
	Price           decimal.Decimal
	SupportingCount int
}

// Target is the price condition a quote is tested against. An unbounded
// target matches every price; the digest loop uses it to obtain a reference
// quote unconditionally.
type Target struct {
	Price     decimal.Decimal
	Direction Direction
	Unbounded bool
}

func NewTarget(price decimal.Decimal, direction Direction) Target {
	return Target{Price: price, Direction: direction}
}

// AnyPrice returns the unbounded target used for daily digests.
func AnyPrice() Target {
	return Target{Direction: DirectionBelow, Unbounded: true}
}

func (t Target) Matches(price decimal.Decimal) bool {
	if t.Unbounded {
		return true
	}
	if t.Direction == DirectionAbove {
		return price.GreaterThanOrEqual(t.Price)
	}
	return price.LessThanOrEqual(t.Price)
}

// Evaluate decides whether a quote triggers. minSupportingCount is a single
// process-wide threshold gating both sources, even though it counts different
// things per source: trade volume on Steam, matching listings on CSFloat.
func Evaluate(quote Quote, target Target, minSupportingCount int) bool {
	if !quote.Available {
		return false
	}
	return target.Matches(quote.Price) && quote.SupportingCount >= minSupportingCount
}

// PriceSource fetches a normalized quote for an item. Implementations fail
// soft: unusable source data yields Quote{Available: false} and a nil error,
// while a transport failure yields a non-nil error.
type PriceSource interface {
	FetchQuote(ctx context.Context, item string, target Target) (Quote, error)
}
