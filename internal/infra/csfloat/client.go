package csfloat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/skinsentry/skinsentry/internal/domain"
)

const listingLimit = 50

// Client fetches listings from the CSFloat market API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type listingsResponse struct {
	Data []listing `json:"data"`
}

type listing struct {
	// Price in minor units (cents).
	Price int64 `json:"price"`
}

// FetchQuote requests up to 50 listings sorted ascending by price. The
// supporting count is the number of listings matching the target; the
// reported price is the cheapest listing of the whole set regardless of
// direction. The reference price is the market floor, not the floor of the
// matching subset.
func (c *Client) FetchQuote(ctx context.Context, item string, target domain.Target) (domain.Quote, error) {
	params := url.Values{}
	params.Set("market_hash_name", item)
	params.Set("limit", fmt.Sprint(listingLimit))
	params.Set("sort_by", "price")
	params.Set("order", "asc")
	endpoint := fmt.Sprintf("%s/api/v1/listings?%s", c.baseURL, params.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Quote{}, err
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Error("csfloat request failed", zap.String("item", item), zap.Error(err))
		return domain.Quote{}, err
	}
	defer response.Body.Close()

	c.logger.Debug(
		"csfloat request complete",
		zap.String("item", item),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return domain.Quote{}, fmt.Errorf("csfloat error: status %d", response.StatusCode)
	}

	var payload listingsResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return domain.Quote{}, err
	}

	if len(payload.Data) == 0 {
		return domain.Quote{}, nil
	}

	matching := 0
	for _, l := range payload.Data {
		if countsToward(target, minorUnits(l.Price)) {
			matching++
		}
	}

	return domain.Quote{
		Available:       true,
		Price:           minorUnits(payload.Data[0].Price),
		SupportingCount: matching,
	}, nil
}

// countsToward decides whether a listing supports the watch. A listing
// priced exactly at the target counts for below watches but not above ones.
func countsToward(target domain.Target, price decimal.Decimal) bool {
	if target.Unbounded {
		return true
	}
	if target.Direction == domain.DirectionAbove {
		return price.GreaterThan(target.Price)
	}
	return price.LessThanOrEqual(target.Price)
}

func minorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
