package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/skinsentry/skinsentry/internal/domain"
)

// Client fetches aggregate prices from the Steam Community Market
// priceoverview endpoint.
type Client struct {
	baseURL  string
	appID    int
	currency int
	client   *http.Client
	logger   *zap.Logger
}

func NewClient(baseURL string, appID, currency int, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		appID:    appID,
		currency: currency,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type priceOverviewResponse struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	Volume      string `json:"volume"`
}

// FetchQuote returns the lowest aggregate price and the trade volume as
// supporting count. The target is not consulted here; the evaluator applies
// it. Unusable source data comes back as an unavailable quote, not an error.
func (c *Client) FetchQuote(ctx context.Context, item string, target domain.Target) (domain.Quote, error) {
	params := url.Values{}
	params.Set("appid", strconv.Itoa(c.appID))
	params.Set("currency", strconv.Itoa(c.currency))
	params.Set("market_hash_name", item)
	endpoint := fmt.Sprintf("%s/market/priceoverview/?%s", c.baseURL, params.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Quote{}, err
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Error("steam request failed", zap.String("item", item), zap.Error(err))
		return domain.Quote{}, err
	}
	defer response.Body.Close()

	c.logger.Debug(
		"steam request complete",
		zap.String("item", item),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return domain.Quote{}, fmt.Errorf("steam error: status %d", response.StatusCode)
	}

	var payload priceOverviewResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return domain.Quote{}, err
	}

	if !payload.Success || payload.LowestPrice == "" {
		return domain.Quote{}, nil
	}

	price, err := parsePrice(payload.LowestPrice)
	if err != nil {
		c.logger.Warn("steam price unparseable", zap.String("item", item), zap.String("raw", payload.LowestPrice))
		return domain.Quote{}, nil
	}
	volume, err := parseVolume(payload.Volume)
	if err != nil {
		c.logger.Warn("steam volume unparseable", zap.String("item", item), zap.String("raw", payload.Volume))
		return domain.Quote{}, nil
	}

	return domain.Quote{Available: true, Price: price, SupportingCount: volume}, nil
}

// parsePrice handles localized price text like "11,50€" or "1.234,56€":
// currency symbols stripped, dot as thousands separator, comma as decimal
// separator.
func parsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == ',' || r == '.' {
			return r
		}
		return -1
	}, raw)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	// Whole-unit prices come through as "7,--€".
	cleaned = strings.TrimSuffix(cleaned, ".")
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("no digits in price %q", raw)
	}
	return decimal.NewFromString(cleaned)
}

// parseVolume strips thousands separators; an absent volume field counts as
// zero trades.
func parseVolume(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
}
