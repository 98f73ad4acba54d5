package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skinsentry/skinsentry/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 730, 3, 5*time.Second, zap.NewNop())
}

func anyTarget() domain.Target {
	return domain.NewTarget(decimal.NewFromInt(10), domain.DirectionBelow)
}

func TestClient_FetchQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "730", r.URL.Query().Get("appid"))
		assert.Equal(t, "3", r.URL.Query().Get("currency"))
		assert.Equal(t, "AK-47 | Redline (Field-Tested)", r.URL.Query().Get("market_hash_name"))
		fmt.Fprint(w, `{"success": true, "lowest_price": "11,50€", "volume": "1,234"}`)
	})

	quote, err := client.FetchQuote(context.Background(), "AK-47 | Redline (Field-Tested)", anyTarget())
	require.NoError(t, err)
	assert.True(t, quote.Available)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("11.50")), "got %s", quote.Price)
	assert.Equal(t, 1234, quote.SupportingCount)
}

func TestClient_FetchQuoteMissingVolume(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "lowest_price": "0,03€"}`)
	})

	quote, err := client.FetchQuote(context.Background(), "x", anyTarget())
	require.NoError(t, err)
	assert.True(t, quote.Available)
	assert.Equal(t, 0, quote.SupportingCount)
}

func TestClient_FetchQuoteSourceFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false}`)
	})

	quote, err := client.FetchQuote(context.Background(), "x", anyTarget())
	require.NoError(t, err)
	assert.False(t, quote.Available)
}

func TestClient_FetchQuoteMissingPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "volume": "55"}`)
	})

	quote, err := client.FetchQuote(context.Background(), "x", anyTarget())
	require.NoError(t, err)
	assert.False(t, quote.Available)
}

func TestClient_FetchQuoteUnparseablePriceFailsSoft(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "lowest_price": "???", "volume": "55"}`)
	})

	quote, err := client.FetchQuote(context.Background(), "x", anyTarget())
	require.NoError(t, err)
	assert.False(t, quote.Available)
}

func TestClient_FetchQuoteServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchQuote(context.Background(), "x", anyTarget())
	assert.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"11,50€", "11.50"},
		{"0,03€", "0.03"},
		{"$2.5", "25"}, // dot is a thousands separator in the localized format
		{"1.234,56€", "1234.56"},
		{"7,--€", "7"},
	}
	for _, tc := range cases {
		got, err := parsePrice(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "%s -> %s, want %s", tc.raw, got, tc.want)
	}

	_, err := parsePrice("free")
	assert.Error(t, err)
}

func TestParseVolume(t *testing.T) {
	got, err := parseVolume("1,234,567")
	require.NoError(t, err)
	assert.Equal(t, 1234567, got)

	got, err = parseVolume("")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = parseVolume("lots")
	assert.Error(t, err)
}
