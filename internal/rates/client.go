package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

const DefaultURL = "https://pydolarve.org/api/v2/dollar?page=alcambio&format_date=default&rounded_price=true"

// Client reads the BCV and parallel-market monitors from pydolarve.
type Client struct {
	url    string
	client *http.Client
	log    zerolog.Logger
	now    func() time.Time
}

func NewClient(url string, timeout time.Duration, log zerolog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log.With().Str("client", "pydolarve").Logger(),
		now:    time.Now,
	}
}

type monitor struct {
	Price      decimal.Decimal `json:"price"`
	LastUpdate string          `json:"last_update"`
}

type dollarResponse struct {
	Datetime struct {
		Date string `json:"date"`
		Time string `json:"time"`
	} `json:"datetime"`
	Monitors map[string]*monitor `json:"monitors"`
}

// Fetch returns the current snapshot. Every failure is a *FetchError.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Snapshot{}, &FetchError{Err: err}
	}

	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", c.url).Msg("fetching rates")

	resp, err := c.client.Do(req)
	if err != nil {
		return Snapshot{}, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, &FetchError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body dollarResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Snapshot{}, &FetchError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	bcv, parallel := body.Monitors["bcv"], body.Monitors["enparalelovzla"]
	if bcv == nil || parallel == nil {
		return Snapshot{}, &FetchError{Err: fmt.Errorf("monitors missing from response")}
	}

	snap := Snapshot{
		BCV:      Quote{Type: money.RateBCV, Price: bcv.Price, LastUpdate: bcv.LastUpdate},
		Parallel: Quote{Type: money.RateParallel, Price: parallel.Price, LastUpdate: parallel.LastUpdate},
		Average: Quote{
			Type:       money.RateAverage,
			Price:      Average(bcv.Price, parallel.Price),
			LastUpdate: body.Datetime.Date + " " + body.Datetime.Time,
		},
		FetchedAt: c.now().UTC(),
	}

	c.log.Info().
		Str("bcv", snap.BCV.Price.String()).
		Str("paralelo", snap.Parallel.Price.String()).
		Msg("fetched rates")

	return snap, nil
}
