// Package dolarapi fetches Venezuelan reference rates from the public
// DolarAPI service (https://ve.dolarapi.com).
package dolarapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/konvierte/konvierte/pkg/domain"
	"github.com/konvierte/konvierte/pkg/provider/ratesource"
)

const DefaultBaseURL = "https://ve.dolarapi.com/v1"

// endpoint maps each system rate id to its DolarAPI path.
var endpoints = map[string]string{
	"bcv_usd":     "/dolares/oficial",
	"bcv_eur":     "/euros/oficial",
	"binance_usd": "/dolares/paralelo",
}

// Client is the DolarAPI ratesource.Source implementation.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// quoteResponse covers the upstream payload variants: the average price may
// arrive as "promedio", "price" or "valor" depending on the endpoint.
type quoteResponse struct {
	Promedio           float64 `json:"promedio"`
	Price              float64 `json:"price"`
	Valor              float64 `json:"valor"`
	FechaActualizacion string  `json:"fechaActualizacion"`
}

func (q quoteResponse) price() float64 {
	switch {
	case q.Promedio > 0:
		return q.Promedio
	case q.Price > 0:
		return q.Price
	default:
		return q.Valor
	}
}

func (q quoteResponse) lastUpdate() time.Time {
	if ts, err := time.Parse(time.RFC3339, q.FechaActualizacion); err == nil {
		return ts
	}
	return time.Now().UTC()
}

// FetchRates fetches all three reference quotes. It fails as a whole if any
// endpoint fails; the caller keeps its last-known prices in that case.
func (c *Client) FetchRates(ctx context.Context) (map[string]domain.Quote, error) {
	quotes := make(map[string]domain.Quote, len(endpoints))
	for _, def := range domain.SystemRates {
		path, ok := endpoints[def.ID]
		if !ok {
			continue
		}
		resp, err := c.fetch(ctx, path)
		if err != nil {
			c.logger.Warn("dolarapi fetch failed", "rate", def.ID, "path", path, "error", err)
			return nil, fmt.Errorf("fetch %s: %w", def.ID, err)
		}
		quotes[def.ID] = domain.Quote{
			Price:      resp.price(),
			Symbol:     def.Symbol,
			LastUpdate: resp.lastUpdate(),
		}
	}
	c.logger.Debug("dolarapi fetch complete", "quotes", len(quotes))
	return quotes, nil
}

func (c *Client) fetch(ctx context.Context, path string) (*quoteResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var quote quoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Client) CheckHealth(ctx context.Context) error {
	_, err := c.fetch(ctx, endpoints[domain.BaselineRateID])
	return err
}

func (c *Client) Metadata() ratesource.Metadata {
	return ratesource.Metadata{Name: "dolarapi", Version: "v1"}
}

var _ ratesource.Source = (*Client)(nil)
