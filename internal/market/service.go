package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// ServiceSource fetches weekly OHLC data from the analysis service's HTTP
// API. Every call issues exactly one request; responses are never cached.
type ServiceSource struct {
	baseURL string
	client  *http.Client
}

// NewServiceSource creates a source talking to the service at baseURL.
func NewServiceSource(baseURL string, timeout time.Duration) *ServiceSource {
	return &ServiceSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *ServiceSource) Name() string {
	return "service"
}

// WeeklyOHLC issues a GET to <baseURL>/api/ohlc/<SYMBOL> and decodes the
// response envelope. A missing or empty weekly_ohlc list yields an empty
// slice with no error.
func (s *ServiceSource) WeeklyOHLC(ctx context.Context, symbol string) ([]models.WeeklyOHLC, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	url := fmt.Sprintf("%s/api/ohlc/%s", s.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request [%s]: %w", symbol, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed [%s]: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyText := "HTTP error"
		if bodyBytes, readErr := io.ReadAll(resp.Body); readErr == nil && len(bodyBytes) > 0 {
			bodyText = strings.TrimSpace(string(bodyBytes))
		}
		return nil, fmt.Errorf("API error [%s]: %s - %s", symbol, resp.Status, bodyText)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response [%s]: %w", symbol, err)
	}

	var envelope models.OHLCResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("JSON parse error [%s]: %w", symbol, err)
	}

	return envelope.WeeklyOHLC, nil
}
