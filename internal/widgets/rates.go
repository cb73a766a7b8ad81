package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultRatesBaseURL = "https://open.er-api.com"

// Rates carries a few display-only exchange rates against the base
// currency. Display only: no money arithmetic happens on these floats.
type Rates struct {
	Base string
	USD  float64
	EUR  float64
	OK   bool
}

type RatesClient struct {
	baseURL string
	base    string
	client  *http.Client
}

func NewRatesClient(baseCurrency string, client *http.Client) *RatesClient {
	return &RatesClient{
		baseURL: defaultRatesBaseURL,
		base:    baseCurrency,
		client:  client,
	}
}

// WithBaseURL overrides the endpoint, for tests.
func (c *RatesClient) WithBaseURL(base string) *RatesClient {
	c.baseURL = base
	return c
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func (c *RatesClient) Latest(ctx context.Context) (Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v6/latest/"+c.base, nil)
	if err != nil {
		return Rates{}, fmt.Errorf("build rates request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Rates{}, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Rates{}, fmt.Errorf("rates endpoint returned %d", resp.StatusCode)
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Rates{}, fmt.Errorf("decode rates response: %w", err)
	}
	if parsed.Result != "success" {
		return Rates{}, fmt.Errorf("rates endpoint result %q", parsed.Result)
	}
	return Rates{
		Base: c.base,
		USD:  parsed.Rates["USD"],
		EUR:  parsed.Rates["EUR"],
		OK:   true,
	}, nil
}
