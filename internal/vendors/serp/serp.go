// Package serp queries SerpAPI's google_flights and google_hotels engines.
package serp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

const SearchURL = "https://serpapi.com/search"

type Client struct {
	URL      string `json:"url"`
	Currency string `json:"currency"`
	Language string `json:"language"`

	apiKey string
	client *http.Client
	debug  bool
}

var Default = Client{
	URL:      SearchURL,
	Currency: "USD",
	Language: "en",
}

// Setup reads the api key from the environment and prepares the http client.
func (c *Client) Setup() error {
	apiKey := os.Getenv("SERPAPI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("environment variable 'SERPAPI_API_KEY' not set")
	}
	c.apiKey = apiKey
	c.client = &http.Client{Timeout: 30 * time.Second}
	if misc.Truthy(os.Getenv("DEBUG")) {
		c.debug = true
	}
	return nil
}

// get performs a search against engine with params, decoding the reply into out.
func (c *Client) get(ctx context.Context, engine string, params url.Values, out any) error {
	params.Set("engine", engine)
	params.Set("hl", c.Language)
	params.Set("currency", c.Currency)
	params.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("non-OK status: %v, body: %v", resp.Status, string(body))
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("serp %v response: %v\n", engine, string(body)))
	}
	if err := decode(body, out); err != nil {
		return fmt.Errorf("failed to decode %v response: %w", engine, err)
	}
	return nil
}
