// Package gmaps wraps the Google Maps geocoding, nearby search and
// distance matrix web services.
package gmaps

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

const MapsURL = "https://maps.googleapis.com/maps/api"

type Client struct {
	URL string `json:"url"`

	apiKey string
	client *http.Client
	debug  bool
}

var Default = Client{
	URL: MapsURL,
}

func (c *Client) Setup() error {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("environment variable 'GOOGLE_API_KEY' not set")
	}
	c.apiKey = apiKey
	c.client = &http.Client{Timeout: 20 * time.Second}
	if misc.Truthy(os.Getenv("DEBUG")) {
		c.debug = true
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+path+"?"+params.Encode(), nil)
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
		ancli.PrintOK(fmt.Sprintf("gmaps %v response: %v\n", path, string(body)))
	}
	if err := decode(body, out); err != nil {
		return fmt.Errorf("failed to decode %v response: %w", path, err)
	}
	return nil
}
