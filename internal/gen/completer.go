// Package gen holds the client for the structured generation service. It
// is the single collaborator whose output drives itinerary composition:
// given a prompt and a schema it returns either a conformant document or a
// typed failure, never silently malformed output.
package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

const ChatURL = "https://api.openai.com/v1/chat/completions"

// Completer queries an openai compatible chat completions endpoint, one
// request per call, no streaming.
type Completer struct {
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"max_tokens"`
	URL         string   `json:"url"`
	client      *http.Client
	limiter     RateLimiter
	apiKey      string
	debug       bool
}

var Default = Completer{
	Model: "gpt-4o-mini",
	URL:   ChatURL,
}

// Setup reads the API key from apiKeyEnv and prepares the http client.
func (c *Completer) Setup(apiKeyEnv, debugEnv string) error {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("environment variable '%v' not set", apiKeyEnv)
	}
	if c.URL == "" {
		c.URL = ChatURL
	}
	c.apiKey = apiKey
	c.client = &http.Client{}
	c.limiter = NewRateLimiter("x-ratelimit-remaining-tokens", "x-ratelimit-reset-tokens")
	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv(debugEnv)) {
		c.debug = true
	}
	return nil
}

// Complete sends one system + user message pair and returns the assistant
// reply verbatim.
func (c *Completer) Complete(ctx context.Context, system, user string) (string, error) {
	reqData := request{
		Model:          c.Model,
		Temperature:    c.Temperature,
		MaxTokens:      c.MaxTokens,
		ResponseFormat: responseFormat{Type: "text"},
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("completion request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", c.apiKey))

	c.limiter.WaitIfNeeded(ctx)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()
	if err := c.limiter.UpdateFromHeaders(resp.Header); err != nil && c.debug {
		ancli.PrintWarn(fmt.Sprintf("failed to update rate limits: %v\n", err))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("response status: %v, response body: %v", resp.Status, string(body))
	}

	var completion chatCompletion
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode JSON: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return completion.Choices[0].Message.Content, nil
}
