// Package wiki fetches destination background from the MediaWiki action API.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/htmltext"
)

const (
	APIURL    = "https://en.wikipedia.org/w/api.php"
	userAgent = "voyago/0.1"
)

type Client struct {
	URL string `json:"url"`

	client *http.Client
}

var Default = Client{
	URL: APIURL,
}

func (c *Client) Setup() error {
	c.client = &http.Client{Timeout: 20 * time.Second}
	return nil
}

type parseResponse struct {
	Parse *struct {
		Sections []section `json:"sections"`
		Text     *struct {
			HTML string `json:"*"`
		} `json:"text"`
	} `json:"parse"`
}

type section struct {
	Line  string `json:"line"`
	Index string `json:"index"`
}

func (c *Client) parse(ctx context.Context, page string, extra url.Values) (parseResponse, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", page)
	params.Set("format", "json")
	for key := range extra {
		params.Set(key, extra.Get(key))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"?"+params.Encode(), nil)
	if err != nil {
		return parseResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return parseResponse{}, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return parseResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return parseResponse{}, fmt.Errorf("non-OK status: %v, body: %v", resp.Status, string(body))
	}
	var parsed parseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return parseResponse{}, fmt.Errorf("failed to decode parse response: %w", err)
	}
	return parsed, nil
}

// listSections lists the section headings of page.
func (c *Client) listSections(ctx context.Context, page string) ([]section, error) {
	extra := url.Values{}
	extra.Set("prop", "sections")
	parsed, err := c.parse(ctx, page, extra)
	if err != nil {
		return nil, err
	}
	if parsed.Parse == nil {
		ancli.Noticef("no sections found for: '%v'\n", page)
		return nil, nil
	}
	return parsed.Parse.Sections, nil
}

func (c *Client) sectionText(ctx context.Context, page, index string) (string, error) {
	extra := url.Values{}
	extra.Set("prop", "text")
	extra.Set("section", index)
	parsed, err := c.parse(ctx, page, extra)
	if err != nil {
		return "", err
	}
	if parsed.Parse == nil || parsed.Parse.Text == nil {
		return "", fmt.Errorf("no text in parse reply for section: %v", index)
	}
	return htmltext.Text(strings.NewReader(parsed.Parse.Text.HTML))
}

// Background fetches the lead summary plus the wanted sections of the page
// for topic, with markup stripped. Sections which the page lacks are
// logged and skipped.
func (c *Client) Background(ctx context.Context, topic string, wanted []string) (map[string]string, error) {
	background := map[string]string{}
	summary, err := c.sectionText(ctx, topic, "0")
	if err != nil {
		ancli.Noticef("no summary available for: '%v': %v\n", topic, err)
	} else {
		background["Summary"] = summary
	}
	sections, err := c.listSections(ctx, topic)
	if err != nil {
		return background, fmt.Errorf("failed to list sections for: '%v': %w", topic, err)
	}
	for _, title := range wanted {
		index := ""
		for _, s := range sections {
			if strings.EqualFold(s.Line, title) {
				index = s.Index
				break
			}
		}
		if index == "" {
			ancli.Noticef("section '%v' not found for: '%v'\n", title, topic)
			continue
		}
		text, err := c.sectionText(ctx, topic, index)
		if err != nil {
			ancli.Noticef("failed to fetch section '%v' for: '%v': %v\n", title, topic, err)
			continue
		}
		background[title] = text
	}
	return background, nil
}
