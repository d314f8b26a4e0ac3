// Package reddit fetches traveler discussions from reddit's public JSON
// endpoints, no authentication needed.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/voyago/voyago/internal/htmltext"
	"github.com/voyago/voyago/internal/models"
)

const BaseURL = "https://www.reddit.com"

const (
	userAgent          = "voyago/0.1"
	commentsPerPost    = 3
	externalParagraphs = 5
)

type Client struct {
	URL       string `json:"url"`
	Subreddit string `json:"subreddit"`

	client *http.Client
	debug  bool
}

var Default = Client{
	URL:       BaseURL,
	Subreddit: "travel",
}

func (c *Client) Setup() error {
	c.client = &http.Client{Timeout: 20 * time.Second}
	if misc.Truthy(os.Getenv("DEBUG")) {
		c.debug = true
	}
	return nil
}

type listing struct {
	Data struct {
		Children []struct {
			Kind string `json:"kind"`
			Data struct {
				Selftext  string `json:"selftext"`
				Permalink string `json:"permalink"`
				URL       string `json:"url"`
				Body      string `json:"body"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
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
		ancli.PrintOK(fmt.Sprintf("reddit response: %v\n", string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode reddit response: %w", err)
	}
	return nil
}

// Posts searches the configured subreddit for topic and returns up to limit
// posts, each with top comments attached. Posts without own text get the
// first paragraphs of their linked page instead. Failures on a single item
// degrade to an empty field for that item.
func (c *Client) Posts(ctx context.Context, topic string, limit int) ([]models.DiscussionPost, error) {
	params := url.Values{}
	params.Set("q", topic)
	params.Set("sort", "new")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("restrict_sr", "true")
	var searchResult listing
	searchURL := fmt.Sprintf("%v/r/%v/search.json?%v", c.URL, c.Subreddit, params.Encode())
	if err := c.getJSON(ctx, searchURL, &searchResult); err != nil {
		return nil, fmt.Errorf("reddit search failed: %w", err)
	}
	posts := make([]models.DiscussionPost, 0, len(searchResult.Data.Children))
	for _, child := range searchResult.Data.Children {
		post := models.DiscussionPost{
			Content:   child.Data.Selftext,
			Permalink: child.Data.Permalink,
		}
		if post.Content == "" && child.Data.URL != "" {
			post.ExternalContent = c.externalContent(ctx, child.Data.URL)
		}
		post.Comments = c.comments(ctx, post.Permalink, commentsPerPost)
		posts = append(posts, post)
	}
	return posts, nil
}

// comments fetches up to limit top-level comments of the post at permalink.
func (c *Client) comments(ctx context.Context, permalink string, limit int) []string {
	if permalink == "" {
		return nil
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("depth", "1")
	var thread []listing
	threadURL := fmt.Sprintf("%v%v.json?%v", c.URL, permalink, params.Encode())
	if err := c.getJSON(ctx, threadURL, &thread); err != nil {
		ancli.Noticef("failed to fetch comments for: '%v': %v\n", permalink, err)
		return nil
	}
	if len(thread) < 2 {
		return nil
	}
	var comments []string
	for _, child := range thread[1].Data.Children {
		if child.Kind != "t1" || child.Data.Body == "" {
			continue
		}
		comments = append(comments, child.Data.Body)
		if len(comments) == limit {
			break
		}
	}
	return comments
}

// externalContent extracts the leading paragraphs of a linked page.
func (c *Client) externalContent(ctx context.Context, pageURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		ancli.Noticef("failed to fetch linked page: '%v': %v\n", pageURL, err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	text, err := htmltext.Paragraphs(resp.Body, externalParagraphs)
	if err != nil {
		ancli.Noticef("failed to extract text from: '%v': %v\n", pageURL, err)
		return ""
	}
	return text
}
