package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/scout/internal/research"
)

const (
	DefaultBaseURL = "https://en.wikipedia.org/api/rest_v1"

	// Source is recorded on every profile this client produces.
	Source = "Wikipedia API (Free)"

	defaultSummary = "No valid summary available"
	userAgent      = "scout/1.0 (account research)"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type summaryResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Extract     string `json:"extract"`
}

// Lookup fetches the page summary for entity. A disambiguation page is retried
// once as "<entity> (company)".
func (c *Client) Lookup(ctx context.Context, entity string) (research.EntityProfile, error) {
	page, err := c.summary(ctx, entity)
	if err != nil {
		return research.EntityProfile{}, err
	}
	if page.Type == "disambiguation" {
		page, err = c.summary(ctx, entity+" (company)")
		if err != nil {
			return research.EntityProfile{}, err
		}
	}

	p := research.EntityProfile{
		Name:        page.Title,
		Summary:     page.Extract,
		Description: page.Description,
		Source:      Source,
	}
	if p.Name == "" {
		p.Name = entity
	}
	if p.Summary == "" {
		p.Summary = defaultSummary
	}
	if p.Description == "" {
		p.Description = research.DefaultDescription
	}
	return p, nil
}

func (c *Client) summary(ctx context.Context, title string) (*summaryResponse, error) {
	endpoint := c.baseURL + "/page/summary/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia error %d: %s", resp.StatusCode, string(body))
	}

	var page summaryResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	return &page, nil
}
