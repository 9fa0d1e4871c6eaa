package logo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	searchBaseURL = "https://search.logo.dev"
	imageBaseURL  = "https://img.logo.dev"

	// maxImageSize caps logo downloads; anything bigger is not a logo.
	maxImageSize = 10 << 20
)

// Client talks to the logo origin: brand-name search and logo image
// fetches. Every call carries a bounded timeout so a stuck fetch cannot
// stall an art backfill.
type Client struct {
	http      *http.Client
	token     string
	searchURL string
	imageURL  string
}

type Option func(*Client)

func WithBaseURLs(searchURL, imageURL string) Option {
	return func(c *Client) {
		c.searchURL = searchURL
		c.imageURL = imageURL
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		token:     token,
		searchURL: searchBaseURL,
		imageURL:  imageBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search resolves a merchant domain to a display name. An empty result
// set is not an error; the caller falls back to the bare domain.
func (c *Client) Search(ctx context.Context, domain string) (string, error) {
	u := fmt.Sprintf("%s/?query=%s", c.searchURL, url.QueryEscape(domain))
	body, err := c.get(ctx, u)
	if err != nil {
		return "", err
	}

	var matches []struct {
		Name   string `json:"name"`
		Domain string `json:"domain"`
	}
	if err := json.Unmarshal(body, &matches); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0].Name, nil
}

// ImageURL builds the fetchable logo URL for a domain.
func (c *Client) ImageURL(domain string) string {
	return fmt.Sprintf("%s/%s?token=%s&size=100&format=jpg", c.imageURL, domain, c.token)
}

// FetchImage retrieves raw image bytes from any URL, typically a card's
// logo, for color extraction.
func (c *Client) FetchImage(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	return c.get(ctx, u.String())
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// FallbackName derives a display name from a domain when search returns
// nothing: everything before the top-level domain.
func FallbackName(domain string) string {
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return domain
	}
	return strings.Join(parts[:len(parts)-1], ".")
}
