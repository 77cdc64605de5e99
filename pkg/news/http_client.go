package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://gnews.io"
	defaultPageSize = 10
)

// HTTPConfig configures the GNews client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads top headlines from the GNews REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client. An empty base url targets the public API.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}
}

// TopHeadlines implements Source.
func (c *HTTPClient) TopHeadlines(ctx context.Context, category string) (Feed, error) {
	if c.apiKey == "" {
		return Feed{}, ErrNoAPIKey
	}
	category = normalizeCategory(category)
	query := url.Values{}
	query.Set("category", category)
	query.Set("lang", "en")
	query.Set("max", fmt.Sprint(defaultPageSize))
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v4/top-headlines?"+query.Encode(), nil)
	if err != nil {
		return Feed{}, fmt.Errorf("news: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Feed{}, fmt.Errorf("news: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return Feed{}, fmt.Errorf("news: remote error %d: %s", resp.StatusCode, buf.String())
	}
	var payload headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Feed{}, fmt.Errorf("news: decode response: %w", err)
	}
	return payload.toFeed(category), nil
}

type headlinesResponse struct {
	Articles []struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		Image       string    `json:"image"`
		PublishedAt time.Time `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (r headlinesResponse) toFeed(category string) Feed {
	articles := make([]Article, 0, len(r.Articles))
	for _, a := range r.Articles {
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			Category:    category,
			Image:       a.Image,
		})
	}
	return Feed{Category: category, Articles: articles}
}
