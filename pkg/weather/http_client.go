package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org"

// HTTPConfig configures the OpenWeather client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads current conditions from the OpenWeather REST API.
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

// Current implements Source.
func (c *HTTPClient) Current(ctx context.Context, city string) (Report, error) {
	if c.apiKey == "" {
		return Report{}, ErrNoAPIKey
	}
	if strings.TrimSpace(city) == "" {
		city = DefaultCity
	}
	query := url.Values{}
	query.Set("q", city)
	query.Set("units", "metric")
	query.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/weather?"+query.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("weather: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("weather: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return Report{}, fmt.Errorf("weather: remote error %d: %s", resp.StatusCode, buf.String())
	}
	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Report{}, fmt.Errorf("weather: decode response: %w", err)
	}
	return payload.toReport()
}

type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
}

func (r currentResponse) toReport() (Report, error) {
	if len(r.Weather) == 0 {
		return Report{}, fmt.Errorf("weather: response has no conditions")
	}
	return Report{
		Temperature: int(math.Round(r.Main.Temp)),
		Condition:   r.Weather[0].Main,
		Location:    r.Name,
		Icon:        Icon(r.Weather[0].Icon),
	}, nil
}
