// Package weather fetches a point-in-time weather snapshot for a coordinate
// pair from the tomorrow.io realtime endpoint. Enrichment is best-effort:
// callers treat any error as "no weather data".
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"atlash/internal/models"
)

const requestTimeout = 5 * time.Second

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

type realtimeResponse struct {
	Data struct {
		Values struct {
			Temperature float64 `json:"temperature"`
			WeatherCode int     `json:"weatherCode"`
		} `json:"values"`
	} `json:"data"`
}

// Current returns the weather at (lat, lon), or an error when the provider is
// unreachable, slow, or answers with anything but 200.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	endpoint := fmt.Sprintf("%s/v4/weather/realtime?location=%s&apikey=%s",
		c.baseURL,
		url.QueryEscape(fmt.Sprintf("%g,%g", lat, lon)),
		url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: provider returned %d", resp.StatusCode)
	}
	var body realtimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	conditions, icon := describeCode(body.Data.Values.WeatherCode)
	return &models.Weather{
		Temperature: body.Data.Values.Temperature,
		Conditions:  conditions,
		Icon:        icon,
	}, nil
}

// describeCode maps tomorrow.io weather codes to a label and an icon glyph.
func describeCode(code int) (string, string) {
	switch code {
	case 1000:
		return "Clear", "☀️"
	case 1100:
		return "Mostly Clear", "🌤️"
	case 1101:
		return "Partly Cloudy", "⛅"
	case 1102:
		return "Mostly Cloudy", "🌥️"
	case 1001:
		return "Cloudy", "☁️"
	case 2000, 2100:
		return "Fog", "🌫️"
	case 4000:
		return "Drizzle", "🌦️"
	case 4200:
		return "Light Rain", "🌦️"
	case 4001, 4201:
		return "Rain", "🌧️"
	case 5000, 5001, 5100, 5101:
		return "Snow", "🌨️"
	case 6000, 6001, 6200, 6201:
		return "Freezing Rain", "🌧️"
	case 7000, 7101, 7102:
		return "Ice Pellets", "🌨️"
	case 8000:
		return "Thunderstorm", "⛈️"
	default:
		return "Unknown", "🌡️"
	}
}
