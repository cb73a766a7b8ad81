package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultWeatherBaseURL = "https://api.open-meteo.com"

// Weather is the decorative dashboard reading. OK is false when the fetch
// degraded to a placeholder.
type Weather struct {
	TemperatureC float64
	Condition    string
	OK           bool
}

type WeatherClient struct {
	baseURL   string
	latitude  string
	longitude string
	client    *http.Client
}

func NewWeatherClient(latitude, longitude string, client *http.Client) *WeatherClient {
	return &WeatherClient{
		baseURL:   defaultWeatherBaseURL,
		latitude:  latitude,
		longitude: longitude,
		client:    client,
	}
}

// WithBaseURL overrides the endpoint, for tests.
func (c *WeatherClient) WithBaseURL(base string) *WeatherClient {
	c.baseURL = base
	return c
}

type weatherResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

func (c *WeatherClient) Current(ctx context.Context) (Weather, error) {
	q := url.Values{}
	q.Set("latitude", c.latitude)
	q.Set("longitude", c.longitude)
	q.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return Weather{}, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("weather endpoint returned %d", resp.StatusCode)
	}

	var parsed weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Weather{}, fmt.Errorf("decode weather response: %w", err)
	}
	return Weather{
		TemperatureC: parsed.CurrentWeather.Temperature,
		Condition:    conditionLabel(parsed.CurrentWeather.WeatherCode),
		OK:           true,
	}, nil
}

// conditionLabel maps WMO weather codes to a short label.
func conditionLabel(code int) string {
	switch {
	case code == 0:
		return "晴れ"
	case code <= 3:
		return "くもり"
	case code <= 48:
		return "霧"
	case code <= 67:
		return "雨"
	case code <= 77:
		return "雪"
	case code <= 82:
		return "にわか雨"
	case code <= 86:
		return "にわか雪"
	default:
		return "雷雨"
	}
}
