package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"news-assistant/internal/fault"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherClient fetches current conditions from OpenWeatherMap.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewOpenWeatherClient builds a client. An empty apiKey is allowed; calls
// will return a ConfigurationError until one is provided.
func NewOpenWeatherClient(apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt      int64  `json:"dt"`
	Message string `json:"message"`
}

func (c *OpenWeatherClient) Current(ctx context.Context, city string, units Units) (Reading, error) {
	if c.apiKey == "" {
		return Reading{}, &fault.ConfigurationError{Feature: "weather lookup (OPENWEATHER_API_KEY)"}
	}
	if units != UnitsMetric && units != UnitsImperial {
		units = UnitsMetric
	}

	params := url.Values{}
	params.Set("q", strings.TrimSpace(city))
	params.Set("appid", c.apiKey)
	params.Set("units", string(units))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return Reading{}, &fault.ProviderError{Provider: "OpenWeatherMap", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Reading{}, &fault.ProviderError{Provider: "OpenWeatherMap", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reading{}, &fault.ProviderError{Provider: "OpenWeatherMap", Err: err}
	}
	return parseReading(body, resp.StatusCode, city, units)
}

func parseReading(body []byte, statusCode int, city string, units Units) (Reading, error) {
	var decoded currentResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Reading{}, &fault.ProviderError{Provider: "OpenWeatherMap", Err: err}
	}

	switch {
	case statusCode == http.StatusNotFound:
		return Reading{}, &fault.NotFoundError{What: fmt.Sprintf("a city named %q", city)}
	case statusCode != http.StatusOK:
		msg := decoded.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", statusCode)
		}
		return Reading{}, &fault.ProviderError{Provider: "OpenWeatherMap", Err: fmt.Errorf("%s", msg)}
	}

	conditions := ""
	if len(decoded.Weather) > 0 {
		conditions = cases.Title(language.English).String(decoded.Weather[0].Description)
	}
	return Reading{
		City:        decoded.Name,
		Temperature: decoded.Main.Temp,
		FeelsLike:   decoded.Main.FeelsLike,
		Humidity:    decoded.Main.Humidity,
		Conditions:  conditions,
		WindSpeed:   decoded.Wind.Speed,
		Units:       units,
		ObservedAt:  time.Unix(decoded.Dt, 0),
	}, nil
}
