package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/i474232898/city-explorer-api/internal/common"
	"github.com/i474232898/city-explorer-api/internal/resource"
	"github.com/sony/gobreaker"
)

// DarkSkyWeather implements resource.ListingSource[resource.WeatherDay]
// against the Dark Sky forecast API.
type DarkSkyWeather struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewDarkSkyWeather(client *http.Client, apiKey string) *DarkSkyWeather {
	return &DarkSkyWeather{
		name:    "darksky",
		apiKey:  apiKey,
		baseURL: "https://api.darksky.net/forecast",
		client:  client,
		circuit: newBreaker("darksky"),
	}
}

func (d *DarkSkyWeather) Name() string {
	return d.name
}

type darkskyDay struct {
	Summary string `json:"summary"`
	Time    int64  `json:"time"`
}

func (d *DarkSkyWeather) Fetch(ctx context.Context, loc resource.Location) ([]resource.WeatherDay, error) {
	if d.apiKey == "" {
		return nil, fmt.Errorf("darksky: %w", errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s/%f,%f", d.baseURL, d.apiKey, loc.Latitude, loc.Longitude)
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, d.client, d.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			Data []darkskyDay `json:"data"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	days := make([]resource.WeatherDay, 0, len(payload.Daily.Data))
	for _, item := range payload.Daily.Data {
		days = append(days, normalizeWeatherDay(item))
	}
	return days, nil
}

// normalizeWeatherDay maps one daily forecast item; the unix-seconds stamp
// becomes date text.
func normalizeWeatherDay(item darkskyDay) resource.WeatherDay {
	return resource.WeatherDay{
		Forecast: item.Summary,
		Time:     common.UnixDateString(item.Time),
	}
}
