package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/city-explorer-api/internal/resource"
	"github.com/sony/gobreaker"
)

// GoogleGeocoder implements the resource.GeocodeSource interface against the
// Google Geocoding API.
type GoogleGeocoder struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewGoogleGeocoder(client *http.Client, apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		name:    "google-geocode",
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/geocode/json",
		client:  client,
		circuit: newBreaker("google-geocode"),
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

// geocodeResult is the slice of the Google response the mapper consumes.
type geocodeResult struct {
	FormattedAddress  string `json:"formatted_address"`
	AddressComponents []struct {
		ShortName string `json:"short_name"`
	} `json:"address_components"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (g *GoogleGeocoder) Resolve(ctx context.Context, query string) (resource.Location, error) {
	if g.apiKey == "" {
		return resource.Location{}, fmt.Errorf("google geocode: %w", errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("address", query)
		values.Set("key", g.apiKey)

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.client, g.circuit, buildRequest)
	if err != nil {
		return resource.Location{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []geocodeResult `json:"results"`
		Status  string          `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return resource.Location{}, err
	}
	if len(payload.Results) == 0 {
		return resource.Location{}, fmt.Errorf("no geocoding results for %q (status %s)", query, payload.Status)
	}

	return normalizeLocation(payload.Results[0]), nil
}

// normalizeLocation maps the first geocoding result to a Location record.
// The search query and row id are assigned by the caller.
func normalizeLocation(item geocodeResult) resource.Location {
	loc := resource.Location{
		FormattedQuery: item.FormattedAddress,
		Latitude:       item.Geometry.Location.Lat,
		Longitude:      item.Geometry.Location.Lng,
	}
	if len(item.AddressComponents) > 0 {
		loc.ShortName = item.AddressComponents[0].ShortName
	}
	return loc
}
