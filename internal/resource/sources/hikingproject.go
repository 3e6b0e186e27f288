package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/city-explorer-api/internal/common"
	"github.com/i474232898/city-explorer-api/internal/resource"
	"github.com/sony/gobreaker"
)

// HikingProjectTrails implements resource.ListingSource[resource.Trail]
// against the Hiking Project get-trails API.
type HikingProjectTrails struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewHikingProjectTrails(client *http.Client, apiKey string) *HikingProjectTrails {
	return &HikingProjectTrails{
		name:    "hikingproject",
		apiKey:  apiKey,
		baseURL: "https://www.hikingproject.com/data/get-trails",
		client:  client,
		circuit: newBreaker("hikingproject"),
	}
}

func (h *HikingProjectTrails) Name() string {
	return h.name
}

type hikingTrail struct {
	Name             string  `json:"name"`
	Location         string  `json:"location"`
	Length           float64 `json:"length"`
	Stars            float64 `json:"stars"`
	StarVotes        int64   `json:"starVotes"`
	Summary          string  `json:"summary"`
	URL              string  `json:"url"`
	ConditionStatus  string  `json:"conditionStatus"`
	ConditionDetails string  `json:"conditionDetails"`
	ConditionDate    string  `json:"conditionDate"`
}

func (h *HikingProjectTrails) Fetch(ctx context.Context, loc resource.Location) ([]resource.Trail, error) {
	if h.apiKey == "" {
		return nil, fmt.Errorf("hikingproject: %w", errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", h.apiKey)
		values.Set("lat", fmt.Sprintf("%f", loc.Latitude))
		values.Set("lon", fmt.Sprintf("%f", loc.Longitude))
		values.Set("maxDistance", "200")

		u := fmt.Sprintf("%s?%s", h.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, h.client, h.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Trails []hikingTrail `json:"trails"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	trails := make([]resource.Trail, 0, len(payload.Trails))
	for _, item := range payload.Trails {
		trails = append(trails, normalizeTrail(item))
	}
	return trails, nil
}

// normalizeTrail maps one trail item; the combined condition stamp is split
// into its date and time substrings.
func normalizeTrail(item hikingTrail) resource.Trail {
	date, clock := common.SplitDateTime(item.ConditionDate)
	return resource.Trail{
		Name:          item.Name,
		Location:      item.Location,
		Length:        item.Length,
		Stars:         item.Stars,
		StarVotes:     item.StarVotes,
		Summary:       item.Summary,
		TrailURL:      item.URL,
		Conditions:    strings.TrimSpace(item.ConditionStatus + " " + item.ConditionDetails),
		ConditionDate: date,
		ConditionTime: clock,
	}
}
