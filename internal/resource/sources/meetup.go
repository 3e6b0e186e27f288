package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/city-explorer-api/internal/common"
	"github.com/i474232898/city-explorer-api/internal/resource"
	"github.com/sony/gobreaker"
)

// MeetupEvents implements resource.ListingSource[resource.MeetupEvent]
// against the Meetup upcoming-events API.
type MeetupEvents struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewMeetupEvents(client *http.Client, apiKey string) *MeetupEvents {
	return &MeetupEvents{
		name:    "meetup",
		apiKey:  apiKey,
		baseURL: "https://api.meetup.com/find/upcoming_events",
		client:  client,
		circuit: newBreaker("meetup"),
	}
}

func (m *MeetupEvents) Name() string {
	return m.name
}

type meetupEvent struct {
	Link    string `json:"link"`
	Name    string `json:"name"`
	Created int64  `json:"created"` // unix milliseconds
	Group   struct {
		Name string `json:"name"`
	} `json:"group"`
}

func (m *MeetupEvents) Fetch(ctx context.Context, loc resource.Location) ([]resource.MeetupEvent, error) {
	if m.apiKey == "" {
		return nil, fmt.Errorf("meetup: %w", errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", m.apiKey)
		values.Set("lat", fmt.Sprintf("%f", loc.Latitude))
		values.Set("lon", fmt.Sprintf("%f", loc.Longitude))
		values.Set("page", "20")

		u := fmt.Sprintf("%s?%s", m.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, m.client, m.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Events []meetupEvent `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	events := make([]resource.MeetupEvent, 0, len(payload.Events))
	for _, item := range payload.Events {
		events = append(events, normalizeEvent(item))
	}
	return events, nil
}

func normalizeEvent(item meetupEvent) resource.MeetupEvent {
	return resource.MeetupEvent{
		Link:         item.Link,
		Name:         item.Name,
		CreationDate: common.UnixMillisDateString(item.Created),
		Host:         item.Group.Name,
	}
}
