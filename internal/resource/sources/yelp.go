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

// YelpReviews implements resource.ListingSource[resource.BusinessReview]
// against the Yelp business search API.
type YelpReviews struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewYelpReviews(client *http.Client, apiKey string) *YelpReviews {
	return &YelpReviews{
		name:    "yelp",
		apiKey:  apiKey,
		baseURL: "https://api.yelp.com/v3/businesses/search",
		client:  client,
		circuit: newBreaker("yelp"),
	}
}

func (y *YelpReviews) Name() string {
	return y.name
}

type yelpBusiness struct {
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	Price    string  `json:"price"`
	Rating   float64 `json:"rating"`
	URL      string  `json:"url"`
}

func (y *YelpReviews) Fetch(ctx context.Context, loc resource.Location) ([]resource.BusinessReview, error) {
	if y.apiKey == "" {
		return nil, fmt.Errorf("yelp: %w", errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("term", "restaurants")
		values.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", loc.Longitude))

		u := fmt.Sprintf("%s?%s", y.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+y.apiKey)
		return req, nil
	}

	resp, err := doRequest(ctx, y.client, y.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Businesses []yelpBusiness `json:"businesses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	reviews := make([]resource.BusinessReview, 0, len(payload.Businesses))
	for _, item := range payload.Businesses {
		reviews = append(reviews, normalizeReview(item))
	}
	return reviews, nil
}

func normalizeReview(item yelpBusiness) resource.BusinessReview {
	return resource.BusinessReview{
		Name:     item.Name,
		ImageURL: item.ImageURL,
		Price:    item.Price,
		Rating:   item.Rating,
		URL:      item.URL,
	}
}
