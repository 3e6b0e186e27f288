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

// tmdbPosterBase prefixes the partial poster path TMDB returns.
const tmdbPosterBase = "https://image.tmdb.org/t/p/w500"

// TMDBMovies implements resource.ListingSource[resource.MovieSuggestion]
// against The Movie Database search API.
type TMDBMovies struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewTMDBMovies(client *http.Client, apiKey string) *TMDBMovies {
	return &TMDBMovies{
		name:    "tmdb",
		apiKey:  apiKey,
		baseURL: "https://api.themoviedb.org/3/search/movie",
		client:  client,
		circuit: newBreaker("tmdb"),
	}
}

func (t *TMDBMovies) Name() string {
	return t.name
}

type tmdbMovie struct {
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
	PosterPath  string  `json:"poster_path"`
	Popularity  float64 `json:"popularity"`
	ReleaseDate string  `json:"release_date"`
}

func (t *TMDBMovies) Fetch(ctx context.Context, loc resource.Location) ([]resource.MovieSuggestion, error) {
	if t.apiKey == "" {
		return nil, fmt.Errorf("tmdb: %w", errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		// Search by the short place name when geocoding supplied one.
		q := loc.ShortName
		if q == "" {
			q = loc.SearchQuery
		}

		values := url.Values{}
		values.Set("api_key", t.apiKey)
		values.Set("query", q)

		u := fmt.Sprintf("%s?%s", t.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, t.client, t.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []tmdbMovie `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	movies := make([]resource.MovieSuggestion, 0, len(payload.Results))
	for _, item := range payload.Results {
		movies = append(movies, normalizeMovie(item))
	}
	return movies, nil
}

// normalizeMovie maps one search result; partial poster paths get the known
// image base URL prefixed.
func normalizeMovie(item tmdbMovie) resource.MovieSuggestion {
	imageURL := ""
	if item.PosterPath != "" {
		imageURL = tmdbPosterBase + item.PosterPath
	}
	return resource.MovieSuggestion{
		Title:        item.Title,
		Overview:     item.Overview,
		AverageVotes: item.VoteAverage,
		TotalVotes:   item.VoteCount,
		ImageURL:     imageURL,
		Popularity:   item.Popularity,
		ReleasedOn:   item.ReleaseDate,
	}
}
